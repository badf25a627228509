// Package db acquires PostgreSQL connections for the example subcommands.
//
// An Acquirer dials through a Dialer and retries only while the server reports
// that it is still starting up, with a fixed pause between attempts. On final
// failure it logs one diagnostic line and returns an error wrapping
// stackprobe.ErrNoConnection together with a nil handle.
//
// Handles must always be released. Use WithConnection for scoped use, or pair
// Acquire with a deferred Release:
//
//	conn, err := acquirer.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer db.Release(ctx, conn)
package db

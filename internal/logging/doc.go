// Package logging provides concrete implementations of the stackprobe.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zerolog console output on any writer, colourised only on a terminal
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

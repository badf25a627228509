package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/vvka-141/stackprobe/internal/ui"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// SampleUsers are the rows the example inserts.
var SampleUsers = []User{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Smith", Email: "jane@example.com"},
}

// Example drives the create / insert / list sequence and prints each outcome.
type Example struct {
	store  *Store
	out    io.Writer
	styler ui.Styler
	table  bool
}

// NewExample creates an Example writing to out. With table set, the final
// listing is rendered as a grid instead of one line per user.
func NewExample(store *Store, out io.Writer, styler ui.Styler, table bool) *Example {
	return &Example{store: store, out: out, styler: styler, table: table}
}

// Run executes every step even when an earlier one fails. A step whose
// connection could not be acquired prints nothing: the acquirer already
// reported why. Any other failure prints "Error: <err>". Run itself never fails.
func (e *Example) Run(ctx context.Context) {
	if err := e.store.CreateTable(ctx); err != nil {
		e.report(err)
	} else {
		fmt.Fprintln(e.out, "Table created successfully")
	}

	for _, u := range SampleUsers {
		id, err := e.store.Insert(ctx, u.Name, u.Email)
		if err != nil {
			e.report(err)
			continue
		}
		fmt.Fprintf(e.out, "User inserted successfully with ID: %d\n", id)
	}

	list, err := e.store.List(ctx)
	if err != nil {
		e.report(err)
		return
	}
	e.print(list)
}

func (e *Example) print(list []User) {
	if e.table {
		rows := make([][]string, 0, len(list))
		for _, u := range list {
			rows = append(rows, []string{strconv.Itoa(u.ID), u.Name, u.Email})
		}
		fmt.Fprintln(e.out, e.styler.Table([]string{"ID", "Name", "Email"}, rows))
		return
	}

	for _, u := range list {
		fmt.Fprintf(e.out, "ID: %d, Name: %s, Email: %s\n", u.ID, u.Name, u.Email)
	}
}

func (e *Example) report(err error) {
	if errors.Is(err, stackprobe.ErrNoConnection) {
		return
	}
	fmt.Fprintf(e.out, "Error: %v\n", e.styler.Error(err.Error()))
}

// Package term reports the width of the terminal behind a writer. It is used
// to size the memory bar printed by memsim.
package term

import (
	"io"
	"os"
)

// DefaultWidth is returned when the writer is not a terminal.
const DefaultWidth = 80

// Width returns the column count of w when w is a terminal, or DefaultWidth.
func Width(w io.Writer) int {
	if n, ok := Columns(w); ok {
		return n
	}
	return DefaultWidth
}

// Columns returns the column count of w and whether w is a terminal.
func Columns(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return 0, false
	}
	n, err := columns(f.Fd())
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	_, ok := Columns(w)
	return ok
}

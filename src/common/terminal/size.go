// Package terminal detects whether output goes to a terminal and how wide
// it is.
package terminal

import (
	"io"

	"golang.org/x/term"
)

const (
	defaultCols = 80
	defaultRows = 24
	// maxWidth caps the wrap width on very wide terminals.
	maxWidth = 120
)

// Size represents terminal dimensions
type Size struct {
	Cols int
	Rows int
}

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GetSize returns the size of the terminal behind w, or 80x24 when w is
// not a terminal.
func GetSize(w io.Writer) Size {
	size := Size{Cols: defaultCols, Rows: defaultRows}
	f, ok := w.(fder)
	if !ok {
		return size
	}
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return size
	}
	if cols > 0 {
		size.Cols = cols
	}
	if rows > 0 {
		size.Rows = rows
	}
	return size
}

// Width returns the column count to wrap text written to w.
func Width(w io.Writer) int {
	return min(GetSize(w).Cols, maxWidth)
}

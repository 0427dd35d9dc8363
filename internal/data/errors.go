package data

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrMalformedRecord = errors.New("malformed record")
	ErrMissingColumn   = errors.New("missing required column")
	ErrUnknownNature   = errors.New("unknown nature")
)

// RowError describes one rejected cell or row.
type RowError struct {
	File   string
	Line   int // 1-based, header is line 1
	Column string
	Reason string
}

func (e RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Column, e.Reason)
}

// LoadError aggregates every row violation found while loading the tables.
// It matches ErrMalformedRecord with errors.Is.
type LoadError struct {
	Rows []RowError
}

func (e *LoadError) Error() string {
	const maxShown = 10

	var b strings.Builder
	fmt.Fprintf(&b, "%d malformed record(s)", len(e.Rows))
	for i, r := range e.Rows {
		if i == maxShown {
			fmt.Fprintf(&b, "; ... and %d more", len(e.Rows)-maxShown)
			break
		}
		b.WriteString("; ")
		b.WriteString(r.Error())
	}
	return b.String()
}

func (e *LoadError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// violations collects RowErrors for a single file.
type violations struct {
	file string
	rows []RowError
}

func (v *violations) add(line int, column, format string, args ...any) {
	v.rows = append(v.rows, RowError{
		File:   v.file,
		Line:   line,
		Column: column,
		Reason: fmt.Sprintf(format, args...),
	})
}

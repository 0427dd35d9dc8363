package data

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// table is a parsed delimited file: header index plus raw rows.
type table struct {
	file   string
	header map[string]int
	rows   []tableRow
}

type tableRow struct {
	line   int
	fields []string
}

// parseTable splits raw file bytes on sep. The first record is the header.
func parseTable(file string, raw []byte, sep rune) (*table, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file: %w", file, ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}

	t := &table{
		file:   file,
		header: make(map[string]int, len(header)),
	}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue // pandas index column
		}
		if _, dup := t.header[name]; !dup {
			t.header[name] = i
		}
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		if isBlank(rec) {
			continue
		}
		line, _ := r.FieldPos(0)
		t.rows = append(t.rows, tableRow{line: line, fields: rec})
	}
	return t, nil
}

// column returns the index of the first header matching one of names.
func (t *table) column(names ...string) (int, bool) {
	for _, n := range names {
		if idx, ok := t.header[n]; ok {
			return idx, true
		}
	}
	return -1, false
}

// require returns the column index or an ErrMissingColumn error.
func (t *table) require(names ...string) (int, error) {
	idx, ok := t.column(names...)
	if !ok {
		return -1, fmt.Errorf("%s: column %q: %w", t.file, names[0], ErrMissingColumn)
	}
	return idx, nil
}

// cell returns the trimmed field at idx, or "" when the row is short.
func (r tableRow) cell(idx int) string {
	if idx < 0 || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// isAbsent recognizes the sentinels used by the source tables for "no value".
func isAbsent(s string) bool {
	switch strings.ToLower(s) {
	case "", "—", "-", "–", "nan", "none", "null":
		return true
	}
	return false
}

// parseInt accepts "90" and the float spelling "90.0" that pandas writes for
// integer columns containing gaps.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func parseOptInt(s string) (*int, error) {
	if isAbsent(s) {
		return nil, nil
	}
	n, err := parseInt(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseAccuracy returns +Inf for moves that never miss.
func parseAccuracy(s string) (*float64, error) {
	if isAbsent(s) {
		return nil, nil
	}
	switch strings.ToLower(s) {
	case "∞", "inf", "+inf", "infinity":
		v := math.Inf(1)
		return &v, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return nil, fmt.Errorf("not an accuracy: %q", s)
	}
	return &v, nil
}

// parseFlag decodes a presence column. Numbers are machine numbers
// (TM 24 → present, 24); "True" marks presence without a number.
func parseFlag(s string) (present bool, number int, err error) {
	if isAbsent(s) {
		return false, 0, nil
	}
	switch strings.ToLower(s) {
	case "false", "no":
		return false, 0, nil
	case "true", "yes", "x":
		return true, 0, nil
	}
	n, err := parseInt(s)
	if err != nil {
		return false, 0, fmt.Errorf("not a flag: %q", s)
	}
	return true, n, nil
}

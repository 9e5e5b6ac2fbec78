package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	intCellRe = regexp.MustCompile(`^-?\d+$`)
	decCellRe = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// Row is an ordered mapping from column name to cell value. Keys iterate
// in header order, which must survive the decode → enrich → encode round
// trip.
type Row struct {
	keys   []string
	values map[string]interface{}
}

func NewRow() *Row {
	return &Row{values: make(map[string]interface{})}
}

// Set appends the key on first insertion and keeps its position on
// overwrite.
func (r *Row) Set(key string, value interface{}) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Row) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r *Row) Keys() []string {
	return r.keys
}

func (r *Row) Len() int {
	return len(r.keys)
}

func (r *Row) Clone() *Row {
	out := NewRow()
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	return out
}

// Map returns an unordered copy for JSON serialization.
func (r *Row) Map() map[string]interface{} {
	out := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Str returns the cell as text, "" when absent.
func (r *Row) Str(key string) string {
	v, ok := r.values[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Int parses the cell as an integer; absent keys default to "0" and any
// parse failure yields 0.
func (r *Row) Int(key string) int {
	v, ok := r.values[key]
	if !ok || v == nil {
		v = "0"
	}
	n, err := strconv.Atoi(fmt.Sprint(v))
	if err != nil {
		return 0
	}
	return n
}

// Float is the decimal counterpart of Int.
func (r *Row) Float(key string) float64 {
	v, ok := r.values[key]
	if !ok || v == nil {
		v = "0"
	}
	f, err := strconv.ParseFloat(fmt.Sprint(v), 64)
	if err != nil {
		return 0
	}
	return f
}

// TryParse classifies a raw cell: blank cells collapse to the empty
// string sentinel, strictly-integer and strictly-decimal cells become
// typed numbers, everything else stays the original string.
func TryParse(v string) interface{} {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	if intCellRe.MatchString(v) {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return v
	}
	if decCellRe.MatchString(v) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	}
	return v
}

// Coerce produces the typed row for a raw row, preserving key order.
func (r *Row) Coerce() *Row {
	out := NewRow()
	for _, k := range r.keys {
		out.Set(k, TryParse(r.Str(k)))
	}
	return out
}

// ReadCSVAsRows decodes header-bearing CSV into raw rows. The first
// record names the columns; every data record must have the same field
// count. Failures wrap ErrInputFormat.
func ReadCSVAsRows(rd io.Reader) ([]*Row, error) {
	cr := csv.NewReader(rd)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrInputFormat, "missing header line")
	}
	if err != nil {
		return nil, errors.Wrapf(ErrInputFormat, "failed to read header: %v", err)
	}

	var rows []*Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(ErrInputFormat, "failed to read record: %v", err)
		}
		row := NewRow()
		for i, h := range header {
			row.Set(h, record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRowsToCSV encodes rows as CSV. The header is the key order of the
// first row; later rows are projected onto it with "" for missing keys.
// An empty input writes nothing.
func WriteRowsToCSV(rows []*Row, w io.Writer) error {
	if len(rows) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	header := rows[0].Keys()
	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, h := range header {
			v, _ := row.Get(h)
			record[i] = FormatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCell renders a typed cell in its natural textual form, no locale.
func FormatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

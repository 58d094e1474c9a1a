package database

import (
	"database/sql"
	"strings"
)

// Columns is an ordered column → value map used as input to Insert and
// Update. The order of Set calls fixes the column order of the generated SQL.
type Columns struct {
	names  []string
	values []Value
	index  map[string]int
}

func NewColumns() *Columns {
	return &Columns{index: make(map[string]int)}
}

// Set adds a column, or replaces its value in place if it is already present.
func (c *Columns) Set(name string, v Value) *Columns {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[name]; ok {
		c.values[i] = v
		return c
	}
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	c.values = append(c.values, v)
	return c
}

func (c *Columns) Get(name string) (Value, bool) {
	if c == nil {
		return Value{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Value{}, false
	}
	return c.values[i], true
}

func (c *Columns) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

func (c *Columns) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

func (c *Columns) Values() []Value {
	if c == nil {
		return nil
	}
	return append([]Value(nil), c.values...)
}

// Row is one result row: column names in select order mapped to values.
// Rows are never modified after a query returns them.
type Row struct {
	names  []string
	values []Value
	index  map[string]int
}

func (r Row) Columns() []string { return append([]string(nil), r.names...) }

func (r Row) Len() int { return len(r.values) }

// Value returns the i-th column's value in select order.
func (r Row) Value(i int) Value { return r.values[i] }

// Get looks a column up by name. When a result set carries the same name
// twice, the last one wins.
func (r Row) Get(name string) (Value, bool) {
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// Text returns the named column as a string, or "" when it is missing or
// NULL. Non-text values are formatted.
func (r Row) Text(name string) string {
	v, ok := r.Get(name)
	if !ok || v.IsNull() {
		return ""
	}
	return v.String()
}

// Map copies the row into a plain map of Go values.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.index))
	for name, i := range r.index {
		m[name] = r.values[i].Any()
	}
	return m
}

// scanRows drains rows into Row values. The caller closes rows.
func scanRows(rows *sql.Rows) ([]Row, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	binary := make([]bool, len(names))
	for i, ct := range types {
		binary[i] = isBinaryType(ct.DatabaseTypeName())
	}

	// Every row of one result set shares the name slice and index.
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	raw := make([]any, len(names))
	dest := make([]any, len(names))
	for i := range raw {
		dest[i] = &raw[i]
	}

	out := make([]Row, 0)
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		values := make([]Value, len(names))
		for i, src := range raw {
			values[i] = fromDriver(src, binary[i])
		}
		out = append(out, Row{names: names, values: values, index: index})
	}
	return out, rows.Err()
}

func isBinaryType(name string) bool {
	name = strings.ToUpper(name)
	return strings.Contains(name, "BLOB") || strings.Contains(name, "BINARY")
}

// Package querybuilder renders small PostgreSQL statements with positional
// ($n) placeholders.
package querybuilder

import (
	"strconv"
	"strings"
)

// writer accumulates SQL text and its bound arguments. Placeholders are
// numbered in the order values are bound.
type writer struct {
	sql  strings.Builder
	args []any
}

func (w *writer) write(parts ...string) {
	for _, part := range parts {
		w.sql.WriteString(part)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// expand writes expr, replacing each '?' with the next bound value. Extra
// '?' characters without a value are kept as is.
func (w *writer) expand(expr string, values []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(values) {
			w.bind(values[next])
			next++
			continue
		}
		w.sql.WriteByte(expr[i])
	}
}

func (w *writer) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.write(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.write(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) list(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	w.write(" ", keyword, " ", strings.Join(parts, ", "))
}

func (w *writer) suffix(sql string, values []any) {
	if sql == "" {
		return
	}
	w.write(" ")
	w.expand(sql, values)
}

func (w *writer) result() (string, []any, error) {
	return w.sql.String(), w.args, nil
}

package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Join appends a raw join clause such as "JOIN matches m ON m.id = s.match_id".
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, clause)
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for _, join := range b.joins {
		w.write(" ", join)
	}
	w.where(b.where)
	w.list("GROUP BY", b.groupBy)
	w.list("ORDER BY", b.orderBy)
	if b.limit > 0 {
		w.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. "ON CONFLICT DO NOTHING RETURNING id".
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert table is required")
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert columns are required")
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.write(", ")
		}
		w.write("(")
		for j, value := range row {
			if j > 0 {
				w.write(", ")
			}
			w.bind(value)
		}
		w.write(")")
	}
	w.suffix(b.suffix, nil)
	return w.result()
}

type assignment struct {
	column string
	value  any
	expr   *expr
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw expression; each '?' binds the next value.
func (b *UpdateBuilder) SetExpr(column, sql string, values ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: &expr{sql: sql, values: values}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w writer
	w.write("UPDATE ", b.table, " SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.write(", ")
		}
		w.write(set.column, " = ")
		if set.expr != nil {
			set.expr.render(&w)
			continue
		}
		w.bind(set.value)
	}
	w.where(b.where)
	w.suffix(b.suffix, nil)
	return w.result()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to render an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete from %s requires a condition", b.table)
	}

	var w writer
	w.write("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}

package querybuilder

// Condition is one predicate of a WHERE clause. Predicates are joined with AND.
type Condition interface {
	render(w *writer)
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) render(w *writer) {
	w.write(c.column, " ", c.op, " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition { return compare{column: column, op: "=", value: value} }
func Ne(column string, value any) Condition { return compare{column: column, op: "<>", value: value} }

type in struct {
	column string
	values []any
}

// In renders an IN list; an empty list matches nothing.
func In(column string, values []any) Condition {
	return in{column: column, values: values}
}

func (c in) render(w *writer) {
	if len(c.values) == 0 {
		w.write("1=0")
		return
	}
	w.write(c.column, " IN (")
	for i, v := range c.values {
		if i > 0 {
			w.write(", ")
		}
		w.bind(v)
	}
	w.write(")")
}

type isNull string

func IsNull(column string) Condition { return isNull(column) }

func (c isNull) render(w *writer) {
	w.write(string(c), " IS NULL")
}

type expr struct {
	sql    string
	values []any
}

// Expr is a raw predicate; each '?' binds the next value.
func Expr(sql string, values ...any) Condition {
	return expr{sql: sql, values: values}
}

func (c expr) render(w *writer) {
	w.expand(c.sql, c.values)
}

type anyOf []Condition

// Or groups predicates with OR inside parentheses.
func Or(conditions ...Condition) Condition {
	return anyOf(conditions)
}

func (c anyOf) render(w *writer) {
	if len(c) == 0 {
		w.write("1=0")
		return
	}
	w.write("(")
	for i, cond := range c {
		if i > 0 {
			w.write(" OR ")
		}
		cond.render(w)
	}
	w.write(")")
}

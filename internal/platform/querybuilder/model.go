package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel inserts one row built from the db tags of a struct.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels inserts many rows of the same struct type in one statement.
func InsertModels(table string, models []any, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert %s: no rows", table)
	}

	b := InsertInto(table).Suffix(suffix)
	var columns []string
	for i, model := range models {
		cols, vals, err := modelColumns(model)
		if err != nil {
			return "", nil, fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
		if columns == nil {
			columns = cols
			b.Columns(cols...)
		} else if strings.Join(cols, ",") != strings.Join(columns, ",") {
			return "", nil, fmt.Errorf("insert %s row %d: column set differs from row 0", table, i)
		}
		b.Values(vals...)
	}
	return b.ToSQL()
}

// modelColumns reads exported fields tagged `db:"name"`. Fields tagged
// `db:"name,readonly"` are skipped so that serial ids and defaults stay with
// the database.
func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" || strings.Contains(opts, "readonly") {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, value.Field(i).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

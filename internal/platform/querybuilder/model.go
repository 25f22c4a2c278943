package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged fields of model. Fields
// tagged `db:"col,omitempty"` are left out when zero so the column default
// applies.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	fields, err := modelFields(model)
	if err != nil {
		return "", nil, fmt.Errorf("insert %s: %w", table, err)
	}

	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range fields {
		if f.omitEmpty && f.value.IsZero() {
			continue
		}
		cols = append(cols, f.column)
		vals = append(vals, f.value.Interface())
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

// MustColumns lists the db columns of a row type for SELECT lists. It panics
// on a type with no db tags, so call it at package init.
func MustColumns(model any) []string {
	fields, err := modelFields(model)
	if err != nil {
		panic(fmt.Sprintf("querybuilder: %v", err))
	}
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.column
	}
	return cols
}

type modelField struct {
	column    string
	omitEmpty bool
	value     reflect.Value
}

func modelFields(model any) ([]modelField, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	fields := make([]modelField, 0, typ.NumField())
	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, modelField{
			column:    name,
			omitEmpty: strings.Contains(opts, "omitempty"),
			value:     value.Field(i),
		})
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%s has no db columns", typ.Name())
	}
	return fields, nil
}

package db

import (
	"reflect"
)

// GetCols returns the database column list of a struct based on its `db`
// tags, for building SELECTs that line up with pgx.RowToStructByName
func GetCols(s any) []string {
	var cols []string

	for _, f := range reflect.VisibleFields(reflect.TypeOf(s)) {
		tag := f.Tag.Get("db")

		if tag == "" || tag == "-" {
			continue
		}

		cols = append(cols, tag)
	}

	return cols
}

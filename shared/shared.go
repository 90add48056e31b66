package shared

import (
	"reflect"
	"staybook/shared/constant"
	"staybook/shared/dto"
	"staybook/shared/timezone"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses a query flag. Empty or malformed input yields nil.
func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean")

		return nil
	}

	return &parsed
}

// CalculateTotalPage never reports fewer than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields builds the SET map of a partial update from the db tags of
// data. Zero values are skipped. A non-nil pointer is always applied, so a
// pointer field can set a value to zero. The audit columns are stamped with
// modifiedBy.
func TransformFields(data any, modifiedBy string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	fields := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		field := val.Field(index)

		switch {
		case field.Kind() == reflect.Pointer && !field.IsNil():
			fields[column] = field.Elem().Interface()
		case !field.IsZero() && field.Kind() != reflect.Pointer:
			fields[column] = field.Interface()
		}
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = modifiedBy

	return fields
}

// FilterByID matches a single row by its key column.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

package testutil

import "reflect"

// overwriteFields copies every non-zero field of overwrite onto base, so a
// fixture caller only spells out what the test cares about. Embedded structs
// are merged field by field.
func overwriteFields[T any](base T, overwrite T) T {
	merged := overwriteValue(reflect.ValueOf(base), reflect.ValueOf(overwrite))
	return merged.Interface().(T)
}

func overwriteValue(base, overwrite reflect.Value) reflect.Value {
	result := reflect.New(base.Type()).Elem()
	result.Set(base)

	for i := 0; i < overwrite.NumField(); i++ {
		field := overwrite.Field(i)
		if overwrite.Type().Field(i).Anonymous && field.Kind() == reflect.Struct {
			result.Field(i).Set(overwriteValue(result.Field(i), field))
			continue
		}

		if !field.IsZero() {
			result.Field(i).Set(field)
		}
	}

	return result
}

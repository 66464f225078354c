package binder

import (
	"reflect"

	"github.com/eyetechsecurities/webforms/pkg/sanitizer"
)

var cleanString = sanitizer.Compose(sanitizer.RemoveNullBytes, sanitizer.Trim)

// sanitizeStruct recursively cleans all settable string fields reachable from v.
func sanitizeStruct(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(cleanString(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			if field := rv.Field(i); field.CanSet() {
				sanitizeValue(field)
			}
		}

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return // raw bytes
		}
		for i := range rv.Len() {
			sanitizeValue(rv.Index(i))
		}

	case reflect.Ptr:
		if !rv.IsNil() {
			sanitizeValue(rv.Elem())
		}
	}
}

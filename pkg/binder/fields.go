package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/eyetechsecurities/webforms/pkg/formdata"
)

var fileType = reflect.TypeOf((*formdata.File)(nil))

// bindFields copies form values and the uploaded file into the struct v
// points to. Fields without a value keep their zero value. The file goes to
// the first `file:` field whose tag is "*" or matches its form field name.
func bindFields(v any, values map[string][]string, file *formdata.File) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidForm)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		sf, field := rt.Field(i), rv.Field(i)
		if !field.CanSet() {
			continue
		}

		if name, ok := tagName(sf, "form"); ok {
			if vals := values[name]; len(vals) > 0 {
				if err := setValue(field, vals); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, sf.Name, err)
				}
			}
			continue
		}

		name, ok := tagName(sf, "file")
		if !ok || file == nil || (name != "*" && !strings.EqualFold(name, file.Field)) {
			continue
		}
		if sf.Type != fileType {
			return fmt.Errorf("%w: field %s: file fields must be *formdata.File, got %v", ErrInvalidForm, sf.Name, sf.Type)
		}
		field.Set(reflect.ValueOf(file))
		file = nil
	}

	return nil
}

// tagName returns the name part of the key tag. "-" and empty tags skip the field.
func tagName(sf reflect.StructField, key string) (string, bool) {
	name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
	return name, name != "" && name != "-"
}

func setValue(field reflect.Value, vals []string) error {
	switch field.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setValue(field.Elem(), vals)

	case reflect.Slice:
		// Repeated fields and comma-separated lists both fill a slice.
		var items []string
		for _, v := range vals {
			for item := range strings.SplitSeq(v, ",") {
				items = append(items, strings.TrimSpace(item))
			}
		}
		s := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := setScalar(s.Index(i), item); err != nil {
				return err
			}
		}
		field.Set(s)
		return nil
	}

	return setScalar(field, vals[0])
}

func setScalar(field reflect.Value, s string) error {
	switch k := field.Kind(); {
	case k == reflect.String:
		field.SetString(s)

	case k == reflect.Bool:
		b, err := parseCheckbox(s)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case k >= reflect.Int && k <= reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		field.SetInt(n)

	case k >= reflect.Uint && k <= reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(s), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", s)
		}
		field.SetUint(n)

	case k == reflect.Float32 || k == reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(s), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		field.SetFloat(n)

	default:
		return fmt.Errorf("unsupported kind %s", k)
	}
	return nil
}

// parseCheckbox reads HTML checkbox and select values as booleans.
func parseCheckbox(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "true", "1":
		return true, nil
	case "", "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

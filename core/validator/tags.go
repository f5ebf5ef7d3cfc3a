package validator

import (
	"reflect"
	"strings"
	"sync"
)

// ValidatorFunc builds the Rule for a named tag applied to value.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
	}
)

// RegisterValidator adds or replaces the rule called name.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks every tagged field of the struct v points to and
// returns ValidationErrors when any rule fails.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	var errs ValidationErrors
	walkStruct(rv.Elem(), "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func walkStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := range rv.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		path := sf.Name
		if prefix != "" {
			path = prefix + "." + sf.Name
		}

		field := rv.Field(i)
		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
		}

		switch {
		case tag != "":
			applyRules(path, field, tag, errs)
		case field.Kind() == reflect.Struct:
			walkStruct(field, path, errs)
		}
	}
}

func applyRules(path string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for raw := range strings.SplitSeq(tag, ";") {
		name, paramStr, _ := strings.Cut(strings.TrimSpace(raw), ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[name]
		if !ok {
			continue
		}
		if rule := fn(path, field, params); !rule.Check() {
			errs.Add(rule.Error)
		}
	}
}

// requiredValidator rejects blank strings, empty collections, nil pointers
// and zero values.
func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:             field,
			Message:           "is required",
			TranslationKey:    "validation.required",
			TranslationValues: map[string]any{"field": field},
		},
	}
}

// Package validator checks struct fields against rules declared in the
// `validate` tag.
//
// Rules are separated by ";" and parameters follow the rule name after ":",
// separated by ",". Only "required" ships built in; callers add their own
// with RegisterValidator.
//
//	type Request struct {
//		Text string `validate:"required"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		for _, e := range validator.ExtractValidationErrors(err) {
//			log.Println(e.Field, e.Message)
//		}
//	}
//
// Field paths use Go field names joined by "." for nested structs, for
// example "Address.Street". Untagged struct fields are walked recursively and
// a "-" tag skips the field entirely.
package validator

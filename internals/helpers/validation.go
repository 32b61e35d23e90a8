// file: internals/helpers/validation.go
package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct menjalankan validator/v10 pada DTO request.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationErrorsToMap mengubah validator.ValidationErrors
// menjadi map field → pesan (untuk JsonValidationError).
func ValidationErrorsToMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		msg := "failed on rule: " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out[field] = append(out[field], msg)
	}
	return out
}

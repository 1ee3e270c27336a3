package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrorBody is the error contract for every non-2xx response.
func ErrorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// ValidateRequest runs struct-tag validation on a request DTO.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("field %s failed on '%s'", errs[0].Field(), errs[0].Tag())
		}
		return err
	}
	return nil
}

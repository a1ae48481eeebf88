package commission

import (
	"fmt"
	"reflect"
	"strings"

	"shinepos-backend/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct validator and turns the first failure into a
// ValidationError with a client friendly message.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.Validation("Missing required fields")
	case "oneof":
		return apperr.Validation(fmt.Sprintf("Invalid %s: must be one of %s", fe.Field(), fe.Param()))
	case "gte", "min":
		return apperr.Validation(fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
	default:
		return apperr.Validation(fmt.Sprintf("Invalid %s", fe.Field()))
	}
}

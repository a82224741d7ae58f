package account

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterForm carries the registration fields the way the client submits
// them. Validation is synchronous and local; it always recomputes the full
// per-field error map and never responds with an error value.
type RegisterForm struct {
	Name        string `json:"name" validate:"required"`
	Surnames    string `json:"surnames" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Birthdate   string `json:"birthdate"`
	Address     string `json:"address" validate:"required"`
	AcceptTerms bool   `json:"accept_terms" validate:"eq=true"`
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report errors under the wire field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns a field→message map, empty when the form passes.
func Validate(form any) map[string]string {
	errs := map[string]string{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	for _, fe := range err.(validator.ValidationErrors) {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "eq":
		if fe.Field() == "accept_terms" {
			return "you must accept the terms and conditions"
		}
	}
	return "invalid value"
}

package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Form messages mirror what the HTML layer renders next to each field.
var fieldMessages = map[string]string{
	"required": "This field is required.",
	"max":      "This value is too long.",
	"min":      "This value is too short.",
	"alphanum": "Only letters and digits are allowed.",
}

type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group"`
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

type SignupForm struct {
	Username string `form:"username" validate:"required,max=150,alphanum"`
	Password string `form:"password" validate:"required,min=8"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=200"`
	Description string `form:"description" validate:"max=200"`
}

// ValidateForm runs struct validation and flattens the result into a
// field → message map keyed by the lowercased field name.
func ValidateForm(form interface{}) map[string]string {
	errs := map[string]string{}

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["__all__"] = err.Error()
		return errs
	}

	for _, fieldErr := range validationErrs {
		msg, ok := fieldMessages[fieldErr.Tag()]
		if !ok {
			msg = "This value is invalid."
		}
		errs[lowerFirst(fieldErr.Field())] = msg
	}

	return errs
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

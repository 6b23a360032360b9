package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateForm(t *testing.T) {
	t.Run("post form requires text", func(t *testing.T) {
		errs := ValidateForm(PostForm{})
		assert.Equal(t, "This field is required.", errs["text"])

		errs = ValidateForm(PostForm{Text: "hello"})
		assert.Empty(t, errs)
	})

	t.Run("group on a post form is optional", func(t *testing.T) {
		errs := ValidateForm(PostForm{Text: "hello", Group: ""})
		assert.Empty(t, errs)
	})

	t.Run("signup form constraints", func(t *testing.T) {
		errs := ValidateForm(SignupForm{Username: "bad name!", Password: "longenough"})
		assert.Equal(t, "Only letters and digits are allowed.", errs["username"])

		errs = ValidateForm(SignupForm{Username: "leo", Password: "short"})
		assert.Equal(t, "This value is too short.", errs["password"])

		errs = ValidateForm(SignupForm{Username: "leo", Password: "longenough"})
		assert.Empty(t, errs)
	})
}

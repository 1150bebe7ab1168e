package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signInForm struct {
	Portal string `validate:"required,portal"`
	Email  string `validate:"required,email"`
}

type shopForm struct {
	Category string `validate:"omitempty,category"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&signInForm{Portal: "seller", Email: "a@b.co"}))
	assert.NoError(t, v.Validate(&shopForm{}))
	assert.NoError(t, v.Validate(&shopForm{Category: "Shopping & Malls"}))

	err := v.Validate(&signInForm{Portal: "staff", Email: "nope"})
	require.Error(t, err)

	var fieldErrs *FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, map[string]string{"Portal": "portal", "Email": "email"}, fieldErrs.Fields())
	assert.Contains(t, err.Error(), "Portal failed on 'portal'")

	assert.Error(t, v.Validate(&shopForm{Category: "Weapons"}))
}

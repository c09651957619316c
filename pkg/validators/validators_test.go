package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("a@x.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("longenough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 300)), ErrPasswordTooLong)
}

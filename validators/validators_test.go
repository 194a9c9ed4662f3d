package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	cases := []struct {
		email string
		want  error
	}{
		{"", ErrEmailEmpty},
		{"not-an-email", ErrEmailInvalid},
		{"a b@gmail.com", ErrEmailInvalid},
		{"someone@example.com", ErrEmailProvider},
		{"a@gmail.com", nil},
		{"someone@yahoo.com", nil},
		{"someone@GMAIL.com", nil},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, EmailValidator(tc.email), tc.want, tc.email)
	}
}

func TestPasswordValidator(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"", ErrPasswordEmpty},
		{"Ab1!", ErrPasswordTooShort},
		{"abc12345!", ErrPasswordTooWeak},
		{"ABC12345!", ErrPasswordTooWeak},
		{"Abcdefgh!", ErrPasswordTooWeak},
		{"Abc123456", ErrPasswordTooWeak},
		{"Abc12345!", nil},
	}

	for _, tc := range cases {
		assert.ErrorIs(t, PasswordValidator(tc.password), tc.want, tc.password)
	}
}

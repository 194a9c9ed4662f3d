// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty    = errors.New("no email address provided")
	ErrEmailInvalid  = errors.New("invalid email, please provide a valid email")
	ErrEmailProvider = errors.New("only gmail and yahoo addresses are accepted")
)

// Accounts are restricted to the two consumer providers the product
// supports for verification mail delivery.
var allowedDomains = []string{"gmail.com", "yahoo.com"}

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e {
		return ErrEmailInvalid
	}

	_, domain, _ := strings.Cut(e, "@")
	for _, d := range allowedDomains {
		if strings.EqualFold(domain, d) {
			return nil
		}
	}

	return ErrEmailProvider
}

package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends the out-of-band confirmation link minted at sign-up.
type Mailer interface {
	SendConfirmation(to, confirmationLink string) error
}

// SMTPMailer implements Mailer over the configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	sender   string
	password string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		host:     viper.GetString("mail.host"),
		port:     viper.GetInt("mail.port"),
		sender:   viper.GetString("mail.sender"),
		password: viper.GetString("mail.password"),
	}
}

func (s *SMTPMailer) SendConfirmation(to, confirmationLink string) error {
	if to == s.sender {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "welcome to our app")
	m.SetBody("text/html", fmt.Sprintf(
		"<h1>Click on the link to confirm your email</h1><a href=%q>Confirm Email</a>",
		confirmationLink,
	))

	d := gomail.NewDialer(s.host, s.port, s.sender, s.password)

	return d.DialAndSend(m)
}

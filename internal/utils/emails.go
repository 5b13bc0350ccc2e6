package utils

import (
	"gopkg.in/gomail.v2"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/config"
)

// Mailer sends mail over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func NewMailer(cfg config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *Mailer) Send(to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return dialer.DialAndSend(mailer)
}

// Package mailer sends notification emails over SMTP. The default server is
// Mailtrap (smtp.mailtrap.io:2525), which suits development and testing;
// point Host/Port at a real relay in production.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends emails through a single SMTP account.
type Mailer struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string // From address for every message
}

// NewMailer creates a Mailer with the given credentials. Host and port
// default to Mailtrap when empty.
func NewMailer(user, pass, sender string) *Mailer {
	return &Mailer{
		Host:   "smtp.mailtrap.io",
		Port:   "2525",
		User:   user,
		Pass:   pass,
		Sender: sender,
	}
}

// Send delivers one message. The Content-Type is inferred from the body:
// bodies containing basic HTML tags are sent as text/html, everything else
// as text/plain.
func (m *Mailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if m.Sender == "" {
		return fmt.Errorf("sender email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	if m.User == "" || m.Pass == "" {
		return fmt.Errorf("SMTP username and password must be provided")
	}

	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.Sender, subject, contentType, body))

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

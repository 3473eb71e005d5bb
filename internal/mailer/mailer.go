// Package mailer notifies the site owner about contact form submissions.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("mailer: SMTP credentials not configured")

type Config struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// Contact is one form submission.
type Contact struct {
	Name    string
	Email   string
	Message string
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends contact notifications over SMTP.
type Mailer struct {
	cfg  Config
	send SendFunc
	log  *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Mailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{cfg: cfg, send: smtp.SendMail, log: log}
}

// WithSender replaces the SMTP transport.
func (m *Mailer) WithSender(fn SendFunc) *Mailer {
	m.send = fn
	return m
}

// Send emails c to the configured recipient.
func (m *Mailer) Send(ctx context.Context, c Contact) error {
	if !m.cfg.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := Compose(m.cfg, c)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		m.log.Error("sending contact email", zap.Error(err))
		return fmt.Errorf("send contact email: %w", err)
	}

	m.log.Info("contact email sent", zap.String("from", c.Email))
	return nil
}

// Compose builds the raw message. Header values are stripped of line
// breaks so form input cannot inject headers.
func Compose(cfg Config, c Contact) []byte {
	name := oneLine(c.Name)
	email := oneLine(c.Email)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, c.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: Portfolio Contact: " + name + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

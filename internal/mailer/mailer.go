// Package mailer relays contact messages to the site owner over SMTP.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

var ErrNotConfigured = errors.New("SMTP credentials not configured")

type Config struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// ConfigFromEnv reads SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASS and
// TO_EMAIL, defaulting host and port to Gmail's submission endpoint.
func ConfigFromEnv() Config {
	c := Config{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		To:   os.Getenv("TO_EMAIL"),
	}
	if c.Host == "" {
		c.Host = "smtp.gmail.com"
	}
	if c.Port == "" {
		c.Port = "587"
	}
	if c.To == "" {
		c.To = c.User
	}
	return c
}

func (c Config) Configured() bool {
	return c.User != "" && c.Pass != "" && c.To != ""
}

type Mail struct {
	Name    string
	Email   string
	Message string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Relay struct {
	cfg  Config
	send sendFunc
}

func NewRelay(cfg Config) *Relay {
	return &Relay{cfg: cfg, send: smtp.SendMail}
}

func (r *Relay) Configured() bool { return r.cfg.Configured() }

func (r *Relay) Send(m Mail) error {
	if !r.cfg.Configured() {
		return ErrNotConfigured
	}
	auth := smtp.PlainAuth("", r.cfg.User, r.cfg.Pass, r.cfg.Host)
	err := r.send(r.cfg.Host+":"+r.cfg.Port, auth, r.cfg.User, []string{r.cfg.To}, Compose(r.cfg, m))
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Compose builds the message with Reply-To set to the visitor's address.
// Header values are stripped of CR/LF.
func Compose(cfg Config, m Mail) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(m.Name))
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Message)

	var b strings.Builder
	b.WriteString("To: " + cfg.To + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("From: " + cfg.User + "\r\n")
	b.WriteString("Reply-To: " + headerSafe(m.Email) + "\r\n")
	b.WriteString("\r\n")
	b.WriteString(body + "\r\n")
	return []byte(b.String())
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(s)
}

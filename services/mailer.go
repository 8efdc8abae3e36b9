package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/music-studio/music-studio-api/config"
)

// Email is one outbound plain-text message
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Mailer delivers notification emails
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// NewMailer returns an SMTP mailer when SMTP is configured, otherwise a mailer that only logs
func NewMailer(cfg *config.Config, logger zerolog.Logger) Mailer {
	if cfg.SMTPConfigured() {
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	}
	logger.Warn().Msg("SMTP is not configured, notification emails will only be logged")
	return NewLogMailer(logger)
}

// SMTPMailer sends mail through an authenticated SMTP relay
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(host, strconv.Itoa(port)),
		auth: auth,
		from: from,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := buildMessage(m.from, email)
	if err != nil {
		return err
	}
	if err := m.send(m.addr, m.auth, m.from, []string{email.To}, msg); err != nil {
		return fmt.Errorf("failed to send email via %s: %w", m.addr, err)
	}
	return nil
}

// ErrHeaderInjection is returned for header values that would start a new header line
var ErrHeaderInjection = errors.New("email header contains a line break")

func buildMessage(from string, email Email) ([]byte, error) {
	headers := [][2]string{
		{"From", from},
		{"To", email.To},
		{"Reply-To", email.ReplyTo},
		{"Subject", email.Subject},
	}

	var b strings.Builder
	for _, h := range headers {
		if h[1] == "" && h[0] == "Reply-To" {
			continue
		}
		if strings.ContainsAny(h[1], "\r\n") {
			return nil, fmt.Errorf("%w: %s", ErrHeaderInjection, h[0])
		}
		value := h[1]
		if h[0] == "Subject" {
			value = mime.QEncoding.Encode("utf-8", value)
		}
		b.WriteString(h[0] + ": " + value + "\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(email.Body)
	return []byte(b.String()), nil
}

// LogMailer writes emails to the log instead of sending them
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, email Email) error {
	m.logger.Info().Str("to", email.To).Str("subject", email.Subject).Msg("Email not sent (SMTP disabled)")
	return nil
}

// MockMailer records sent emails for tests; set Err to simulate a transport failure
type MockMailer struct {
	mu   sync.Mutex
	sent []Email
	Err  error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, email Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, email)
	return nil
}

// Sent returns a copy of every delivered email
func (m *MockMailer) Sent() []Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Email, len(m.sent))
	copy(out, m.sent)
	return out
}

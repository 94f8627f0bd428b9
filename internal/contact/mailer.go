package contact

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"time"

	"github.com/pkg/errors"
)

// DefaultSendTimeout bounds one SMTP conversation, dial included.
const DefaultSendTimeout = 10 * time.Second

// ErrSMTPNotConfigured is returned by NewMailer without credentials.
var ErrSMTPNotConfigured = errors.New("SMTP credentials not configured")

// SMTPConfig locates the relay and the inbox notifications go to.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

type sendFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer forwards submissions by email.
type Mailer struct {
	cfg     SMTPConfig
	auth    smtp.Auth
	timeout time.Duration
	send    sendFunc
}

// NewMailer returns a mailer for cfg.
func NewMailer(cfg SMTPConfig) (*Mailer, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, ErrSMTPNotConfigured
	}
	if cfg.Host == "" {
		return nil, errors.New("SMTP host is required")
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	m := &Mailer{
		cfg:     cfg,
		auth:    smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host),
		timeout: DefaultSendTimeout,
	}
	m.send = m.sendMail
	return m, nil
}

// Record emails s to the configured inbox.
func (m *Mailer) Record(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(ctx, addr, m.auth, m.cfg.User, []string{m.cfg.To}, m.message(s)); err != nil {
		return errors.Wrap(err, "failed to send contact email")
	}
	log.Printf("Email sent successfully from %s (%s)", s.Form.Name, s.Form.Email)
	return nil
}

// sendMail is smtp.SendMail over a connection whose dial and whole
// conversation end by m.timeout or ctx's deadline, whichever is first.
func (m *Mailer) sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return err
			}
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func (m *Mailer) message(s Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", s.Form.Subject)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form (%s)
`, s.Form.Name, s.Form.Email, s.Form.Subject, s.Form.Message, s.ID)

	return []byte("To: " + m.cfg.To + "\r\n" +
		"Subject: " + headerSafe(subject) + "\r\n" +
		"From: " + m.cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(s.Form.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips CR and LF so visitor input cannot inject headers.
func headerSafe(v string) string {
	out := make([]rune, 0, len(v))
	for _, r := range v {
		if r == '\r' || r == '\n' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
)

const maxRetries = 3

// Attachment is a file carried inline in a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer delivers messages on a best-effort basis. Send never returns an error:
// failures are logged and reported as false so callers can count them.
type Mailer interface {
	Send(ctx context.Context, msg Message) bool
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
	backoff  time.Duration
}

// NewSMTPMailer creates a Mailer backed by net/smtp. An empty host disables delivery.
func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		backoff:  time.Second,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) bool {
	// Skip sending if SMTP is not configured
	if m.cfg.Host == "" {
		slog.WarnContext(ctx, "SMTP not configured, skipping email send", "to", msg.To, "subject", msg.Subject)
		return true
	}

	raw, err := buildMessage(m.from(), msg)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to build email", "to", msg.To, "subject", msg.Subject, "error", err)
		return false
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := m.sendMail(addr, auth, m.cfg.From, []string{msg.To}, raw)
		if err == nil {
			slog.InfoContext(ctx, "Email sent successfully", "to", msg.To, "subject", msg.Subject, "attempt", attempt)
			return true
		}

		slog.ErrorContext(ctx, "Failed to send email",
			"to", msg.To,
			"subject", msg.Subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(m.backoff << (attempt - 1)):
			}
		}
	}

	return false
}

func (m *smtpMailer) from() string {
	addr := mail.Address{Name: m.cfg.FromName, Address: m.cfg.From}
	return addr.String()
}

// buildMessage renders msg as a MIME multipart/mixed message with base64 attachments.
func buildMessage(from string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", w.Boundary())
	buf.WriteString("\r\n")

	body, err := w.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := body.Write([]byte(msg.Body + "\r\n")); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := w.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {mime.FormatMediaType(contentType, map[string]string{"name": a.Filename})},
			"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": a.Filename})},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		if err := writeBase64Lines(part, a.Data); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64Lines wraps encoded data at 76 characters per RFC 2045.
func writeBase64Lines(w interface{ Write([]byte) (int, error) }, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := w.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[76:]
	}
	_, err := w.Write([]byte(encoded + "\r\n"))
	return err
}

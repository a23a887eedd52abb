package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_Attachment(t *testing.T) {
	raw, err := buildMessage("Payroll <slipsalaryapp@payroll.com>", Message{
		To:      "ana@example.com",
		Subject: "Monthly CSV 2025-06",
		Body:    "Attached CSV report",
		Attachments: []Attachment{
			{Filename: "m.csv", ContentType: "text/csv", Data: []byte("employee_id,first_name\n")},
		},
	})
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", parsed.Header.Get("To"))
	assert.Equal(t, "Monthly CSV 2025-06", decodeHeader(t, parsed.Header.Get("Subject")))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])

	body, err := reader.NextPart()
	require.NoError(t, err)
	text, _ := io.ReadAll(body)
	assert.Contains(t, string(text), "Attached CSV report")

	att, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "m.csv", att.FileName())
	// multipart.Reader only decodes quoted-printable; base64 arrives as-is.
	encoded, _ := io.ReadAll(att)
	assert.Equal(t, "ZW1wbG95ZWVfaWQsZmlyc3RfbmFtZQo=", strings.TrimSpace(string(encoded)))
}

func decodeHeader(t *testing.T, v string) string {
	t.Helper()
	out, err := new(mime.WordDecoder).DecodeHeader(v)
	require.NoError(t, err)
	return out
}

func TestSMTPMailer_SkipsWithoutHost(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{})
	assert.True(t, m.Send(context.Background(), Message{To: "x@example.com", Subject: "s"}))
}

func TestSMTPMailer_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	m := &smtpMailer{
		cfg:     config.SMTPConfig{Host: "localhost", Port: 1025, From: "payroll@example.com"},
		backoff: time.Millisecond,
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			calls++
			assert.Equal(t, "localhost:1025", addr)
			assert.Nil(t, a)
			if calls < 3 {
				return errors.New("connection refused")
			}
			return nil
		},
	}

	assert.True(t, m.Send(context.Background(), Message{To: "x@example.com", Subject: "s", Body: "b"}))
	assert.Equal(t, 3, calls)
}

func TestSMTPMailer_GivesUp(t *testing.T) {
	calls := 0
	m := &smtpMailer{
		cfg:     config.SMTPConfig{Host: "localhost", Port: 1025, Username: "u", Password: "p"},
		backoff: time.Millisecond,
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			calls++
			assert.NotNil(t, a)
			return errors.New("535 auth failed")
		},
	}

	assert.False(t, m.Send(context.Background(), Message{To: "x@example.com"}))
	assert.Equal(t, maxRetries, calls)
}

func TestSMTPMailer_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	m := &smtpMailer{
		cfg:     config.SMTPConfig{Host: "localhost", Port: 1025},
		backoff: time.Hour,
		sendMail: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			calls++
			cancel()
			return errors.New("timeout")
		},
	}

	assert.False(t, m.Send(ctx, Message{To: "x@example.com"}))
	assert.Equal(t, 1, calls)
}

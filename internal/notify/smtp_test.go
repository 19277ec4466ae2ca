package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestSMTP(cfg SMTPConfig, sendErr error) (*SMTPNotifier, *capturedMail) {
	captured := &capturedMail{}
	n := NewSMTPNotifier(cfg)
	n.now = func() time.Time { return time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC) }
	n.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		captured.addr, captured.auth, captured.from, captured.to, captured.msg = addr, a, from, to, string(msg)
		return sendErr
	}
	return n, captured
}

func TestSMTPNotifier_Notify(t *testing.T) {
	n, mail := newTestSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "bot@example.com", Password: "pw"}, nil)

	err := n.Notify(context.Background(), Message{To: "me@example.com", Subject: "Hello\r\nBcc: evil@x", Body: "line1\nline2"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.NotNil(t, mail.auth)
	assert.Equal(t, "bot@example.com", mail.from)
	assert.Equal(t, []string{"me@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Hello  Bcc: evil@x\r\n")
	assert.Contains(t, mail.msg, "Date: Mon, 05 Jan 2026 08:00:00 +0000\r\n")
	assert.True(t, strings.HasSuffix(mail.msg, "\r\n\r\nline1\r\nline2\r\n"))
}

func TestSMTPNotifier_NoAuthWithoutUsername(t *testing.T) {
	n, mail := newTestSMTP(SMTPConfig{Host: "localhost", Port: 25, From: "jobs@localhost"}, nil)
	require.NoError(t, n.Notify(context.Background(), Message{To: "me@localhost"}))
	assert.Nil(t, mail.auth)
	assert.Equal(t, "jobs@localhost", mail.from)
}

func TestSMTPNotifier_Errors(t *testing.T) {
	n, _ := newTestSMTP(SMTPConfig{Host: "localhost", Port: 25}, errors.New("connection refused"))

	err := n.Notify(context.Background(), Message{To: "me@localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	err = n.Notify(context.Background(), Message{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no recipient")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, Message{To: "me@localhost"}), context.Canceled)
}

package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct {
	msgs []Message
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, msg Message) error {
	r.msgs = append(r.msgs, msg)
	return r.err
}

func TestSend_Success(t *testing.T) {
	n := &recordingNotifier{}
	warning := Send(context.Background(), n, Message{Subject: "hi"}, nil)
	assert.Empty(t, warning)
	require.Len(t, n.msgs, 1)
}

func TestSend_FailureIsWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := &recordingNotifier{err: errors.New("mailbox full")}

	warning := Send(context.Background(), n, Message{Subject: "hi"}, zap.New(core))
	assert.Contains(t, warning, "mailbox full")
	assert.Equal(t, 1, logs.FilterMessage("notification failed").Len())
}

func TestSend_NilNotifier(t *testing.T) {
	assert.Empty(t, Send(context.Background(), nil, Message{}, nil))
}

func TestMulti(t *testing.T) {
	ok := &recordingNotifier{}
	bad := &recordingNotifier{err: errors.New("down")}

	err := Multi{bad, ok}.Notify(context.Background(), Message{Body: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Len(t, ok.msgs, 1, "later notifiers still run")

	assert.NoError(t, Multi{ok, Nop{}}.Notify(context.Background(), Message{}))
	assert.NoError(t, Multi(nil).Notify(context.Background(), Message{}))
}

func TestMessageBuilders(t *testing.T) {
	m := ApplicationConfirmation("me@example.com", "Acme", "SRE", "2026-01-05")
	assert.Equal(t, "me@example.com", m.To)
	assert.Equal(t, "Application recorded: SRE at Acme", m.Subject)
	assert.Contains(t, m.Body, "on 2026-01-05")

	r := InterviewReminder("", "Acme", "SRE", "2026-01-20")
	assert.Equal(t, "Interview reminder: SRE at Acme", r.Subject)
	assert.Contains(t, r.Body, "2026-01-20")
}

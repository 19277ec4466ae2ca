// Package notify delivers best-effort notifications about applications and interviews.
package notify

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Message is one notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers a message.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Nop discards every message.
type Nop struct{}

// Notify implements Notifier.
func (Nop) Notify(context.Context, Message) error { return nil }

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Send delivers msg and never fails the caller. A delivery failure is logged
// and returned as a warning for display; the warning is empty on success.
func Send(ctx context.Context, n Notifier, msg Message, logger *zap.Logger) string {
	if n == nil {
		return ""
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := n.Notify(ctx, msg); err != nil {
		logger.Warn("notification failed", zap.String("subject", msg.Subject), zap.Error(err))
		return fmt.Sprintf("Notification could not be sent: %v", err)
	}
	logger.Debug("notification sent", zap.String("subject", msg.Subject))
	return ""
}

// ApplicationConfirmation builds the message sent after recording an application.
func ApplicationConfirmation(to, company, position, date string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Application recorded: %s at %s", position, company),
		Body: fmt.Sprintf("You applied for %s at %s on %s.\n\nGood luck!",
			position, company, date),
	}
}

// InterviewReminder builds the message sent before an interview.
func InterviewReminder(to, company, position, date string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Interview reminder: %s at %s", position, company),
		Body:    fmt.Sprintf("Your interview for %s at %s is on %s.", position, company, date),
	}
}

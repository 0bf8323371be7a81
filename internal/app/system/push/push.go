// internal/app/system/push/push.go
// Package push sends topic notifications to the consumer app and logs
// every attempt.
package push

import (
	"context"
	"errors"
)

// DefaultTopic is the topic every app install subscribes to.
const DefaultTopic = "all_users"

// ErrNotConfigured is returned when no push credentials are set up.
var ErrNotConfigured = errors.New("push: messaging is not configured")

// Message is one topic notification.
type Message struct {
	Title    string
	Body     string
	ImageURL string
	Topic    string
}

// Sender delivers a message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

// Disabled is the Sender used when messaging is not configured.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}

// internal/app/system/push/dispatcher.go
package push

import (
	"context"
	"errors"
	"strings"
	"time"

	notificationstore "github.com/medisow/medisowadmin/internal/app/store/notifications"
	"github.com/medisow/medisowadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Send statuses.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// ErrInvalidMessage is returned for a message without title or body.
var ErrInvalidMessage = errors.New("title and body are required")

// Result is the outcome of one dispatch.
type Result struct {
	Status    string `json:"status"`
	MessageID string `json:"messageId,omitempty"`
}

// Dispatcher makes a single delivery attempt and writes one log row
// whatever the outcome. It never retries.
type Dispatcher struct {
	sender Sender
	log    *notificationstore.Store
	zlog   *zap.Logger
	now    func() time.Time
}

func NewDispatcher(sender Sender, log *notificationstore.Store, logger *zap.Logger) *Dispatcher {
	if sender == nil {
		sender = Disabled{}
	}
	return &Dispatcher{sender: sender, log: log, zlog: logger, now: time.Now}
}

func (d *Dispatcher) Send(ctx context.Context, m Message) (Result, error) {
	m.Title = strings.TrimSpace(m.Title)
	m.Body = strings.TrimSpace(m.Body)
	if m.Title == "" || m.Body == "" {
		return Result{}, ErrInvalidMessage
	}
	if m.Topic == "" {
		m.Topic = DefaultTopic
	}

	row := models.Notification{
		Title: m.Title,
		Body:  m.Body,
		Topic: m.Topic,
	}
	if m.ImageURL != "" {
		img := m.ImageURL
		row.ImageURL = &img
	}

	id, sendErr := d.sender.Send(ctx, m)
	row.SentAt = d.now()
	row.Successful = sendErr == nil
	row.MessageID = id
	if sendErr != nil {
		row.Error = sendErr.Error()
	}

	// The log write must not be skipped because the request context
	// ended during the send.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if _, err := d.log.Append(logCtx, row); err != nil {
		d.zlog.Error("notification log write failed",
			zap.String("topic", m.Topic), zap.Bool("successful", row.Successful), zap.Error(err))
	}

	if sendErr != nil {
		d.zlog.Warn("push send failed", zap.String("topic", m.Topic), zap.Error(sendErr))
		return Result{Status: StatusFailed}, sendErr
	}
	d.zlog.Info("push sent", zap.String("topic", m.Topic), zap.String("message_id", id))
	return Result{Status: StatusSent, MessageID: id}, nil
}

// History lists the send log newest first.
func (d *Dispatcher) History(ctx context.Context) ([]models.Notification, error) {
	return d.log.History(ctx)
}

// internal/domain/models/notification.go
package models

import "time"

// Notification is one row of the push notification log.
type Notification struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Body       string    `bson:"body" json:"body"`
	ImageURL   *string   `bson:"imageUrl" json:"imageUrl"`
	Topic      string    `bson:"topic" json:"topic"`
	SentAt     time.Time `bson:"sentAt" json:"sentAt"`
	Successful bool      `bson:"successful" json:"successful"`
	Error      string    `bson:"error,omitempty" json:"error,omitempty"`
	MessageID  string    `bson:"messageId,omitempty" json:"messageId,omitempty"`
}

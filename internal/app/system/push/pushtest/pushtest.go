// Package pushtest provides a recording push.Sender for tests.
package pushtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/medisow/medisowadmin/internal/app/system/push"
)

// FakeSender records messages. It returns Err when set and otherwise a
// sequential message id.
type FakeSender struct {
	mu   sync.Mutex
	Sent []push.Message
	Err  error
}

func (f *FakeSender) Send(ctx context.Context, m push.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	f.Sent = append(f.Sent, m)
	return fmt.Sprintf("projects/test/messages/%d", len(f.Sent)), nil
}

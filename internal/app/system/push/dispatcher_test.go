package push_test

import (
	"context"
	"errors"
	"testing"

	notificationstore "github.com/medisow/medisowadmin/internal/app/store/notifications"
	"github.com/medisow/medisowadmin/internal/app/system/push"
	"github.com/medisow/medisowadmin/internal/app/system/push/pushtest"
	"github.com/medisow/medisowadmin/internal/testutil"
	"go.uber.org/zap"
)

func newDispatcher(t *testing.T, s push.Sender) (*push.Dispatcher, *notificationstore.Store) {
	t.Helper()
	log := notificationstore.New(testutil.NewDocStore(t))
	return push.NewDispatcher(s, log, zap.NewNop()), log
}

func TestDispatcher_SuccessLogsOneRow(t *testing.T) {
	sender := &pushtest.FakeSender{}
	d, log := newDispatcher(t, sender)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := d.Send(ctx, push.Message{Title: " Sale ", Body: "50% off", ImageURL: "https://img/x.png"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if res.Status != push.StatusSent || res.MessageID == "" {
		t.Fatalf("result = %+v", res)
	}
	if len(sender.Sent) != 1 || sender.Sent[0].Topic != push.DefaultTopic || sender.Sent[0].Title != "Sale" {
		t.Fatalf("sent = %+v", sender.Sent)
	}

	rows, err := log.History(ctx)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if !r.Successful || r.MessageID != res.MessageID || r.Topic != push.DefaultTopic {
		t.Errorf("row = %+v", r)
	}
	if r.ImageURL == nil || *r.ImageURL != "https://img/x.png" {
		t.Errorf("ImageURL = %v", r.ImageURL)
	}
}

func TestDispatcher_FailureLogsOneRowWithError(t *testing.T) {
	sender := &pushtest.FakeSender{Err: errors.New("quota exceeded")}
	d, log := newDispatcher(t, sender)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := d.Send(ctx, push.Message{Title: "t", Body: "b", Topic: "doctors"})
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Status != push.StatusFailed {
		t.Errorf("Status = %q", res.Status)
	}

	rows, _ := log.History(ctx)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (no retry)", len(rows))
	}
	if rows[0].Successful || rows[0].Error != "quota exceeded" || rows[0].Topic != "doctors" {
		t.Errorf("row = %+v", rows[0])
	}
	if rows[0].ImageURL != nil {
		t.Errorf("ImageURL should be null")
	}
}

func TestDispatcher_RejectsEmptyMessage(t *testing.T) {
	sender := &pushtest.FakeSender{}
	d, log := newDispatcher(t, sender)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []push.Message{
		{Title: "", Body: "b"},
		{Title: "t", Body: "   "},
	}
	for _, m := range tests {
		if _, err := d.Send(ctx, m); !errors.Is(err, push.ErrInvalidMessage) {
			t.Errorf("Send(%+v) err = %v", m, err)
		}
	}
	if len(sender.Sent) != 0 {
		t.Error("sender should not be called")
	}
	if rows, _ := log.History(ctx); len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestDispatcher_DisabledSender(t *testing.T) {
	d, log := newDispatcher(t, nil)
	ctx := context.Background()

	_, err := d.Send(ctx, push.Message{Title: "t", Body: "b"})
	if !errors.Is(err, push.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	rows, _ := log.History(ctx)
	if len(rows) != 1 || rows[0].Successful {
		t.Fatalf("rows = %+v", rows)
	}
}

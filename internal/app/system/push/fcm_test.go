package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFCM_SendBuildsTopicMessage(t *testing.T) {
	var got fcmRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = w.Write([]byte(`{"name":"projects/p/messages/42"}`))
	}))
	defer srv.Close()

	f := NewFCMWithClient(srv.Client(), srv.URL)
	id, err := f.Send(context.Background(), Message{Title: "T", Body: "B", ImageURL: "https://i", Topic: "all_users"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if id != "projects/p/messages/42" {
		t.Errorf("id = %q", id)
	}
	if got.Message.Topic != "all_users" || got.Message.Notification.Title != "T" ||
		got.Message.Notification.Body != "B" || got.Message.Notification.Image != "https://i" {
		t.Errorf("request = %+v", got)
	}
}

func TestFCM_SendReportsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	_, err := NewFCMWithClient(srv.Client(), srv.URL).Send(context.Background(), Message{Title: "T", Body: "B"})
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("err = %v", err)
	}
}

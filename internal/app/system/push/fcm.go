// internal/app/system/push/fcm.go
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

const messagingScope = "https://www.googleapis.com/auth/firebase.messaging"

// FCM sends through the Firebase Cloud Messaging HTTP v1 API.
type FCM struct {
	client   *http.Client
	endpoint string
}

// NewFCM authenticates with the service account JSON at credentialsFile,
// or with application default credentials when it is empty. projectID
// defaults to the credentials' project.
func NewFCM(ctx context.Context, projectID, credentialsFile string) (*FCM, error) {
	var (
		creds *google.Credentials
		err   error
	)
	if credentialsFile != "" {
		data, rerr := os.ReadFile(credentialsFile)
		if rerr != nil {
			return nil, fmt.Errorf("push: read credentials: %w", rerr)
		}
		creds, err = google.CredentialsFromJSON(ctx, data, messagingScope)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, messagingScope)
	}
	if err != nil {
		return nil, fmt.Errorf("push: load credentials: %w", err)
	}
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("push: no project id in config or credentials")
	}
	endpoint := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", projectID)
	return NewFCMWithClient(oauth2Client(ctx, creds), endpoint), nil
}

// NewFCMWithClient uses an already-authenticated client.
func NewFCMWithClient(client *http.Client, endpoint string) *FCM {
	return &FCM{client: client, endpoint: endpoint}
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

type fcmMessage struct {
	Topic        string          `json:"topic"`
	Notification fcmNotification `json:"notification"`
}

type fcmRequest struct {
	Message fcmMessage `json:"message"`
}

type fcmResponse struct {
	Name string `json:"name"`
}

func (f *FCM) Send(ctx context.Context, m Message) (string, error) {
	body, err := json.Marshal(fcmRequest{Message: fcmMessage{
		Topic:        m.Topic,
		Notification: fcmNotification{Title: m.Title, Body: m.Body, Image: m.ImageURL},
	}})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("push: send: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("push: fcm returned %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	var out fcmResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("push: decode response: %w", err)
	}
	return out.Name, nil
}

package jsonio

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type sample struct {
	Name  string  `json:"name" validate:"required,max=5"`
	Group *string `json:"group,omitempty" validate:"omitempty,oneof=A B"`
}

func decode(body string) (sample, error) {
	var s sample
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := Decode(httptest.NewRecorder(), r, &s)
	return s, err
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"ok", `{"name":"abc"}`, ""},
		{"unknown field", `{"name":"abc","role":"x"}`, "unknown field"},
		{"empty", ``, "empty"},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
		{"missing required", `{}`, "name is required"},
		{"too long", `{"name":"abcdefg"}`, "name exceeds 5"},
		{"bad enum", `{"name":"a","group":"C"}`, "group must be one of: A B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(tt.body)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var bre *BadRequestError
			if !errors.As(err, &bre) {
				t.Fatalf("err = %v, want *BadRequestError", err)
			}
			if !strings.Contains(bre.Msg, tt.wantErr) {
				t.Errorf("message %q does not contain %q", bre.Msg, tt.wantErr)
			}
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	body := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	_, err := decode(body)
	var bre *BadRequestError
	if !errors.As(err, &bre) || !strings.Contains(bre.Msg, "too large") {
		t.Fatalf("err = %v", err)
	}
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, http.StatusCreated, map[string]string{"id": "x"})
	if rec.Code != http.StatusCreated {
		t.Errorf("code = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"id":"x"}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

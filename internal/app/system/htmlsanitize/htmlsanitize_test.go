package htmlsanitize_test

import (
	"testing"

	"github.com/medisow/medisowadmin/internal/app/system/htmlsanitize"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Paracetamol 500mg", "Paracetamol 500mg"},
		{"ampersand kept", "Tom & Jerry", "Tom & Jerry"},
		{"tags stripped", "<p><strong>Bold</strong> text</p>", "Bold text"},
		{"script removed", "Hello<script>alert('x')</script>", "Hello"},
		{"trimmed", "  spaced  ", "spaced"},
		{"attribute payload", `<img src=x onerror="alert(1)">Hi`, "Hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextPtr(t *testing.T) {
	if htmlsanitize.TextPtr(nil) != nil {
		t.Error("nil should stay nil")
	}
	in := "<b>x</b>"
	if got := htmlsanitize.TextPtr(&in); got == nil || *got != "x" {
		t.Errorf("TextPtr = %v", got)
	}
}

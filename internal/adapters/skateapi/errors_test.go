package skateapi

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"skate_admin/internal/domain"
)

func TestNewAPIError_MessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"spring message", `{"status":400,"message":"Le nom est requis"}`, "Le nom est requis"},
		{"nested error", `{"error":{"message":"quota"}}`, "quota"},
		{"validation list", `{"errors":[{"defaultMessage":"zipCode invalide"}]}`, "zipCode invalide"},
		{"string list", `["boom"]`, "boom"},
		{"plain text", `gateway exploded`, "gateway exploded"},
		{"empty body", ``, "Bad Request"},
		{"no known key", `{"foo":"bar"}`, "Bad Request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newAPIError("POST", "/spots", 400, []byte(tc.raw))
			if e.Message != tc.want {
				t.Fatalf("message = %q, want %q", e.Message, tc.want)
			}
		})
	}
}

func TestNewAPIError_KeepsParsedBody(t *testing.T) {
	e := newAPIError("POST", "/admin/instructors", 409, []byte(`{"message":"email déjà utilisé","field":"email"}`))
	body, ok := e.Body.(map[string]any)
	if !ok || body["field"] != "email" {
		t.Fatalf("unexpected body: %#v", e.Body)
	}
	if !errors.Is(e, domain.ErrConflict) {
		t.Fatalf("409 should match ErrConflict")
	}
	if errors.Is(e, domain.ErrNotFound) {
		t.Fatalf("409 should not match ErrNotFound")
	}
}

func TestNewAPIError_LongMessageKeepsRunesWhole(t *testing.T) {
	raw := "x" + strings.Repeat("é", 150)
	e := newAPIError("GET", "/spots", 500, []byte(raw))
	if !utf8.ValidString(e.Message) {
		t.Fatalf("message is not valid UTF-8: %q", e.Message)
	}
	if !strings.HasSuffix(e.Message, "é…") || len(e.Message) > 200+len("…") {
		t.Fatalf("unexpected truncation: %q", e.Message)
	}
}

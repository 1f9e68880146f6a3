package skateapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"skate_admin/internal/domain"
)

// Keys the backend (and its gateway) use for a human-readable reason, in
// order of preference.
var messageAliases = []string{
	"message",
	"error.message",
	"detail",
	"error",
	"title",
	"errors.0.message",
	"errors.0.defaultMessage",
	"errors.0",
}

func newAPIError(method, endpoint string, status int, raw []byte) *domain.APIError {
	e := &domain.APIError{Method: method, Endpoint: endpoint, Status: status}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		e.Message = http.StatusText(status)
		return e
	}
	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		text := string(trimmed)
		e.Body = text
		e.Message = truncate(text, 200)
		return e
	}
	e.Body = parsed
	e.Message = messageFrom(parsed)
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

func messageFrom(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		if len(t) > 0 {
			return messageFrom(t[0])
		}
	case map[string]any:
		for _, path := range messageAliases {
			if s, ok := lookupAny(t, path).(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// lookupAny: safe nested lookup with dot paths on maps; numeric parts index arrays.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch obj := cur.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(obj) {
				return nil
			}
			cur = obj[i]
		default:
			return nil
		}
	}
	return cur
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}

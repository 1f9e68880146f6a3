// Package format renders durations, prices and phone numbers the way the
// admin screens show them.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration renders minutes as "45 min", "2h" or "1h05min". Negative means
// unknown.
func Duration(minutes int) string {
	if minutes < 0 {
		return "-"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dmin", h, m)
}

// Price renders cents in French notation: 150000 -> "1 500,00 €".
func Price(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	euros, rest := cents/100, cents%100
	return fmt.Sprintf("%s%s,%02d €", sign, group(euros), rest)
}

func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Phone formats a French number as "06 12 34 56 78". A "+33" prefix becomes
// "0"; anything that is not 10 digits afterwards is returned unchanged.
func Phone(raw string) string {
	if raw == "" {
		return ""
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if strings.HasPrefix(digits, "33") {
		digits = "0" + digits[2:]
	}
	if len(digits) != 10 {
		return raw
	}
	parts := make([]string, 0, 5)
	for i := 0; i < 10; i += 2 {
		parts = append(parts, digits[i:i+2])
	}
	return strings.Join(parts, " ")
}

package forms

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

type RuleKind int

const (
	RuleRequired RuleKind = iota
	RuleMinLength
	RuleMaxLength
	RuleMin
	RuleMax
	RulePattern
	RuleEmail
	RuleOneOf
)

// Rule is one declarative constraint. Message overrides the generated text.
type Rule struct {
	Kind    RuleKind
	Value   float64
	Pattern *regexp.Regexp
	Options []string
	Message string
}

func Required() Rule            { return Rule{Kind: RuleRequired} }
func MinLength(n int) Rule      { return Rule{Kind: RuleMinLength, Value: float64(n)} }
func MaxLength(n int) Rule      { return Rule{Kind: RuleMaxLength, Value: float64(n)} }
func Min(v float64) Rule        { return Rule{Kind: RuleMin, Value: v} }
func Max(v float64) Rule        { return Rule{Kind: RuleMax, Value: v} }
func Email() Rule               { return Rule{Kind: RuleEmail} }
func OneOf(opts ...string) Rule { return Rule{Kind: RuleOneOf, Options: opts} }

func Pattern(expr string) Rule {
	return Rule{Kind: RulePattern, Pattern: regexp.MustCompile(expr)}
}

func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// RFC 5322 subset, the same shape browsers accept. Length limits are checked
// separately since RE2 has no lookahead.
var emailRe = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

func validEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	local, _, ok := strings.Cut(s, "@")
	if !ok || len(local) > 64 {
		return false
	}
	return emailRe.MatchString(s)
}

// check returns "" when v satisfies r. Empty values only fail Required.
func (r Rule) check(f Field, v string) string {
	if v == "" && r.Kind != RuleRequired {
		return ""
	}
	fail := func(def string) string {
		if r.Message != "" {
			return r.Message
		}
		return def
	}
	n := strconv.FormatFloat(r.Value, 'f', -1, 64)

	switch r.Kind {
	case RuleRequired:
		if v == "" {
			return fail(f.Label + " est requis")
		}
	case RuleMinLength:
		if utf8.RuneCountInString(v) < int(r.Value) {
			return fail(f.Label + " doit contenir au moins " + n + " caractères")
		}
	case RuleMaxLength:
		if utf8.RuneCountInString(v) > int(r.Value) {
			return fail(f.Label + " ne peut pas dépasser " + n + " caractères")
		}
	case RuleMin, RuleMax:
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return "" // reported by the kind check
		}
		if r.Kind == RuleMin && x < r.Value {
			return fail(f.Label + " doit être supérieur ou égal à " + n)
		}
		if r.Kind == RuleMax && x > r.Value {
			return fail(f.Label + " doit être inférieur ou égal à " + n)
		}
	case RulePattern:
		if !r.Pattern.MatchString(v) {
			return fail(f.Label + " n'est pas au bon format")
		}
	case RuleEmail:
		if !validEmail(v) {
			return fail(f.Label + " n'est pas valide")
		}
	case RuleOneOf:
		if !slices.Contains(r.Options, v) {
			return fail(f.Label + " doit être l'une des valeurs proposées")
		}
	}
	return ""
}

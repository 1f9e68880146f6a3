// Package forms keeps field rules as data and tracks raw input, touched
// state and errors for one form instance.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrDisabled     = errors.New("form is disabled")
)

const SummaryMessage = "Veuillez corriger les erreurs avant de soumettre le formulaire"

type Kind int

const (
	Text Kind = iota
	Int
	Float
	Bool
	Enum
)

type Option struct {
	Value string
	Label string
}

type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Rules   []Rule
	Options []Option
	Default string
	Help    string
}

func (f Field) Required() bool {
	for _, r := range f.Rules {
		if r.Kind == RuleRequired {
			return true
		}
	}
	return false
}

func (f Field) option(v string) (Option, bool) {
	for _, o := range f.Options {
		if strings.EqualFold(o.Value, v) {
			return o, true
		}
	}
	return Option{}, false
}

// Schema is an ordered list of fields.
type Schema struct {
	Fields []Field
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

type Form struct {
	schema   Schema
	values   map[string]string
	touched  map[string]bool
	disabled bool
}

func New(s Schema) *Form {
	f := &Form{schema: s}
	f.Reset()
	return f
}

func (f *Form) Schema() Schema { return f.schema }

// Reset restores defaults and clears touched state.
func (f *Form) Reset() {
	f.values = make(map[string]string, len(f.schema.Fields))
	f.touched = map[string]bool{}
	for _, fd := range f.schema.Fields {
		f.values[fd.Name] = fd.Default
	}
}

// Set stores user input and marks the field touched.
func (f *Form) Set(name, value string) error {
	if f.disabled {
		return ErrDisabled
	}
	fd, ok := f.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.values[name] = normalize(fd, value)
	f.touched[name] = true
	return nil
}

// Patch seeds values from a record without touching anything. Unknown keys
// are ignored.
func (f *Form) Patch(values map[string]string) {
	for k, v := range values {
		if fd, ok := f.schema.Field(k); ok {
			f.values[k] = normalize(fd, v)
		}
	}
}

func normalize(fd Field, v string) string {
	if fd.Kind != Text {
		v = strings.TrimSpace(v)
	}
	switch fd.Kind {
	case Bool:
		switch strings.ToLower(v) {
		case "true", "oui", "yes", "1":
			return "true"
		case "false", "non", "no", "0":
			return "false"
		}
	case Enum:
		if o, ok := fd.option(v); ok {
			return o.Value
		}
	case Float:
		return strings.Replace(v, ",", ".", 1)
	}
	return v
}

func (f *Form) Value(name string) string { return f.values[name] }

func (f *Form) Disable()       { f.disabled = true }
func (f *Form) Enable()        { f.disabled = false }
func (f *Form) Disabled() bool { return f.disabled }

func (f *Form) Touched(name string) bool { return f.touched[name] }

func (f *Form) AnyTouched() bool { return len(f.touched) > 0 }

func (f *Form) MarkAllTouched() {
	for _, fd := range f.schema.Fields {
		f.touched[fd.Name] = true
	}
}

// FieldError returns the first failing rule message for name, or "".
func (f *Form) FieldError(name string) string {
	fd, ok := f.schema.Field(name)
	if !ok {
		return ""
	}
	return fieldError(fd, f.values[name])
}

func fieldError(fd Field, v string) string {
	for _, r := range fd.Rules {
		if r.Kind != RuleRequired {
			continue
		}
		if msg := r.check(fd, v); msg != "" {
			return msg
		}
	}
	if v == "" {
		return ""
	}
	if msg := kindError(fd, v); msg != "" {
		return msg
	}
	for _, r := range fd.Rules {
		if msg := r.check(fd, v); msg != "" {
			return msg
		}
	}
	return ""
}

func kindError(fd Field, v string) string {
	switch fd.Kind {
	case Int:
		if _, err := strconv.Atoi(v); err != nil {
			return fd.Label + " doit être un nombre entier"
		}
	case Float:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fd.Label + " doit être un nombre"
		}
	case Bool:
		if v != "true" && v != "false" {
			return fd.Label + " doit être oui ou non"
		}
	case Enum:
		if len(fd.Options) > 0 {
			if _, ok := fd.option(v); !ok {
				return fd.Label + " doit être l'une des valeurs proposées"
			}
		}
	}
	return ""
}

// Errors maps every invalid field to its first message.
func (f *Form) Errors() map[string]string {
	out := map[string]string{}
	for _, fd := range f.schema.Fields {
		if msg := fieldError(fd, f.values[fd.Name]); msg != "" {
			out[fd.Name] = msg
		}
	}
	return out
}

// VisibleErrors only reports touched fields.
func (f *Form) VisibleErrors() map[string]string {
	out := map[string]string{}
	for name, msg := range f.Errors() {
		if f.touched[name] {
			out[name] = msg
		}
	}
	return out
}

func (f *Form) Valid() bool { return len(f.Errors()) == 0 }

// Summary returns the banner and per-field lines in schema order once the
// form was touched and is invalid.
func (f *Form) Summary() (string, []string) {
	if !f.AnyTouched() {
		return "", nil
	}
	var lines []string
	for _, fd := range f.schema.Fields {
		if msg := fieldError(fd, f.values[fd.Name]); msg != "" && f.touched[fd.Name] {
			lines = append(lines, msg)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}
	return SummaryMessage, lines
}

func (f *Form) String(name string) string { return f.values[name] }

// OptString is nil for an empty value.
func (f *Form) OptString(name string) *string {
	v := f.values[name]
	if v == "" {
		return nil
	}
	return &v
}

func (f *Form) Int(name string) int {
	n, _ := strconv.Atoi(f.values[name])
	return n
}

func (f *Form) Int64(name string) int64 {
	n, _ := strconv.ParseInt(f.values[name], 10, 64)
	return n
}

func (f *Form) OptInt(name string) *int {
	n, err := strconv.Atoi(f.values[name])
	if err != nil {
		return nil
	}
	return &n
}

func (f *Form) Float(name string) float64 {
	x, _ := strconv.ParseFloat(f.values[name], 64)
	return x
}

func (f *Form) Bool(name string) bool { return f.values[name] == "true" }

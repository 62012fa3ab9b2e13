package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/goliatone/go-formflow/pkg/form"
)

// User-facing messages, one per check.
const (
	MessageEmail          = "Please enter a valid email address."
	MessageFullName       = "Please enter your full name."
	MessagePhone          = "Please enter a valid phone number."
	MessageProgram        = "Please select a program."
	MessageContactName    = "Please enter your name."
	MessageContactSubject = "Please enter a subject."
	MessageContactMessage = "Please enter a message (at least 10 characters)."
)

var (
	// Whitespace mirrors the browser's \s class: ASCII space characters,
	// vertical tab, Unicode separators and the BOM.
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
)

// Verdict is the result of one validation pass. Message is empty when Valid.
type Verdict struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Err returns nil for valid verdicts and a ValidationError otherwise.
func (v Verdict) Err() error {
	if v.Valid {
		return nil
	}
	return ValidationError{Field: v.Field, Message: v.Message}
}

// Validator validates a field set for a form kind.
type Validator interface {
	Validate(fields form.FieldSet, kind form.Kind) Verdict
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(fields form.FieldSet, kind form.Kind) Verdict

// Validate calls fn.
func (fn ValidatorFunc) Validate(fields form.FieldSet, kind form.Kind) Verdict {
	return fn(fields, kind)
}

// Default is the stock rule set.
var Default Validator = ValidatorFunc(Validate)

type check struct {
	field   string
	message string
	ok      func(value string, present bool) bool
}

var (
	emailCheck = check{form.FieldEmail, MessageEmail, func(v string, present bool) bool {
		return present && emailPattern.MatchString(v)
	}}

	applicationChecks = []check{
		emailCheck,
		{form.FieldFullName, MessageFullName, minTrimmed(2)},
		{form.FieldPhone, MessagePhone, func(v string, present bool) bool {
			return present && phonePattern.MatchString(NormalizePhone(v))
		}},
		{form.FieldProgram, MessageProgram, func(v string, present bool) bool {
			return present && v != ""
		}},
	}

	contactChecks = []check{
		emailCheck,
		{form.FieldContactName, MessageContactName, minTrimmed(2)},
		{form.FieldContactSubject, MessageContactSubject, minTrimmed(3)},
		{form.FieldContactMessage, MessageContactMessage, minTrimmed(10)},
	}
)

// Validate runs the checks for kind in order and reports the first failure.
// Kinds other than application and contact only get the email check.
func Validate(fields form.FieldSet, kind form.Kind) Verdict {
	for _, c := range checksFor(kind) {
		value, present := fields.Get(c.field)
		if !c.ok(value, present) {
			return Verdict{Valid: false, Message: c.message, Field: c.field}
		}
	}
	return Verdict{Valid: true}
}

func checksFor(kind form.Kind) []check {
	switch kind {
	case form.KindApplication:
		return applicationChecks
	case form.KindContact:
		return contactChecks
	default:
		return []check{emailCheck}
	}
}

// minTrimmed measures the way browser scripts do: trim() removes Unicode
// white space and the BOM, and length counts UTF-16 code units.
func minTrimmed(n int) func(string, bool) bool {
	return func(value string, present bool) bool {
		return present && utf16Len(strings.TrimFunc(value, isTrimSpace)) >= n
	}
}

func isTrimSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// NormalizePhone strips whitespace, hyphens, parentheses and dots so that
// "(555) 123-4567" and "555.123.4567" reduce to digits plus an optional
// leading plus sign.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r), r == '-', r == '(', r == ')', r == '.':
			return -1
		}
		return r
	}, raw)
}

package form

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Kind selects the field set and validation rules of a form.
type Kind string

const (
	// KindApplication is the programme application form.
	KindApplication Kind = "application"
	// KindContact is the general contact form.
	KindContact Kind = "contact"
)

// Field names collected by the two forms.
const (
	FieldEmail          = "email"
	FieldFullName       = "fullName"
	FieldPhone          = "phone"
	FieldProgram        = "program"
	FieldContactName    = "contactName"
	FieldContactSubject = "contactSubject"
	FieldContactMessage = "contactMessage"
)

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindApplication, KindContact}
}

// ParseKind converts user input into a Kind, ignoring case and surrounding
// whitespace.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindApplication:
		return KindApplication, nil
	case KindContact:
		return KindContact, nil
	}
	return "", fmt.Errorf("form: unknown kind %q", raw)
}

func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k == KindApplication || k == KindContact
}

// Fields lists the field names the kind collects, in validation order.
func (k Kind) Fields() []string {
	switch k {
	case KindApplication:
		return []string{FieldEmail, FieldFullName, FieldPhone, FieldProgram}
	case KindContact:
		return []string{FieldEmail, FieldContactName, FieldContactSubject, FieldContactMessage}
	default:
		return []string{FieldEmail}
	}
}

// FieldSet holds the raw values of one submission attempt. The zero value is
// an empty set. A FieldSet is never mutated after construction.
type FieldSet struct {
	values map[string]string
}

// NewFieldSet copies values into a new FieldSet. Keys are trimmed; empty keys
// are dropped.
func NewFieldSet(values map[string]string) FieldSet {
	if len(values) == 0 {
		return FieldSet{}
	}
	out := make(map[string]string, len(values))
	for name, value := range values {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		out[key] = value
	}
	return FieldSet{values: out}
}

// FieldSetFromValues keeps the first value of each key, the same way a
// browser collapses form data into a flat object.
func FieldSetFromValues(values url.Values) FieldSet {
	flat := make(map[string]string, len(values))
	for name, list := range values {
		if len(list) == 0 {
			continue
		}
		flat[name] = list[0]
	}
	return NewFieldSet(flat)
}

// Get returns the raw value and whether the field was present.
func (f FieldSet) Get(name string) (string, bool) {
	value, ok := f.values[name]
	return value, ok
}

// Value returns the raw value or an empty string when absent.
func (f FieldSet) Value(name string) string {
	return f.values[name]
}

// Len reports the number of fields.
func (f FieldSet) Len() int {
	return len(f.values)
}

// Names returns the field names sorted alphabetically.
func (f FieldSet) Names() []string {
	names := make([]string, 0, len(f.values))
	for name := range f.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the underlying values.
func (f FieldSet) Map() map[string]string {
	out := make(map[string]string, len(f.values))
	for name, value := range f.values {
		out[name] = value
	}
	return out
}

// URLValues encodes the set as url.Values for form-encoded transports.
func (f FieldSet) URLValues() url.Values {
	out := make(url.Values, len(f.values))
	for name, value := range f.values {
		out.Set(name, value)
	}
	return out
}

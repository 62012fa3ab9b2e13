package form_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/form"
)

func TestParseKind(t *testing.T) {
	cases := map[string]form.Kind{
		"application":   form.KindApplication,
		" Contact ":     form.KindContact,
		"APPLICATION\n": form.KindApplication,
	}
	for raw, want := range cases {
		got, err := form.ParseKind(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %s, got %s", raw, want, got)
		}
	}

	if _, err := form.ParseKind("newsletter"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestFieldSetIsDetachedFromInput(t *testing.T) {
	input := map[string]string{
		"email":  "a@b.com",
		" name ": "Jo",
		"":       "dropped",
	}
	fields := form.NewFieldSet(input)
	input["email"] = "changed@example.com"

	if got := fields.Value("email"); got != "a@b.com" {
		t.Fatalf("field set mutated through input map: %q", got)
	}
	if diff := cmp.Diff([]string{"email", "name"}, fields.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	copied := fields.Map()
	copied["email"] = "other@example.com"
	if got := fields.Value("email"); got != "a@b.com" {
		t.Fatalf("field set mutated through Map copy: %q", got)
	}
}

func TestFieldSetFromValuesKeepsFirstValue(t *testing.T) {
	fields := form.FieldSetFromValues(url.Values{
		"program": {"CS", "Math"},
		"empty":   {},
	})

	if got := fields.Value("program"); got != "CS" {
		t.Fatalf("want first value, got %q", got)
	}
	if _, ok := fields.Get("empty"); ok {
		t.Fatalf("keys without values should be dropped")
	}
	if fields.Len() != 1 {
		t.Fatalf("want 1 field, got %d", fields.Len())
	}
}

func TestKindFieldsOrder(t *testing.T) {
	want := []string{"email", "fullName", "phone", "program"}
	if diff := cmp.Diff(want, form.KindApplication.Fields()); diff != "" {
		t.Fatalf("application fields (-want +got):\n%s", diff)
	}
	want = []string{"email", "contactName", "contactSubject", "contactMessage"}
	if diff := cmp.Diff(want, form.KindContact.Fields()); diff != "" {
		t.Fatalf("contact fields (-want +got):\n%s", diff)
	}
}

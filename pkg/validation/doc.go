// Package validation implements the client-side rules shared by the
// application and contact forms. Validate is pure: it reads a form.FieldSet,
// evaluates the checks of the requested kind in a fixed order and returns a
// Verdict describing the first failing check only. The email check always
// runs first, regardless of kind.
package validation

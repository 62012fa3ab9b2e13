// Package form defines the immutable inputs of a submission attempt: the form
// Kind that selects which rules apply, and the FieldSet captured from the
// user-entered values. Trigger layers (CLI prompts, HTTP handlers, tests)
// build a FieldSet once per attempt and hand it to the validation and
// submission packages; nothing downstream mutates it.
package form

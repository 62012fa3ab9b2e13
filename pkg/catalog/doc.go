// Package catalog loads presentation metadata for each form kind: titles,
// field labels, help text, program options and success notices.
package catalog

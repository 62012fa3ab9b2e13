// Package template defines the template engine seam used by HTML presenters.
// The gotemplate subpackage provides the go-template implementation.
package template

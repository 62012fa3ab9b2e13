package template

import "io"

// TemplateRenderer follows the github.com/goliatone/go-template engine
// contract. Rendered output is returned and also copied to every writer in
// out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

package template

import (
	"io"
)

// TemplateRenderer is the contract renderers rely on to execute templates.
// Implementations write the rendered output to every writer in out and also
// return it as a string.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

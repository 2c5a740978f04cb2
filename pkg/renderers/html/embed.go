package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	signupTemplate = "templates/signup.tmpl"
	cardTemplate   = "templates/card.tmpl"
)

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it before passing it back through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

package render

// RenderOptions describe per-request data renderers use to customise output
// without touching the form state.
type RenderOptions struct {
	// Action is the URL the sign-up form posts to. Defaults to "/signup".
	Action string
	// Locale selects translations when a Translator is configured.
	Locale string
	// Translator resolves page copy (title, button labels) by key.
	Translator Translator
	// OnMissing decides the text used when a translation is missing.
	OnMissing MissingTranslationHandler
	// FormErrors are shown above the fields, e.g. when the submission sink
	// rejected an otherwise valid form.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs (CSRF tokens and the like).
	HiddenFields map[string]string
}

// ActionOrDefault returns the configured action or "/signup".
func (o RenderOptions) ActionOrDefault() string {
	if o.Action == "" {
		return "/signup"
	}
	return o.Action
}

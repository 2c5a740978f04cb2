package html

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultTerms is the consent line rendered below the form.
const DefaultTerms = `By signing up, you agree to our <a href="/terms">Terms</a> &amp; <a href="/privacy">Privacy</a>.`

var (
	termsPolicyOnce sync.Once
	termsPolicy     *bluemonday.Policy
)

// SanitizeTerms keeps links and basic inline markup; everything else is
// stripped.
func SanitizeTerms(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(termsSanitizer().Sanitize(trimmed))
}

func termsSanitizer() *bluemonday.Policy {
	termsPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "br", "span")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href", "title").OnElements("a")
		termsPolicy = policy
	})
	return termsPolicy
}

package sink

import "strings"

// RedactEmail keeps the first character of the local part and the domain.
func RedactEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "[redacted]"
	}

	local := parts[0]
	domain := parts[1]
	if local == "" {
		return "***@" + domain
	}

	runes := []rune(local)
	return string(runes[0]) + "***@" + domain
}

// RedactName keeps the first character of the name.
func RedactName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	runes := []rune(name)
	return string(runes[0]) + "***"
}

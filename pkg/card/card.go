// Package card maps user info to the display model of the user card.
package card

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-signup/pkg/model"
)

// Card is the render surface of the user card.
type Card struct {
	Initial string `json:"initial" yaml:"initial"`
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
}

// Initial returns the first character of name upper-cased, or "" for an empty
// name. The name is not trimmed, so a leading space yields " ". Full case
// mapping applies, so "ß" becomes "SS".
func Initial(name string) string {
	if name == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return strings.ToUpper(name[:1])
	}
	return cases.Upper(language.Und).String(string(r))
}

// Build derives the card for user.
func Build(user model.UserInfo) Card {
	return Card{
		Initial: Initial(user.Name),
		Name:    user.Name,
		Email:   user.Email,
	}
}

// Empty reports whether the card has nothing to show.
func (c Card) Empty() bool {
	return c.Name == "" && c.Email == ""
}

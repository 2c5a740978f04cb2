package gotemplate

import (
	"strings"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("initial") {
		_ = pongo2.RegisterFilter("initial", filterInitial)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInitial returns the upper-cased first rune of the input.
func filterInitial(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	s := in.String()
	if s == "" {
		return pongo2.AsValue(""), nil
	}
	r, _ := utf8.DecodeRuneInString(s)
	return pongo2.AsValue(strings.ToUpper(string(r))), nil
}

package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Recipe identifies how a slot's content is built: a registered widget
// type name plus plain data parameters. Its text form is
// "type" or "type?key=value&key=value".
type Recipe struct {
	Type   string
	Params url.Values
}

// ParseRecipe parses the text form of a recipe
func ParseRecipe(s string) (Recipe, error) {
	s = strings.TrimSpace(s)
	typ, query, _ := strings.Cut(s, "?")
	typ = strings.ToLower(strings.TrimSpace(typ))
	if typ == "" {
		return Recipe{}, fmt.Errorf("parse recipe %q: empty widget type", s)
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return Recipe{}, fmt.Errorf("parse recipe %q: %w", s, err)
	}
	return Recipe{Type: typ, Params: params}, nil
}

// String returns the text form with parameters sorted by key
func (r Recipe) String() string {
	if len(r.Params) == 0 {
		return r.Type
	}
	return r.Type + "?" + r.Params.Encode()
}

// Get returns the first value of key, or def when absent
func (r Recipe) Get(key, def string) string {
	if v, ok := r.Params[key]; ok && len(v) > 0 {
		return v[0]
	}
	return def
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Web Design!":           "web-design",
		"  Brand   Identity  ": "-brand-identity-",
		"UI/UX":                 "uiux",
		"snake_case-ok":         "snake_case-ok",
		"Café Menus":            "caf-menus",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, in := range []string{"Web Design!", "Mobile Apps 2024", "ÉLAN Studio", "a\tb\nc", "--x--"} {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
	}
}

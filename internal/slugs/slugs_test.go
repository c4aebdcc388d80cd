package slugs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromURL(t *testing.T) {
	cases := map[string]string{
		"https://lauraballo.com/mon-slug":                    "mon-slug",
		"https://lauraballo.com/mon-slug.html":               "mon-slug",
		"https://lauraballo.com/blog/articles/mon-slug.html": "mon-slug",
		"https://lauraballo.com/mon-slug/":                   "mon-slug",
		"":                                                   "",
		"https://lauraballo.com/":                            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FromURL(in), in)
	}
}

func TestResolvePrefersURL(t *testing.T) {
	assert.Equal(t, "from-url", Resolve("https://lauraballo.com/from-url", "Some Title"))
}

func TestResolveFallsBackToTitle(t *testing.T) {
	got := Resolve("", "Some Title")
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, " ")
}

func TestTagSluggerUsesMapping(t *testing.T) {
	tags := NewTagSlugger(map[string]string{
		"Prise de parole en public": "prise-de-parole",
		"Leadership":                "leadership",
	})
	assert.Equal(t, []string{"prise-de-parole", "leadership"}, tags.Slugs([]string{"Prise de parole en public", "Leadership"}))
}

func TestTagSluggerFallsBackToNormalisation(t *testing.T) {
	tags := NewTagSlugger(nil)
	got := tags.Slug("Unmapped Tag")
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, " ")
}

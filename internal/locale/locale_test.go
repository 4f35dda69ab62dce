package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSetDeduplicatesBase(t *testing.T) {
	s := NewSet("pt", []string{"en", "PT", " es ", ""})
	assert.Equal(t, Locale("pt"), s.Base())
	assert.Equal(t, []Locale{"pt", "en", "es"}, s.Supported())
}

func TestNormalize(t *testing.T) {
	s := NewSet("pt", []string{"en", "es"})

	assert.Equal(t, Locale("pt"), s.Normalize(""))
	assert.Equal(t, Locale("en"), s.Normalize("EN"))
	assert.Equal(t, Locale("es"), s.Normalize(" es "))
}

func TestNormalizeUnknownLocalePassesThrough(t *testing.T) {
	s := NewSet("pt", []string{"en", "es"})

	// An unknown locale is not an error; it just finds no translation rows.
	assert.Equal(t, Locale("de"), s.Normalize("de"))
	assert.False(t, s.IsBase(s.Normalize("de")))
}

func TestMatchAcceptLanguage(t *testing.T) {
	s := NewSet("pt", []string{"en", "es"})

	assert.Equal(t, Locale("pt"), s.Match(""))
	assert.Equal(t, Locale("en"), s.Match("en-US,en;q=0.9"))
	assert.Equal(t, Locale("es"), s.Match("es-AR,es;q=0.8,en;q=0.5"))
	assert.Equal(t, Locale("pt"), s.Match("garbage;;;"))
}

func TestPickText(t *testing.T) {
	assert.Equal(t, "Caderno", PickText("Caderno", ""))
	assert.Equal(t, "Caderno", PickText("Caderno", "   "))
	assert.Equal(t, "Notebook", PickText("Caderno", "Notebook"))
}

func TestPickRichTextKeepsCanonicalMarkup(t *testing.T) {
	canonical := "<p>Feito a mao.</p>"

	assert.Equal(t, canonical, PickRichText(canonical, ""))
	assert.Equal(t, "<p>Handmade.</p>", PickRichText(canonical, "<p>Handmade.</p>"))
}

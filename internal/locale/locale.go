package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale identifies a translation language. Canonical rows are authored in
// the base locale; every other locale is an overlay.
type Locale string

func (l Locale) String() string { return string(l) }

// Set is the closed set of locales a deployment serves.
type Set struct {
	base      Locale
	supported []Locale
	matcher   language.Matcher
}

func NewSet(base string, others []string) Set {
	s := Set{base: Locale(strings.ToLower(base))}
	s.supported = append(s.supported, s.base)
	for _, o := range others {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "" || Locale(o) == s.base {
			continue
		}
		s.supported = append(s.supported, Locale(o))
	}

	tags := make([]language.Tag, 0, len(s.supported))
	for _, loc := range s.supported {
		tags = append(tags, language.Make(string(loc)))
	}
	s.matcher = language.NewMatcher(tags)
	return s
}

func (s Set) Base() Locale { return s.base }

func (s Set) IsBase(l Locale) bool { return l == s.base }

func (s Set) Supported() []Locale { return s.supported }

// Normalize maps an explicitly requested locale string onto the set. An
// unknown locale is passed through unchanged: lookups for it simply find no
// translation rows, which is the wanted behavior, not an error.
func (s Set) Normalize(raw string) Locale {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return s.base
	}
	for _, loc := range s.supported {
		if Locale(raw) == loc {
			return loc
		}
	}
	return Locale(raw)
}

// Match picks the best supported locale for an Accept-Language header,
// falling back to the base locale.
func (s Set) Match(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return s.base
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return s.base
	}
	_, idx, conf := s.matcher.Match(desired...)
	if conf == language.No || idx < 0 || idx >= len(s.supported) {
		return s.base
	}
	return s.supported[idx]
}

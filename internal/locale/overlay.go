package locale

import "strings"

// PickText implements the overlay rule shared by product, category and
// variation text fields: the translated value wins when present and
// non-empty, the canonical value otherwise.
func PickText(canonical, translated string) string {
	if strings.TrimSpace(translated) != "" {
		return translated
	}
	return canonical
}

// PickRichText applies the same rule to rich-text descriptions. A non-base
// locale whose translation left the description empty still gets the
// canonical markup: showing untranslated content beats showing nothing.
func PickRichText(canonical, translated string) string {
	return PickText(canonical, translated)
}

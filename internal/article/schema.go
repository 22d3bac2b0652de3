package article

import "strings"

// Canonical heading names for the article skeleton. Every generated article
// is expected to carry exactly these sections; anything else is pruned by the
// normalizer and flagged by the evaluator.
const (
	SectionIntro       = "Einleitung"
	SectionBackground  = "Hintergrund & Tipps"
	SectionRecipe      = "Rezept:" // prefix, free-form recipe name follows
	SectionIngredients = "Zutaten"
	SectionSteps       = "Schritt für Schritt"
	SectionTimes       = "Zeiten & Portionen"
	SectionLinkIdeas   = "Interne Link-Ideen"
)

// disallowedH2 lists headings the generation service keeps inventing even
// when told not to. They are removed outright, content included.
var disallowedH2 = []string{
	"Fazit",
	"Zusammenfassung",
	"Schlusswort",
	"Abschluss",
	"Abschließende Gedanken",
}

// NormalizeHeading collapses the whitespace quirks the generation service
// produces around "&" and between words, so "Hintergrund  &Tipps" still
// resolves to the canonical section.
func NormalizeHeading(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, "&", " & ")
	return strings.Join(strings.Fields(h), " ")
}

// HeadingMatches reports whether a raw heading line title refers to the given
// canonical section name. Prefix sections ("Rezept:") match on the prefix.
func HeadingMatches(raw, canonical string) bool {
	n := NormalizeHeading(raw)
	if strings.HasSuffix(canonical, ":") {
		return strings.HasPrefix(n, strings.TrimSuffix(canonical, ":")+":") ||
			strings.HasPrefix(n, strings.TrimSuffix(canonical, ":")+" :")
	}
	return strings.EqualFold(n, NormalizeHeading(canonical))
}

// AllowedH2 reports whether an H2 heading belongs to the article schema.
func AllowedH2(raw string) bool {
	for _, c := range []string{SectionIntro, SectionBackground, SectionRecipe, SectionLinkIdeas} {
		if HeadingMatches(raw, c) {
			return true
		}
	}
	return false
}

// DisallowedH2 reports whether an H2 heading is on the explicit removal list.
func DisallowedH2(raw string) bool {
	for _, c := range disallowedH2 {
		if HeadingMatches(raw, c) {
			return true
		}
	}
	return false
}

// AllowedH3 reports whether an H3 heading belongs to the recipe sub-schema.
// H3 headings are only valid inside the "Rezept:" section.
func AllowedH3(raw string) bool {
	for _, c := range []string{SectionIngredients, SectionSteps, SectionTimes} {
		if HeadingMatches(raw, c) {
			return true
		}
	}
	return false
}

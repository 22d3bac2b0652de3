package engine

import "strings"

// dishDestinations maps dish names to the country typically associated with
// them, used when no destination is given.
var dishDestinations = []struct {
	dish string
	dest string
}{
	{"shakshuka", "Israel"},
	{"pad thai", "Thailand"},
	{"carbonara", "Italien"},
	{"khachapuri", "Georgien"},
	{"arepas", "Kolumbien"},
	{"laksa", "Malaysia"},
	{"ratatouille", "Frankreich"},
	{"paella", "Spanien"},
	{"chili", "USA"},
	{"bibimbap", "Südkorea"},
}

// GuessDestination infers a travel destination from the topic and keyword.
// Returns "" when nothing matches.
func GuessDestination(text string) string {
	s := strings.ToLower(text)
	for _, m := range dishDestinations {
		if strings.Contains(s, m.dish) {
			return m.dest
		}
	}
	return ""
}

// ModeClassifier decides whether the background section opens with a travel
// anecdote. destination is the caller-supplied value, not an inferred one.
type ModeClassifier func(topic, primaryKW, destination string) bool

// everyday dishes read oddly with an origin-story opener
var simpleDishMarkers = []string{
	"spiegelei", "rührei", "porridge", "haferbrei", "nudeln", "pasta",
	"salat", "sandwich", "brot", "reis", "kartoffeln", "omelett", "pfannkuchen",
	"tomatensoße", "butterbrot",
}

// DefaultClassifier wants a story only for non-trivial dishes with an
// explicit destination.
func DefaultClassifier(topic, primaryKW, destination string) bool {
	txt := strings.ToLower(topic + " " + primaryKW)
	for _, w := range simpleDishMarkers {
		if strings.Contains(txt, w) {
			return false
		}
	}
	return strings.TrimSpace(destination) != ""
}

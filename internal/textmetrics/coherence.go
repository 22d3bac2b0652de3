package textmetrics

import (
	"regexp"
	"strings"

	"github.com/annigue/Artikel-LLM/internal/article"
)

// CoherenceMetrics reports how well the background section connects to the
// introduction scene.
type CoherenceMetrics struct {
	IntroHasDestination      bool
	BackgroundHasDestination bool

	// BridgeOK is true when the background's first sentence carries a
	// transition marker or the destination itself. Outside story mode the
	// bridge is not required and the field is reported as true.
	BridgeOK bool

	// First-paragraph texture of the background section.
	BackgroundSentences int
	SensoryHits         int

	OK bool
}

var firstSentenceRE = regexp.MustCompile(`[.!?]\s`)

// Coherence extracts the scene-coherence metrics. The bridge and destination
// requirements are only enforced in story mode; a tips-mode article passes
// trivially.
func Coherence(d *article.Document, v Vocabulary, destination string, storyMode bool) CoherenceMetrics {
	intro := d.Section(article.SectionIntro)
	bg := d.Section(article.SectionBackground)

	m := CoherenceMetrics{
		IntroHasDestination:      containsDestination(intro, destination),
		BackgroundHasDestination: true,
	}
	if bg != "" {
		head := []rune(bg)
		if len(head) > 200 {
			head = head[:200]
		}
		m.BackgroundHasDestination = containsDestination(string(head), destination)
	}

	first := firstSentence(bg)
	bridge := false
	for _, marker := range v.BridgeMarkers {
		if strings.Contains(first, marker) {
			bridge = true
			break
		}
	}
	if destination != "" && strings.Contains(first, strings.ToLower(destination)) {
		bridge = true
	}

	para := firstParagraph(bg)
	m.BackgroundSentences = len(SentenceLengths(para))
	m.SensoryHits = v.SensoryCount(para)

	if storyMode {
		m.BridgeOK = bridge
		m.OK = m.IntroHasDestination && m.BackgroundHasDestination && bridge
	} else {
		m.BridgeOK = true
		m.OK = true
	}
	return m
}

func containsDestination(text, dest string) bool {
	if strings.TrimSpace(dest) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(dest))
}

func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if loc := firstSentenceRE.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.ToLower(text)
}

func firstParagraph(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return text[:i]
	}
	return text
}

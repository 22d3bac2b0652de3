// Package profile defines the target profile an article must satisfy to pass
// evaluation. A profile is built once per generation request from the
// caller's length bounds plus fixed defaults, and is immutable afterwards.
package profile

import "fmt"

// NarrativeMode decides how the background section may open.
type NarrativeMode string

const (
	// ModeAuto picks story or tips per the engine's classifier.
	ModeAuto NarrativeMode = "auto"
	// ModeTips opens the background directly with practical guidance.
	ModeTips NarrativeMode = "tips"
	// ModeStory requires a scene that bridges back to the introduction.
	ModeStory NarrativeMode = "story"
)

// DefaultNegativeList is the stock ban list of filler phrases.
var DefaultNegativeList = []string{
	"In diesem Artikel", "abschließend", "insgesamt", "innovativ", "köstlich",
	"einfach zuzubereiten", "im Folgenden", "es ist wichtig zu beachten",
	"nachstehend", "zusammenfassend", "Fazit", "Revolutioniere", "Tauche ein",
	"Erfahre mehr über", "Auf eine Reise gehen durch", "spannende Einblicke",
	"Die Macht von", "Entfessele die Kraft", "Meine erste Begegnung",
	"Nicht nur", "Hier sind einige", "Im Laufe der Jahre",
	"Ich habe festgelstellt",
}

// Profile is the full set of thresholds for one generation request.
type Profile struct {
	MinWords int
	MaxWords int

	MinTypeTokenRatio float64
	MinSentenceStdDev float64
	MinFirstPerson    int
	MinSecondPerson   int
	MaxFormalAddress  int
	MinNumbers        int

	BannedPhrases []string

	// Numbered-step bounds for the procedure section. The normalizer caps at
	// MaxStepsKept; the evaluator tolerates up to MaxSteps.
	MinSteps     int
	MaxSteps     int
	MaxStepsKept int

	TitleMinLen int
	TitleMaxLen int
	DescMinLen  int
	DescMaxLen  int

	// Background-story texture thresholds. Zero disables the bound.
	MinBackgroundSentences int
	MinSensoryWords        int

	TimeToleranceMin int
	PortionMin       int
	PortionMax       int

	Mode                NarrativeMode
	PlausibilityEnabled bool
}

// New builds a profile from the caller's word bounds and the fixed defaults.
func New(minWords, maxWords int) (Profile, error) {
	if minWords <= 0 || maxWords <= 0 {
		return Profile{}, fmt.Errorf("word bounds must be positive: min=%d max=%d", minWords, maxWords)
	}
	if minWords > maxWords {
		return Profile{}, fmt.Errorf("min words (%d) must not exceed max words (%d)", minWords, maxWords)
	}
	p := Default()
	p.MinWords = minWords
	p.MaxWords = maxWords
	return p, nil
}

// Default returns the stock profile (700–1000 words).
func Default() Profile {
	return Profile{
		MinWords:            700,
		MaxWords:            1000,
		MinTypeTokenRatio:   0.45,
		MinSentenceStdDev:   7.0,
		MinFirstPerson:      6,
		MinSecondPerson:     2,
		MaxFormalAddress:    0,
		MinNumbers:          3,
		BannedPhrases:       DefaultNegativeList,
		MinSteps:            6,
		MaxSteps:            12,
		MaxStepsKept:        10,
		TitleMinLen:         10,
		TitleMaxLen:         60,
		DescMinLen:          50,
		DescMaxLen:          155,
		TimeToleranceMin:    2,
		PortionMin:          1,
		PortionMax:          8,
		Mode:                ModeAuto,
		PlausibilityEnabled: true,
	}
}

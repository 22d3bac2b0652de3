// Package evaluate combines the metric extractors with a target profile into
// a verdict plus a full diagnostic report. Every check runs with no early
// exit, because the repair selector needs each individual outcome,
// not just the aggregate.
package evaluate

import (
	"github.com/annigue/Artikel-LLM/internal/article"
	"github.com/annigue/Artikel-LLM/internal/profile"
	"github.com/annigue/Artikel-LLM/internal/textmetrics"
)

// Input carries the per-request context the checks compare against.
type Input struct {
	PrimaryKeyword string
	Destination    string
	Details        string

	// StoryMode is the resolved narrative mode: true when the background
	// section must open with a scene bridging the introduction.
	StoryMode bool
}

// StyleChecks holds the lexical metrics and their threshold outcomes.
type StyleChecks struct {
	TypeTokenRatio float64
	SentenceStdDev float64
	FirstPerson    int
	SecondPerson   int
	FormalAddress  int
	Numbers        int
	Words          int
	HasBanned      bool

	TTROK          bool
	VarianceOK     bool
	FirstPersonOK  bool
	SecondPersonOK bool
	FormalOK       bool
	NumbersOK      bool
	WordsMinOK     bool
	WordsMaxOK     bool
}

// SEOChecks holds the frontmatter field-length outcomes.
type SEOChecks struct {
	TitleLen int
	TitleOK  bool
	DescLen  int
	DescOK   bool
}

// Report is the full diagnostic output of one evaluation. A fresh value is
// produced per call and never mutated.
type Report struct {
	Style        StyleChecks
	Structure    textmetrics.StructureMetrics
	StructureOK  bool
	SEO          SEOChecks
	Coherence textmetrics.CoherenceMetrics
	// BackgroundDepthOK and SensoryOK are the story-mode texture thresholds
	// (minimum scene sentences, minimum sensory words); outside story mode
	// they are reported as true. CoherenceOK aggregates them with
	// Coherence.OK so the repair selector sees one coherence verdict.
	BackgroundDepthOK bool
	SensoryOK         bool
	CoherenceOK       bool

	Plausibility textmetrics.PlausibilityMetrics

	// VoiceInOpening is true when a narrator marker appears within the first
	// 100 body tokens.
	VoiceInOpening bool

	Passed bool
}

// Evaluate runs every check against the document. Purely computational; the
// same document, profile, and input always yield the same report.
func Evaluate(d *article.Document, p profile.Profile, in Input, v textmetrics.Vocabulary) Report {
	text := d.Raw()
	body := d.Body()

	var r Report

	r.Style = StyleChecks{
		TypeTokenRatio: textmetrics.TypeTokenRatio(text),
		SentenceStdDev: textmetrics.SentenceStdDev(text),
		FirstPerson:    v.FirstPersonCount(text),
		SecondPerson:   v.SecondPersonCount(text),
		FormalAddress:  v.FormalAddressCount(text),
		Numbers:        textmetrics.NumberCount(text),
		Words:          textmetrics.WordCount(text),
		HasBanned:      textmetrics.HasBannedPhrase(text, p.BannedPhrases),
	}
	r.Style.TTROK = r.Style.TypeTokenRatio >= p.MinTypeTokenRatio
	r.Style.VarianceOK = r.Style.SentenceStdDev >= p.MinSentenceStdDev
	r.Style.FirstPersonOK = r.Style.FirstPerson >= p.MinFirstPerson
	r.Style.SecondPersonOK = r.Style.SecondPerson >= p.MinSecondPerson
	r.Style.FormalOK = r.Style.FormalAddress <= p.MaxFormalAddress
	r.Style.NumbersOK = r.Style.Numbers >= p.MinNumbers
	r.Style.WordsMinOK = r.Style.Words >= p.MinWords
	r.Style.WordsMaxOK = r.Style.Words <= p.MaxWords

	r.Structure = textmetrics.Structure(d, in.PrimaryKeyword, p.MinSteps, p.MaxSteps)
	r.StructureOK = r.Structure.Frontmatter &&
		r.Structure.H1Present && r.Structure.H1HasKeyword &&
		r.Structure.HasIntro && r.Structure.HasBackground && r.Structure.HasRecipe &&
		r.Structure.HasIngredients && r.Structure.HasSteps && r.Structure.HasTimes &&
		r.Structure.StepsOK && r.Structure.KeywordEarly &&
		len(r.Structure.ForbiddenHeadings) == 0

	title := d.MetaField("seo_title")
	desc := d.MetaField("meta_description")
	r.SEO = SEOChecks{
		TitleLen: len([]rune(title)),
		DescLen:  len([]rune(desc)),
	}
	r.SEO.TitleOK = r.SEO.TitleLen >= p.TitleMinLen && r.SEO.TitleLen <= p.TitleMaxLen
	r.SEO.DescOK = r.SEO.DescLen >= p.DescMinLen && r.SEO.DescLen <= p.DescMaxLen

	r.Coherence = textmetrics.Coherence(d, v, in.Destination, in.StoryMode)
	r.BackgroundDepthOK = true
	r.SensoryOK = true
	if in.StoryMode {
		if p.MinBackgroundSentences > 0 && r.Coherence.BackgroundSentences < p.MinBackgroundSentences {
			r.BackgroundDepthOK = false
		}
		if p.MinSensoryWords > 0 && r.Coherence.SensoryHits < p.MinSensoryWords {
			r.SensoryOK = false
		}
	}
	r.CoherenceOK = r.Coherence.OK && r.BackgroundDepthOK && r.SensoryOK

	plausibilityOK := true
	if p.PlausibilityEnabled {
		r.Plausibility = textmetrics.Plausibility(d, v, in.Details, p.TimeToleranceMin, p.PortionMin, p.PortionMax)
		plausibilityOK = r.Plausibility.OK
	}

	r.VoiceInOpening = v.FirstPersonInWindow(body, 100)

	r.Passed = !r.Style.HasBanned &&
		r.Style.TTROK && r.Style.VarianceOK &&
		r.Style.FirstPersonOK && r.Style.SecondPersonOK && r.Style.FormalOK &&
		r.Style.NumbersOK && r.Style.WordsMinOK && r.Style.WordsMaxOK &&
		r.VoiceInOpening &&
		r.StructureOK &&
		r.SEO.TitleOK && r.SEO.DescOK &&
		r.CoherenceOK &&
		plausibilityOK

	return r
}

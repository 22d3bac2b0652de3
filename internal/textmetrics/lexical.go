// Package textmetrics computes lexical, structural, coherence, and
// plausibility signals over article text. Every function here is pure and
// total: arbitrary input yields a value, never an error. The evaluator
// combines these signals with a target profile into a verdict.
package textmetrics

import (
	"math"
	"regexp"
	"strings"
)

var (
	// wordRE counts alphabetic tokens only, including German umlauts and ß.
	wordRE = regexp.MustCompile(`[A-Za-zÄÖÜäöüß\-']+`)

	sentenceSplitRE = regexp.MustCompile(`[.!?\n]+`)
	numberRE        = regexp.MustCompile(`\b\d+[.,]?\d*\b`)
)

// Tokenize returns the alphabetic tokens of the text.
func Tokenize(text string) []string {
	return wordRE.FindAllString(text, -1)
}

// WordCount counts alphabetic tokens.
func WordCount(text string) int {
	return len(Tokenize(text))
}

// TypeTokenRatio is unique lowercased tokens over total tokens, 0 when empty.
func TypeTokenRatio(text string) float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		seen[strings.ToLower(t)] = struct{}{}
	}
	return float64(len(seen)) / float64(len(tokens))
}

// SentenceLengths returns the token count per sentence. Sentences split on
// terminal punctuation and line breaks; empty fragments are skipped.
func SentenceLengths(text string) []int {
	var lens []int
	for _, s := range sentenceSplitRE.Split(text, -1) {
		if n := WordCount(s); n > 0 {
			lens = append(lens, n)
		}
	}
	return lens
}

// SentenceStdDev is the population standard deviation of sentence lengths,
// 0 when the text has at most one sentence.
func SentenceStdDev(text string) float64 {
	lens := SentenceLengths(text)
	if len(lens) < 2 {
		return 0
	}
	var sum float64
	for _, n := range lens {
		sum += float64(n)
	}
	mean := sum / float64(len(lens))
	var sq float64
	for _, n := range lens {
		d := float64(n) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(lens)))
}

// NumberCount counts numeric tokens (integers and decimal forms).
func NumberCount(text string) int {
	return len(numberRE.FindAllString(text, -1))
}

// HasBannedPhrase reports a case-insensitive substring hit from the ban list.
func HasBannedPhrase(text string, banned []string) bool {
	lower := strings.ToLower(text)
	for _, p := range banned {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// countWordHits counts whole-word occurrences of each vocabulary entry in the
// lowercased text.
func countWordHits(lower string, words []string) int {
	n := 0
	for _, w := range words {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
		n += len(re.FindAllString(lower, -1))
	}
	return n
}

// FirstPersonCount counts narrator-voice markers (strict ich-forms).
func (v Vocabulary) FirstPersonCount(text string) int {
	return countWordHits(strings.ToLower(text), v.FirstPerson)
}

// SecondPersonCount counts informal du-address markers.
func (v Vocabulary) SecondPersonCount(text string) int {
	return countWordHits(strings.ToLower(text), v.SecondPerson)
}

// FormalAddressCount counts formal-address markers. This match is
// case-sensitive: only the capitalized forms are formal address.
func (v Vocabulary) FormalAddressCount(text string) int {
	n := 0
	for _, w := range v.FormalAddress {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
		n += len(re.FindAllString(text, -1))
	}
	return n
}

// SensoryCount counts sensory-vocabulary hits.
func (v Vocabulary) SensoryCount(text string) int {
	return countWordHits(strings.ToLower(text), v.Sensory)
}

// FirstPersonInWindow reports whether a narrator marker appears within the
// first window tokens of the text. The caller passes the article body, header
// excluded.
func (v Vocabulary) FirstPersonInWindow(body string, window int) bool {
	tokens := Tokenize(body)
	if len(tokens) > window {
		tokens = tokens[:window]
	}
	set := make(map[string]struct{}, len(v.FirstPerson))
	for _, w := range v.FirstPerson {
		set[w] = struct{}{}
	}
	for _, t := range tokens {
		if _, ok := set[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}

// KeywordInWindow reports whether the keyword appears within the first window
// tokens of the text, case-insensitive. An empty keyword trivially passes.
func KeywordInWindow(body, keyword string, window int) bool {
	if strings.TrimSpace(keyword) == "" {
		return true
	}
	tokens := Tokenize(body)
	if len(tokens) > window {
		tokens = tokens[:window]
	}
	joined := strings.ToLower(strings.Join(tokens, " "))
	return strings.Contains(joined, strings.ToLower(keyword))
}

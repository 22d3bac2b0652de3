package textmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Ich röste 2 Zwiebeln, ganz in Ruhe.")
	assert.Equal(t, []string{"Ich", "röste", "Zwiebeln", "ganz", "in", "Ruhe"}, tokens)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("12 34"))
	assert.Equal(t, 4, WordCount("Öl in die Pfanne"))
}

func TestTypeTokenRatio(t *testing.T) {
	assert.Equal(t, 0.0, TypeTokenRatio(""))
	assert.InDelta(t, 1.0, TypeTokenRatio("jedes Wort anders"), 0.001)
	// "die" repeats, case-insensitive
	assert.InDelta(t, 0.75, TypeTokenRatio("Die Pfanne die zischt"), 0.001)
}

func TestSentenceLengths(t *testing.T) {
	lens := SentenceLengths("Kurz. Das ist ein längerer Satz mit mehr Wörtern!")
	assert.Equal(t, []int{1, 8}, lens)
}

func TestSentenceStdDev(t *testing.T) {
	assert.Equal(t, 0.0, SentenceStdDev("Nur ein Satz"))
	// lengths 2 and 4: population stddev = 1
	assert.InDelta(t, 1.0, SentenceStdDev("Zwei Wörter. Hier sind vier Wörter."), 0.001)
}

func TestNumberCount(t *testing.T) {
	assert.Equal(t, 3, NumberCount("2 Eier, 400 g Tomaten, 15 Minuten"))
	assert.Equal(t, 0, NumberCount("keine Zahlen hier"))
}

func TestHasBannedPhrase(t *testing.T) {
	banned := []string{"In diesem Artikel", "Fazit"}
	assert.True(t, HasBannedPhrase("in diesem artikel zeige ich dir", banned))
	assert.True(t, HasBannedPhrase("Mein Fazit dazu", banned))
	assert.False(t, HasBannedPhrase("Ich zeige dir mein Rezept", banned))
}

func TestFirstPersonCount(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, 3, v.FirstPersonCount("Ich nehme mir meine Pfanne."))
	// wir/unser are not narrator markers
	assert.Equal(t, 0, v.FirstPersonCount("Wir kochen unser Essen."))
	// "mich" must not double-count the embedded "ich"
	assert.Equal(t, 1, v.FirstPersonCount("Das freut mich."))
}

func TestSecondPersonCount(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, 2, v.SecondPersonCount("Du rührst, bis dein Öl schimmert."))
}

func TestFormalAddressIsCaseSensitive(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, 2, v.FormalAddressCount("Wenn Sie möchten, zeige ich Ihnen alles."))
	// lowercase "sie" is the pronoun, not formal address
	assert.Equal(t, 0, v.FormalAddressCount("Die Tomaten? Ich schäle sie nie."))
}

func TestFirstPersonInWindow(t *testing.T) {
	v := DefaultVocabulary()
	assert.True(t, v.FirstPersonInWindow("Heute zeige ich dir mein Rezept", 100))

	long := "Das Rezept ist gut und schnell und lecker "
	for len(Tokenize(long)) < 100 {
		long += "noch mehr Wörter ohne Erzähler "
	}
	assert.False(t, v.FirstPersonInWindow(long+" ich", 100))
}

func TestKeywordInWindow(t *testing.T) {
	assert.True(t, KeywordInWindow("beliebig", "", 100))
	assert.True(t, KeywordInWindow("Mein Shakshuka Rezept vom Kocher", "shakshuka rezept", 100))
	assert.False(t, KeywordInWindow("Mein Pad Thai vom Kocher", "Shakshuka", 100))
}

package textmetrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annigue/Artikel-LLM/internal/article"
)

const structuredDoc = `---
seo_title: "Shakshuka Rezept für den Campingkocher"
meta_description: "So gelingt dir Shakshuka in der Pfanne: wenig Abwasch und fertig in 15 Minuten."
slug: "shakshuka-rezept"
---
# Shakshuka Rezept aus der Pfanne

## Einleitung

Ich koche dieses Shakshuka Rezept am liebsten draußen.

## Hintergrund & Tipps

Damals in Israel stand ich zum ersten Mal vor einer dampfenden Pfanne.

- Tomaten erst würfeln, dann schälen spart Zeit
- Deckel drauf, sonst stocken die Eier nie

## Rezept: Shakshuka

### Zutaten

- 4 Eier
- 400 g Tomaten

### Schritt für Schritt

1. Zwiebeln im Öl anschwitzen.
2. Paprika zugeben.
3. Tomaten einrühren.
4. Gewürze unterrühren.
5. Mulden formen.
6. Eier hineingleiten lassen.
7. Deckel drauf, 12–14 Minuten stocken lassen.

### Zeiten & Portionen

Zubereitung: 10 Minuten, Gesamtzeit: 25 Minuten. Portionen: 2
`

func TestStructureComplete(t *testing.T) {
	d := article.Parse(structuredDoc)
	m := Structure(d, "Shakshuka Rezept", 6, 12)

	assert.True(t, m.Frontmatter)
	assert.True(t, m.H1Present)
	assert.True(t, m.H1HasKeyword)
	assert.True(t, m.HasIntro)
	assert.True(t, m.HasBackground)
	assert.True(t, m.HasRecipe)
	assert.True(t, m.HasIngredients)
	assert.True(t, m.HasSteps)
	assert.True(t, m.HasTimes)
	assert.Equal(t, 7, m.StepCount)
	assert.True(t, m.StepsOK)
	assert.True(t, m.KeywordEarly)
	assert.Empty(t, m.ForbiddenHeadings)
}

func TestStructureMissingPieces(t *testing.T) {
	d := article.Parse("# Titel ohne alles\n\nNur Text.\n")
	m := Structure(d, "Shakshuka", 6, 12)

	assert.False(t, m.Frontmatter)
	assert.True(t, m.H1Present)
	assert.False(t, m.H1HasKeyword)
	assert.False(t, m.HasIntro)
	assert.False(t, m.HasRecipe)
	assert.Equal(t, 0, m.StepCount)
	assert.False(t, m.StepsOK)
	assert.False(t, m.KeywordEarly)
}

func TestForbiddenHeadings(t *testing.T) {
	doc := structuredDoc + "\n## Fazit\n\nAlles super.\n\n### Varianten\n\n- vegan\n"
	m := Structure(article.Parse(doc), "Shakshuka Rezept", 6, 12)

	assert.Contains(t, m.ForbiddenHeadings, "Fazit")
	assert.Contains(t, m.ForbiddenHeadings, "Varianten")
}

func TestH3OutsideRecipeIsForbidden(t *testing.T) {
	doc := "# T\n\n## Einleitung\n\n### Zutaten\n\n- falsch platziert\n"
	m := Structure(article.Parse(doc), "", 6, 12)
	assert.Contains(t, m.ForbiddenHeadings, "Zutaten")
}

func TestStepCountIgnoresNumbersOutsideProcedure(t *testing.T) {
	doc := "# T\n\n## Einleitung\n\n1. Das hier ist kein Schritt.\n\n" +
		"## Rezept: X\n\n### Schritt für Schritt\n\n1. Erster.\n2. Zweiter.\n"
	assert.Equal(t, 2, StepCount(article.Parse(doc)))
}

func TestCoherenceStoryMode(t *testing.T) {
	v := DefaultVocabulary()
	d := article.Parse(structuredDoc)

	m := Coherence(d, v, "Israel", true)
	assert.False(t, m.IntroHasDestination) // intro never names Israel
	assert.True(t, m.BackgroundHasDestination)
	assert.True(t, m.BridgeOK) // "Damals ..." opener
	assert.False(t, m.OK)
}

func TestCoherenceStoryModeIntroMissingDestination(t *testing.T) {
	v := DefaultVocabulary()
	doc := "# T\n\n## Einleitung\n\nKein Ziel genannt.\n\n## Hintergrund & Tipps\n\nDamals in Israel war es heiß.\n"
	m := Coherence(article.Parse(doc), v, "Israel", true)

	assert.False(t, m.IntroHasDestination)
	assert.False(t, m.OK)
}

func TestCoherenceTipsModePassesWithoutBridge(t *testing.T) {
	v := DefaultVocabulary()
	doc := "# T\n\n## Einleitung\n\nHallo.\n\n## Hintergrund & Tipps\n\nNimm reife Tomaten.\n"
	m := Coherence(article.Parse(doc), v, "Israel", false)

	assert.True(t, m.BridgeOK)
	assert.True(t, m.OK)
}

func TestCoherenceDestinationCountsAsBridge(t *testing.T) {
	v := DefaultVocabulary()
	doc := "# T\n\n## Einleitung\n\nAuf nach Israel.\n\n## Hintergrund & Tipps\n\nIn Israel begann alles für diese Pfanne.\n"
	m := Coherence(article.Parse(doc), v, "Israel", true)

	assert.True(t, m.BridgeOK)
	assert.True(t, m.OK)
}

func TestCoherenceDestinationWindowCountsCharacters(t *testing.T) {
	// 150 umlauts are 300 bytes; the destination sits inside the first 200
	// characters but past byte 200
	filler := strings.Repeat("ü", 150)
	doc := "# T\n\n## Einleitung\n\nAuf nach Israel.\n\n## Hintergrund & Tipps\n\nDamals sang ich " + filler + " in Israel am Kocher.\n"
	m := Coherence(article.Parse(doc), DefaultVocabulary(), "Israel", true)

	assert.True(t, m.BackgroundHasDestination)
	assert.True(t, m.OK)
}

package textmetrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annigue/Artikel-LLM/internal/article"
)

func TestTimeTarget(t *testing.T) {
	tests := []struct {
		details string
		want    *TimeWindow
	}{
		{"Campingkocher, 12–14 Min, wenig Abwasch", &TimeWindow{12, 14}},
		{"Eier, 12-14 Minuten", &TimeWindow{12, 14}},
		{"8 bis 10 Minuten köcheln", &TimeWindow{8, 10}},
		{"20 Minuten Gesamtzeit", &TimeWindow{20, 20}},
		{"14–12 Min", &TimeWindow{12, 14}}, // inverted range is swapped
		{"Eier, Tomate, Levante Küche", nil},
	}
	for _, tc := range tests {
		got := TimeTarget(tc.details)
		if tc.want == nil {
			assert.Nil(t, got, tc.details)
			continue
		}
		require.NotNil(t, got, tc.details)
		assert.Equal(t, *tc.want, *got, tc.details)
	}
}

func TestMinutesIn(t *testing.T) {
	vals := MinutesIn("Erst 12–14 Minuten köcheln, dann noch 5 Min ruhen lassen.")
	assert.Contains(t, vals, 12)
	assert.Contains(t, vals, 14)
	assert.Contains(t, vals, 5)
}

func TestPortions(t *testing.T) {
	d := article.Parse(structuredDoc)
	assert.Equal(t, 2, Portions(d))

	assert.Equal(t, 0, Portions(article.Parse("# T\n\nKein Rezeptblock.\n")))
}

func TestPlausibilityPasses(t *testing.T) {
	v := DefaultVocabulary()
	d := article.Parse(structuredDoc)
	m := Plausibility(d, v, "Campingkocher, 12–14 Min, wenig Abwasch", 2, 1, 8)

	assert.True(t, m.EquipmentOK)
	assert.True(t, m.OvenOK)
	assert.True(t, m.DishesOK)
	assert.True(t, m.TimingOK)
	assert.True(t, m.PortionsOK)
	assert.True(t, m.OK)
	require.NotNil(t, m.TargetWindow)
	assert.Equal(t, TimeWindow{12, 14}, *m.TargetWindow)
}

func TestPlausibilityOvenForbiddenUnlessRequested(t *testing.T) {
	v := DefaultVocabulary()
	doc := strings.Replace(structuredDoc, "im Öl anschwitzen", "im Backofen garen", 1)
	d := article.Parse(doc)

	m := Plausibility(d, v, "Eier, Tomate", 2, 1, 8)
	assert.False(t, m.OvenOK)
	assert.False(t, m.OK)

	// explicitly requested: the mention is fine
	m = Plausibility(d, v, "bitte im Backofen", 2, 1, 8)
	assert.True(t, m.OvenOK)
}

func TestPlausibilityDishesBoundedUnderWenigAbwasch(t *testing.T) {
	v := DefaultVocabulary()
	doc := structuredDoc + "\nNimm eine Schüssel, noch eine Schale und einen Becher dazu.\n"
	d := article.Parse(doc)

	m := Plausibility(d, v, "wenig Abwasch", 2, 1, 8)
	assert.False(t, m.DishesOK)

	// without the constraint the vessels are fine
	m = Plausibility(d, v, "Eier, Tomate", 2, 1, 8)
	assert.True(t, m.DishesOK)
}

func TestPlausibilityTimingToleranceApplies(t *testing.T) {
	v := DefaultVocabulary()
	// article only mentions 16 minutes; target is 12–14 with ±2
	doc := "# T\n\nIn der Pfanne auf dem Kocher, 16 Minuten.\n"
	m := Plausibility(article.Parse(doc), v, "12–14 Min", 2, 1, 8)
	assert.True(t, m.TimingOK)

	// 17 minutes falls outside the widened window
	doc = "# T\n\nIn der Pfanne auf dem Kocher, 17 Minuten.\n"
	m = Plausibility(article.Parse(doc), v, "12–14 Min", 2, 1, 8)
	assert.False(t, m.TimingOK)
}

func TestPlausibilityTimingWithoutTargetAlwaysOK(t *testing.T) {
	v := DefaultVocabulary()
	m := Plausibility(article.Parse("# T\n\nPfanne drauf, fertig.\n"), v, "Eier", 2, 1, 8)
	assert.True(t, m.TimingOK)
	assert.Nil(t, m.TargetWindow)
}

func TestPlausibilityPortionBounds(t *testing.T) {
	v := DefaultVocabulary()
	doc := strings.Replace(structuredDoc, "Portionen: 2", "Portionen: 12", 1)
	m := Plausibility(article.Parse(doc), v, "Eier", 2, 1, 8)
	assert.False(t, m.PortionsOK)
	assert.Equal(t, 12, m.Portions)
}

func TestPlausibilityEquipmentRequired(t *testing.T) {
	v := DefaultVocabulary()
	m := Plausibility(article.Parse("# T\n\nEinfach alles mischen und essen.\n"), v, "Eier", 2, 1, 8)
	assert.False(t, m.EquipmentOK)
	assert.False(t, m.OK)
}

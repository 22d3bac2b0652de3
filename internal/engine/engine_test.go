package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annigue/Artikel-LLM/internal/llm"
	"github.com/annigue/Artikel-LLM/internal/profile"
	"github.com/annigue/Artikel-LLM/internal/repair"
)

const passingArticle = `---
seo_title: "Shakshuka Rezept für den Campingkocher"
meta_description: "So gelingt dir Shakshuka in der Pfanne: wenig Abwasch und fertig in rund 15 Minuten."
slug: "shakshuka-rezept"
---
# Shakshuka Rezept aus der Pfanne

## Einleitung

Ich koche dieses Shakshuka Rezept am liebsten draußen, wenn mir der Wind um die Nase weht. Du brauchst dafür nur eine Pfanne und deinen Kocher. Mein Trick: reife Tomaten.

## Hintergrund & Tipps

Damals stand ich zum ersten Mal vor einer dampfenden Pfanne voller Tomaten. Seitdem habe ich viel probiert.

- Deckel drauf, sonst stocken die Eier nicht
- Tomaten grob würfeln spart Zeit

## Rezept: Shakshuka

### Zutaten

- 4 Eier
- 400 g Tomaten
- 1 Zwiebel

### Schritt für Schritt

1. Zwiebeln im Öl glasig anschwitzen.
2. Paprika zugeben und kurz rösten.
3. Tomaten einrühren und köcheln.
4. Gewürze unterrühren, dann abschmecken.
5. Mulden formen und salzen.
6. Eier hineingleiten lassen.
7. Deckel drauf, 12–14 Minuten stocken lassen.

### Zeiten & Portionen

Zubereitung: 10 Minuten, Gesamtzeit: 25 Minuten. Portionen: 2
`

// relaxedProfile loosens the volume thresholds so the short fixture can
// pass while the structural checks stay sharp.
func relaxedProfile() profile.Profile {
	p := profile.Default()
	p.MinWords = 50
	p.MaxWords = 2000
	p.MinTypeTokenRatio = 0.1
	p.MinSentenceStdDev = 0
	p.MinFirstPerson = 3
	return p
}

func newTestEngine(t *testing.T, mock *llm.Mock) *Engine {
	t.Helper()
	e, err := New(Config{Client: mock})
	require.NoError(t, err)
	return e
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestRunRequiresTopicAndDetails(t *testing.T) {
	e := newTestEngine(t, &llm.Mock{Responses: []string{passingArticle}})

	_, err := e.Run(context.Background(), Request{Details: "Kocher"})
	assert.Error(t, err)

	_, err = e.Run(context.Background(), Request{Topic: "Shakshuka"})
	assert.Error(t, err)
}

func TestRunPassesWithoutRepairs(t *testing.T) {
	mock := &llm.Mock{Responses: []string{passingArticle}}
	e := newTestEngine(t, mock)

	res, err := e.Run(context.Background(), Request{
		Topic:   "Shakshuka",
		Details: "Campingkocher, 12–14 Min, wenig Abwasch",
		Profile: relaxedProfile(),
	})
	require.NoError(t, err)

	assert.True(t, res.Passed)
	assert.Equal(t, 3, res.ServiceCalls)
	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, 0, res.RepairRounds)
	assert.Equal(t, 0, res.ForcedExpansions)
	assert.Empty(t, res.Strategies)
	assert.NotEmpty(t, res.RunID)
	assert.Contains(t, res.Final, "## Einleitung")
	assert.Contains(t, res.Draft, "Shakshuka")

	// dish lookup supplies the destination, classifier keeps tips mode
	// because the request named no destination itself
	assert.Equal(t, "Israel", res.Destination)
	assert.False(t, res.StoryMode)
}

func TestRunExhaustsBudgetsOnUnfixableText(t *testing.T) {
	mock := &llm.Mock{Responses: []string{"Das ist zu kurz."}}
	e := newTestEngine(t, mock)

	res, err := e.Run(context.Background(), Request{
		Topic:   "Shakshuka",
		Details: "Campingkocher",
		Profile: relaxedProfile(),
	})
	require.NoError(t, err)

	// 3 drafting stages + 6 repair rounds + 2 forced expansions
	assert.Equal(t, 11, res.ServiceCalls)
	assert.Equal(t, 6, res.RepairRounds)
	assert.Equal(t, 2, res.ForcedExpansions)
	assert.False(t, res.Passed)
	assert.NotEmpty(t, res.Final)

	// missing first-person voice is the top-priority defect every round
	require.Len(t, res.Strategies, 6)
	assert.Equal(t, repair.StrategyVoice, res.Strategies[0])
}

func TestRunPropagatesServiceError(t *testing.T) {
	mock := &llm.Mock{
		Responses: []string{passingArticle},
		Errs:      []error{errors.New("overloaded")},
	}
	e := newTestEngine(t, mock)

	_, err := e.Run(context.Background(), Request{
		Topic:   "Shakshuka",
		Details: "Campingkocher",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft stage")
}

func TestRunNarrativeModeOverrides(t *testing.T) {
	p := relaxedProfile()
	p.Mode = profile.ModeStory
	mock := &llm.Mock{Responses: []string{"kaputt"}}
	e := newTestEngine(t, mock)

	res, err := e.Run(context.Background(), Request{Topic: "Spiegelei", Details: "Kocher", Profile: p})
	require.NoError(t, err)
	assert.True(t, res.StoryMode)

	p.Mode = profile.ModeTips
	res, err = e.Run(context.Background(), Request{
		Topic: "Shakshuka", Details: "Kocher", Destination: "Israel", Profile: p,
	})
	require.NoError(t, err)
	assert.False(t, res.StoryMode)
}

func TestRunSendsSystemPromptAndSampling(t *testing.T) {
	mock := &llm.Mock{Responses: []string{passingArticle}}
	e := newTestEngine(t, mock)

	_, err := e.Run(context.Background(), Request{
		Topic:   "Shakshuka",
		Details: "Campingkocher, wenig Abwasch",
		Profile: relaxedProfile(),
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, mock.CallCount(), 3)

	first := mock.Calls[0].Request
	assert.NotEmpty(t, first.System)
	assert.InDelta(t, 0.8, first.Temperature, 1e-9)
	assert.InDelta(t, 0.9, first.TopP, 1e-9)
	assert.Equal(t, 4096, first.MaxTokens)

	assert.InDelta(t, 0.4, mock.Calls[1].Request.Temperature, 1e-9)
	assert.InDelta(t, 0.6, mock.Calls[2].Request.Temperature, 1e-9)
}

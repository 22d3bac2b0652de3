// Package engine runs the full generation pipeline: three drafting passes,
// structural normalization after every service response, heuristic
// evaluation, and a bounded repair loop. With the stock budgets a run makes
// at most 11 service calls (3 drafting, 6 repair, 2 forced expansion).
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/annigue/Artikel-LLM/internal/article"
	"github.com/annigue/Artikel-LLM/internal/evaluate"
	"github.com/annigue/Artikel-LLM/internal/llm"
	"github.com/annigue/Artikel-LLM/internal/normalize"
	"github.com/annigue/Artikel-LLM/internal/profile"
	"github.com/annigue/Artikel-LLM/internal/prompt"
	"github.com/annigue/Artikel-LLM/internal/repair"
	"github.com/annigue/Artikel-LLM/internal/textmetrics"
)

// Sampling parameters per pipeline stage.
const (
	draftTemperature  = 0.8
	cleanTemperature  = 0.4
	editTemperature   = 0.6
	repairTemperature = 0.5
	topP              = 0.9
	maxTokens         = 4096
)

// Config wires the pipeline's collaborators. Client is required; everything
// else has working defaults.
type Config struct {
	Client llm.Client
	Style  prompt.StyleConfig

	// MaxRepairRounds bounds the targeted repair loop.
	MaxRepairRounds int
	// MaxForcedExpansions bounds the length-rescue rounds after the repair
	// budget is spent.
	MaxForcedExpansions int

	Classifier ModeClassifier
	Normalizer normalize.Config
	Vocabulary *textmetrics.Vocabulary
}

// Engine generates quality-gated articles.
type Engine struct {
	client     llm.Client
	style      prompt.StyleConfig
	maxRepairs int
	maxExpand  int
	classifier ModeClassifier
	norm       normalize.Config
	vocab      textmetrics.Vocabulary
}

// New validates the configuration and builds an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("engine: client is required")
	}
	if cfg.Style.System == "" {
		cfg.Style = prompt.DefaultStyle()
	}
	if cfg.MaxRepairRounds == 0 {
		cfg.MaxRepairRounds = 6
	}
	if cfg.MaxForcedExpansions == 0 {
		cfg.MaxForcedExpansions = 2
	}
	if cfg.Classifier == nil {
		cfg.Classifier = DefaultClassifier
	}
	if cfg.Normalizer.MaxTips == 0 {
		cfg.Normalizer = normalize.DefaultConfig()
	}
	vocab := textmetrics.DefaultVocabulary()
	if cfg.Vocabulary != nil {
		vocab = *cfg.Vocabulary
	}
	return &Engine{
		client:     cfg.Client,
		style:      cfg.Style,
		maxRepairs: cfg.MaxRepairRounds,
		maxExpand:  cfg.MaxForcedExpansions,
		classifier: cfg.Classifier,
		norm:       cfg.Normalizer,
		vocab:      vocab,
	}, nil
}

// Request describes one article to generate. Topic and Details are required.
type Request struct {
	Topic             string
	Details           string
	PrimaryKeyword    string
	SecondaryKeywords string
	Destination       string
	TravelAngle       string
	Profile           profile.Profile
}

// Result is the full outcome of a run. Final is always set, even when the
// verdict is a fail; the caller decides what a failed article is worth.
type Result struct {
	RunID string

	Draft  string
	Final  string
	Report evaluate.Report
	Passed bool

	Destination string
	StoryMode   bool

	RepairRounds     int
	ForcedExpansions int
	ServiceCalls     int
	Strategies       []repair.Strategy

	Elapsed time.Duration
}

// Run executes the pipeline for one article.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Topic == "" {
		return nil, fmt.Errorf("engine: topic is required")
	}
	if req.Details == "" {
		return nil, fmt.Errorf("engine: details are required")
	}
	p := req.Profile
	if p.MinWords == 0 {
		p = profile.Default()
	}

	start := time.Now()
	res := &Result{RunID: uuid.New().String()}

	pk := req.PrimaryKeyword
	if pk == "" {
		pk = req.Topic
	}
	sk := req.SecondaryKeywords
	if sk == "" {
		sk = "Rezept, Outdoor, Kochen, Backen"
	}

	dest := req.Destination
	if dest == "" {
		dest = GuessDestination(req.Topic + " " + pk)
	}
	story := e.resolveStoryMode(p.Mode, req, pk)
	res.Destination = dest
	res.StoryMode = story

	in := evaluate.Input{
		PrimaryKeyword: pk,
		Destination:    dest,
		Details:        req.Details,
		StoryMode:      story,
	}
	din := prompt.DraftInput{
		Topic:        req.Topic,
		Details:      req.Details,
		PrimaryKW:    pk,
		SecondaryKWs: sk,
		MinWords:     p.MinWords,
		MaxWords:     p.MaxWords,
		Destination:  dest,
		TravelAngle:  req.TravelAngle,
		StoryMode:    story,
	}

	// Stage 1: draft
	draft, err := e.call(ctx, res, e.style.Draft(din), draftTemperature)
	if err != nil {
		return nil, fmt.Errorf("draft stage: %w", err)
	}
	draft = normalize.Normalize(draft, e.norm)
	res.Draft = draft

	// Stage 2: language cleanup
	cleaned, err := e.call(ctx, res, e.style.Clean(draft), cleanTemperature)
	if err != nil {
		return nil, fmt.Errorf("clean stage: %w", err)
	}
	cleaned = normalize.Normalize(cleaned, e.norm)

	// Stage 3: style edit
	edited, err := e.call(ctx, res, e.style.Edit(din, cleaned), editTemperature)
	if err != nil {
		return nil, fmt.Errorf("edit stage: %w", err)
	}
	edited = normalize.Normalize(edited, e.norm)

	doc := article.Parse(edited)
	rep := evaluate.Evaluate(doc, p, in, e.vocab)

	// Targeted repair loop
	for !rep.Passed && res.RepairRounds < e.maxRepairs {
		res.RepairRounds++
		strategy := repair.Select(rep, p, in)
		res.Strategies = append(res.Strategies, strategy)

		fixed, err := e.call(ctx, res, repair.Instruction(strategy, edited, rep, p, in, e.style), repairTemperature)
		if err != nil {
			return nil, fmt.Errorf("repair round %d (%s): %w", res.RepairRounds, strategy, err)
		}
		edited = normalize.Normalize(fixed, e.norm)
		doc = article.Parse(edited)
		rep = evaluate.Evaluate(doc, p, in, e.vocab)
	}

	// Length rescue: still too short after the repair budget
	if !rep.Passed && !rep.Style.WordsMinOK {
		style := e.style.StyleguideFor(p.MinWords, p.MaxWords)
		for i := 0; i < e.maxExpand; i++ {
			res.ForcedExpansions++
			expanded, err := e.call(ctx, res, repair.ExpandPrompt(
				edited, p.MinWords, p.MaxWords, e.style.NegativeLine(), style, e.style.Structure, e.style.Examples,
			), repairTemperature)
			if err != nil {
				return nil, fmt.Errorf("forced expansion %d: %w", res.ForcedExpansions, err)
			}
			edited = normalize.Normalize(expanded, e.norm)
			doc = article.Parse(edited)
			rep = evaluate.Evaluate(doc, p, in, e.vocab)
			if rep.Passed {
				break
			}
		}
	}

	res.Final = edited
	res.Report = rep
	res.Passed = rep.Passed
	res.Elapsed = time.Since(start)
	return res, nil
}

func (e *Engine) resolveStoryMode(mode profile.NarrativeMode, req Request, pk string) bool {
	switch mode {
	case profile.ModeStory:
		return true
	case profile.ModeTips:
		return false
	default:
		return e.classifier(req.Topic, pk, req.Destination)
	}
}

func (e *Engine) call(ctx context.Context, res *Result, user string, temperature float64) (string, error) {
	res.ServiceCalls++
	out, err := e.client.Complete(ctx, llm.Request{
		System:      e.style.System,
		User:        user,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

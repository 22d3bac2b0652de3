package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/annigue/Artikel-LLM/internal/engine"
	"github.com/annigue/Artikel-LLM/internal/profile"
)

// batchJob is one entry in the batch input file.
type batchJob struct {
	Topic             string `json:"topic"`
	Details           string `json:"details"`
	PrimaryKeyword    string `json:"primary_kw"`
	SecondaryKeywords string `json:"secondary_kws"`
	Destination       string `json:"destination"`
	TravelAngle       string `json:"travel_angle"`
	BGMode            string `json:"bg_mode"`
	MinWords          int    `json:"min_words"`
	MaxWords          int    `json:"max_words"`
	Out               string `json:"out"`
}

var (
	batchConcurrency int
	batchOutDir      string
	batchNoSave      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <jobs.json>",
	Short: "Generate several articles from a JSON job list",
	Long: `Reads a JSON array of jobs and generates each article. Jobs run
concurrently up to --concurrency; a failed job does not stop the others.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		var jobs []batchJob
		if err := json.Unmarshal(raw, &jobs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse %s: %v\n", args[0], err)
			os.Exit(1)
		}
		if len(jobs) == 0 {
			fmt.Fprintln(os.Stderr, "Error: job list is empty")
			os.Exit(1)
		}

		client, err := newClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		eng, err := engine.New(engine.Config{Client: client})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var store storeSaver
		if !batchNoSave {
			st, err := openStore()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open run archive: %v\n", err)
			} else {
				defer st.Close()
				store = st
			}
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		var mu sync.Mutex
		passed, failed := 0, 0

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchConcurrency)
		for i, job := range jobs {
			g.Go(func() error {
				req, out, err := buildBatchRequest(i, job)
				if err != nil {
					mu.Lock()
					failed++
					fmt.Printf("%s %s: %v\n", red("✗"), job.Topic, err)
					mu.Unlock()
					return nil
				}

				res, err := eng.Run(gctx, req)
				if err != nil {
					mu.Lock()
					failed++
					fmt.Printf("%s %s: %v\n", red("✗"), job.Topic, err)
					mu.Unlock()
					return nil
				}
				if err := os.WriteFile(out, []byte(strings.TrimSpace(res.Final)+"\n"), 0644); err != nil {
					mu.Lock()
					failed++
					fmt.Printf("%s %s: write %s: %v\n", red("✗"), job.Topic, out, err)
					mu.Unlock()
					return nil
				}

				mu.Lock()
				if res.Passed {
					passed++
					fmt.Printf("%s %s (%d Wörter, %d Calls) -> %s\n",
						green("✓"), job.Topic, res.Report.Style.Words, res.ServiceCalls, out)
				} else {
					failed++
					fmt.Printf("%s %s (Heuristiken nicht bestanden, %d Calls) -> %s\n",
						red("✗"), job.Topic, res.ServiceCalls, out)
				}
				if store != nil {
					if err := store.SaveRun(gctx, req, res); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: could not archive %s: %v\n", res.RunID, err)
					}
				}
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		fmt.Printf("\n%d bestanden, %d fehlgeschlagen\n", passed, failed)
		if failed > 0 {
			os.Exit(3)
		}
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 2, "Parallele Jobs")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Zielverzeichnis für die Artikel")
	batchCmd.Flags().BoolVar(&batchNoSave, "no-save", false, "Lauf nicht im Archiv speichern")
	rootCmd.AddCommand(batchCmd)
}

type storeSaver interface {
	SaveRun(ctx context.Context, req engine.Request, res *engine.Result) error
}

func buildBatchRequest(idx int, job batchJob) (engine.Request, string, error) {
	if job.Topic == "" || job.Details == "" {
		return engine.Request{}, "", fmt.Errorf("job %d: topic and details are required", idx+1)
	}
	minWords, maxWords := job.MinWords, job.MaxWords
	if minWords == 0 {
		minWords = 700
	}
	if maxWords == 0 {
		maxWords = 1000
	}
	p, err := profile.New(minWords, maxWords)
	if err != nil {
		return engine.Request{}, "", fmt.Errorf("job %d: %w", idx+1, err)
	}
	switch job.BGMode {
	case "", "auto":
		p.Mode = profile.ModeAuto
	case "tips":
		p.Mode = profile.ModeTips
	case "story":
		p.Mode = profile.ModeStory
	default:
		return engine.Request{}, "", fmt.Errorf("job %d: invalid bg_mode %q", idx+1, job.BGMode)
	}

	out := job.Out
	if out == "" {
		out = slugify(job.Topic) + ".md"
	}
	if batchOutDir != "" {
		out = filepath.Join(batchOutDir, out)
	}

	return engine.Request{
		Topic:             job.Topic,
		Details:           job.Details,
		PrimaryKeyword:    job.PrimaryKeyword,
		SecondaryKeywords: job.SecondaryKeywords,
		Destination:       job.Destination,
		TravelAngle:       job.TravelAngle,
		Profile:           p,
	}, out, nil
}

func slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == 'ä':
			b.WriteString("ae")
			lastDash = false
		case r == 'ö':
			b.WriteString("oe")
			lastDash = false
		case r == 'ü':
			b.WriteString("ue")
			lastDash = false
		case r == 'ß':
			b.WriteString("ss")
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

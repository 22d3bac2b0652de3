package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/annigue/Artikel-LLM/internal/engine"
	"github.com/annigue/Artikel-LLM/internal/export"
	"github.com/annigue/Artikel-LLM/internal/profile"
)

var (
	genTopic        string
	genDetails      string
	genPrimaryKW    string
	genSecondaryKWs string
	genDestination  string
	genTravelAngle  string
	genBGMode       string
	genMinWords     int
	genMaxWords     int
	genOut          string
	genShowDraft    bool
	genHTMLOut      string
	genKeepH1       bool
	genNoMetaJSON   bool
	genNoSave       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one article and write Markdown, HTML and metadata",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		p, err := profile.New(genMinWords, genMaxWords)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		switch genBGMode {
		case "auto":
			p.Mode = profile.ModeAuto
		case "tips":
			p.Mode = profile.ModeTips
		case "story":
			p.Mode = profile.ModeStory
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid --bg-mode %q (want auto, tips or story)\n", genBGMode)
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

		req := engine.Request{
			Topic:             genTopic,
			Details:           genDetails,
			PrimaryKeyword:    genPrimaryKW,
			SecondaryKeywords: genSecondaryKWs,
			Destination:       genDestination,
			TravelAngle:       genTravelAngle,
			Profile:           p,
		}

		res, err := eng.Run(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: generation failed: %v\n", err)
			os.Exit(1)
		}

		if err := os.WriteFile(genOut, []byte(strings.TrimSpace(res.Final)+"\n"), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", genOut, err)
			os.Exit(1)
		}
		fmt.Printf("Artikel gespeichert in: %s\n", genOut)

		if genShowDraft {
			draftPath := withSuffix(genOut, ".draft.md")
			if err := os.WriteFile(draftPath, []byte(strings.TrimSpace(res.Draft)+"\n"), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", draftPath, err)
			} else {
				fmt.Printf("Draft gespeichert in: %s\n", draftPath)
			}
		}

		if err := writeExports(res.Final, genOut, genHTMLOut, !genKeepH1, !genNoMetaJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Error: HTML export: %v\n", err)
		}

		if !genNoSave {
			store, err := openStore()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open run archive: %v\n", err)
			} else {
				defer store.Close()
				if err := store.SaveRun(ctx, req, res); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not archive run: %v\n", err)
				}
			}
		}

		printRunSummary(res)
		printReport(res.Report)

		if !res.Passed {
			os.Exit(3)
		}
	},
}

func init() {
	generateCmd.Flags().StringVar(&genTopic, "topic", "", "Thema / Titel-Idee")
	generateCmd.Flags().StringVar(&genDetails, "details", "", "Pflichtdetails (z. B. 'Campingkocher, 12–14 Min, wenig Abwasch')")
	generateCmd.Flags().StringVar(&genPrimaryKW, "primary-kw", "", "Primär-Keyword (Standard: topic)")
	generateCmd.Flags().StringVar(&genSecondaryKWs, "secondary-kws", "", "Sekundär-Keywords (kommagetrennt)")
	generateCmd.Flags().StringVar(&genDestination, "destination", "", "Reiseziel für die Hintergrund-Story")
	generateCmd.Flags().StringVar(&genTravelAngle, "travel-angle", "Vanlife/Rundreise", "Reiseperspektive")
	generateCmd.Flags().StringVar(&genBGMode, "bg-mode", "auto", "Start von 'Hintergrund & Tipps': auto, tips oder story")
	generateCmd.Flags().IntVar(&genMinWords, "min-words", 700, "Minimale Wortzahl")
	generateCmd.Flags().IntVar(&genMaxWords, "max-words", 1000, "Maximale Wortzahl")
	generateCmd.Flags().StringVar(&genOut, "out", "out.md", "Zieldatei (Markdown)")
	generateCmd.Flags().BoolVar(&genShowDraft, "show-draft", false, "Draft zusätzlich speichern")
	generateCmd.Flags().StringVar(&genHTMLOut, "html-out", "", "Pfad für die HTML-Datei (Standard: <out>.html)")
	generateCmd.Flags().BoolVar(&genKeepH1, "keep-h1", false, "H1 im HTML belassen")
	generateCmd.Flags().BoolVar(&genNoMetaJSON, "no-meta-json", false, "Kein meta.json schreiben")
	generateCmd.Flags().BoolVar(&genNoSave, "no-save", false, "Run nicht in der Datenbank archivieren")
	generateCmd.MarkFlagRequired("topic")
	generateCmd.MarkFlagRequired("details")
	rootCmd.AddCommand(generateCmd)
}

// writeExports renders HTML and the metadata sidecar next to the Markdown.
func writeExports(markdown, outPath, htmlPath string, stripH1, metaJSON bool) error {
	out, err := export.Render(markdown, export.Options{StripH1: stripH1})
	if err != nil {
		return err
	}
	if htmlPath == "" {
		htmlPath = withSuffix(outPath, ".html")
	}
	if err := os.WriteFile(htmlPath, []byte(out.HTML), 0644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}
	fmt.Printf("HTML gespeichert in: %s\n", htmlPath)

	if metaJSON {
		metaPath := withSuffix(outPath, ".meta.json")
		b, err := out.MetaJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(metaPath, b, 0644); err != nil {
			return fmt.Errorf("write %s: %w", metaPath, err)
		}
		fmt.Printf("Metadaten gespeichert in: %s\n", metaPath)
	}
	return nil
}

func withSuffix(path, suffix string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + suffix
}

func printRunSummary(res *engine.Result) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Printf("\n%s\n", cyan("=== Run "+res.RunID+" ==="))
	verdict := green("PASSED")
	if !res.Passed {
		verdict = red("FAILED")
	}
	fmt.Printf("Verdict:            %s\n", verdict)
	fmt.Printf("Service calls:      %d\n", res.ServiceCalls)
	fmt.Printf("Repair rounds:      %d\n", res.RepairRounds)
	fmt.Printf("Forced expansions:  %d\n", res.ForcedExpansions)
	if len(res.Strategies) > 0 {
		parts := make([]string, len(res.Strategies))
		for i, s := range res.Strategies {
			parts[i] = string(s)
		}
		fmt.Printf("Strategies:         %s\n", strings.Join(parts, ", "))
	}
	fmt.Printf("Elapsed:            %s\n", res.Elapsed.Round(time.Millisecond))
}

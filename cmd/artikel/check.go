package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/annigue/Artikel-LLM/internal/article"
	"github.com/annigue/Artikel-LLM/internal/evaluate"
	"github.com/annigue/Artikel-LLM/internal/profile"
	"github.com/annigue/Artikel-LLM/internal/textmetrics"
)

var (
	checkPrimaryKW   string
	checkDetails     string
	checkDestination string
	checkStory       bool
	checkMinWords    int
	checkMaxWords    int
)

var checkCmd = &cobra.Command{
	Use:   "check <artikel.md>",
	Short: "Evaluate an existing Markdown article without calling the API",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		p, err := profile.New(checkMinWords, checkMaxWords)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		doc := article.Parse(string(raw))
		rep := evaluate.Evaluate(doc, p, evaluate.Input{
			PrimaryKeyword: checkPrimaryKW,
			Destination:    checkDestination,
			Details:        checkDetails,
			StoryMode:      checkStory,
		}, textmetrics.DefaultVocabulary())

		printReport(rep)

		if rep.Passed {
			fmt.Printf("%s\n", color.New(color.FgGreen, color.Bold).Sprint("PASSED"))
			return
		}
		fmt.Printf("%s\n", color.New(color.FgRed, color.Bold).Sprint("FAILED"))
		os.Exit(3)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkPrimaryKW, "primary-kw", "", "Primär-Keyword für Struktur- und SEO-Checks")
	checkCmd.Flags().StringVar(&checkDetails, "details", "", "Pflichtdetails für Plausibilitäts-Checks")
	checkCmd.Flags().StringVar(&checkDestination, "destination", "", "Reiseziel für Kohärenz-Checks")
	checkCmd.Flags().BoolVar(&checkStory, "story", false, "Kohärenz im Story-Modus prüfen")
	checkCmd.Flags().IntVar(&checkMinWords, "min-words", 700, "Minimale Wortzahl")
	checkCmd.Flags().IntVar(&checkMaxWords, "max-words", 1000, "Maximale Wortzahl")
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/annigue/Artikel-LLM/internal/storage"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived pipeline runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		runs, err := store.ListRuns(context.Background(), runsLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(runs) == 0 {
			fmt.Println("Keine Runs archiviert.")
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		for _, r := range runs {
			verdict := green("✓")
			if !r.Passed {
				verdict = red("✗")
			}
			fmt.Printf("%s %s  %s  %q  %d Wörter, %d Calls, %d Reparaturen\n",
				verdict, r.ID[:8], r.CreatedAt.Format("2006-01-02 15:04"),
				r.Topic, r.Words, r.ServiceCalls, r.RepairRounds)
		}
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run in full",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		run, err := resolveRun(store, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("%s\n", cyan("=== Run "+run.ID+" ==="))
		fmt.Printf("Created:            %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Topic:              %s\n", run.Topic)
		fmt.Printf("Details:            %s\n", run.Details)
		fmt.Printf("Destination:        %s (story=%v)\n", run.Destination, run.StoryMode)
		fmt.Printf("Passed:             %v\n", run.Passed)
		fmt.Printf("Words:              %d\n", run.Words)
		fmt.Printf("Service calls:      %d\n", run.ServiceCalls)
		fmt.Printf("Repair rounds:      %d\n", run.RepairRounds)
		fmt.Printf("Forced expansions:  %d\n", run.ForcedExpansions)
		if len(run.Strategies) > 0 {
			fmt.Printf("Strategies:         %s\n", strings.Join(run.Strategies, ", "))
		}
		fmt.Printf("\n%s\n", run.Final)
	},
}

// resolveRun accepts a full run ID or a unique prefix.
func resolveRun(store *storage.Store, id string) (*storage.Run, error) {
	run, err := store.GetRun(context.Background(), id)
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	runs, err := store.ListRuns(context.Background(), 1000)
	if err != nil {
		return nil, err
	}
	var match *storage.Run
	for i := range runs {
		if strings.HasPrefix(runs[i].ID, id) {
			if match != nil {
				return nil, fmt.Errorf("run prefix %q is ambiguous", id)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("run %q not found", id)
	}
	return match, nil
}

func init() {
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximale Anzahl gelisteter Runs")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

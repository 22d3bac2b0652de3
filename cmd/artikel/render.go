package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	renderHTMLOut    string
	renderKeepH1     bool
	renderNoMetaJSON bool
)

var renderCmd = &cobra.Command{
	Use:   "render <artikel.md>",
	Short: "Render a Markdown article to CMS-ready HTML plus metadata",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := writeExports(string(raw), args[0], renderHTMLOut, !renderKeepH1, !renderNoMetaJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderHTMLOut, "html-out", "", "Pfad für die HTML-Datei (Standard: <eingabe>.html)")
	renderCmd.Flags().BoolVar(&renderKeepH1, "keep-h1", false, "H1 im HTML belassen")
	renderCmd.Flags().BoolVar(&renderNoMetaJSON, "no-meta-json", false, "Kein meta.json schreiben")
	rootCmd.AddCommand(renderCmd)
}

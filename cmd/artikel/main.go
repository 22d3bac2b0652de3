// artikel generates quality-gated German camping recipe articles.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/annigue/Artikel-LLM/internal/llm"
	"github.com/annigue/Artikel-LLM/internal/storage"
)

var (
	flagBackend string
	flagModel   string
	flagBaseURL string
	flagDBPath  string
	flagRate    int
)

var rootCmd = &cobra.Command{
	Use:   "artikel",
	Short: "Artikel-Generator mit fester Struktur, SEO-Block und Qualitätsschleife",
	Long: `artikel erzeugt Camping-Rezeptartikel über eine mehrstufige
Schreibpipeline (Entwurf, Sprach-Clean, Stil-Edit) und repariert den Text
automatisch, bis die Qualitätsheuristiken bestehen oder das Budget
aufgebraucht ist.`,
}

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "anthropic", "Generierungs-Backend: anthropic oder openai")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "Modellname (Standard: backend-abhängig)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Basis-URL für OpenAI-kompatible Endpunkte")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Pfad zur Run-Datenbank (Standard: $ARTIKEL_DB oder artikel.db)")
	rootCmd.PersistentFlags().IntVar(&flagRate, "rate", 0, "Maximale API-Aufrufe pro Minute (0 = unbegrenzt)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds the generation client from flags and environment.
func newClient() (llm.Client, error) {
	switch flagBackend {
	case "anthropic":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		model := flagModel
		if model == "" {
			model = os.Getenv("ARTIKEL_MODEL")
		}
		return llm.NewAnthropic(llm.AnthropicConfig{
			APIKey:         key,
			Model:          model,
			CallsPerMinute: flagRate,
		})
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		model := flagModel
		if model == "" {
			model = os.Getenv("ARTIKEL_MODEL")
		}
		if model == "" {
			return nil, fmt.Errorf("--model or ARTIKEL_MODEL is required for the openai backend")
		}
		return llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:         key,
			Model:          model,
			BaseURL:        flagBaseURL,
			CallsPerMinute: flagRate,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q (want anthropic or openai)", flagBackend)
	}
}

// openStore opens the run archive. Pass-through of --db, then $ARTIKEL_DB,
// then artikel.db in the working directory.
func openStore() (*storage.Store, error) {
	path := flagDBPath
	if path == "" {
		path = os.Getenv("ARTIKEL_DB")
	}
	if path == "" {
		path = "artikel.db"
	}
	return storage.Open(path)
}

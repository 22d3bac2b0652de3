package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/annigue/Artikel-LLM/internal/evaluate"
)

var (
	checkPass = color.New(color.FgGreen).Sprint("✓")
	checkFail = color.New(color.FgRed).Sprint("✗")
)

func mark(ok bool) string {
	if ok {
		return checkPass
	}
	return checkFail
}

// printReport renders the diagnostic report for humans.
func printReport(rep evaluate.Report) {
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("\n%s\n", yellow("Stil:"))
	s := rep.Style
	fmt.Printf("  %s Wörter: %d\n", mark(s.WordsMinOK && s.WordsMaxOK), s.Words)
	fmt.Printf("  %s Type-Token-Ratio: %.2f\n", mark(s.TTROK), s.TypeTokenRatio)
	fmt.Printf("  %s Satzlängen-Streuung: %.1f\n", mark(s.VarianceOK), s.SentenceStdDev)
	fmt.Printf("  %s Ich-Form: %d\n", mark(s.FirstPersonOK), s.FirstPerson)
	fmt.Printf("  %s Du-Ansprache: %d\n", mark(s.SecondPersonOK), s.SecondPerson)
	fmt.Printf("  %s Formelle Anrede: %d\n", mark(s.FormalOK), s.FormalAddress)
	fmt.Printf("  %s Zahlen: %d\n", mark(s.NumbersOK), s.Numbers)
	fmt.Printf("  %s Keine Floskeln\n", mark(!s.HasBanned))
	fmt.Printf("  %s Ich-Form im Einstieg\n", mark(rep.VoiceInOpening))

	fmt.Printf("\n%s\n", yellow("Struktur:"))
	st := rep.Structure
	fmt.Printf("  %s YAML-Frontmatter\n", mark(st.Frontmatter))
	fmt.Printf("  %s H1 mit Keyword\n", mark(st.H1Present && st.H1HasKeyword))
	fmt.Printf("  %s Pflichtabschnitte\n", mark(st.HasIntro && st.HasBackground && st.HasRecipe &&
		st.HasIngredients && st.HasSteps && st.HasTimes))
	fmt.Printf("  %s Schritte: %d\n", mark(st.StepsOK), st.StepCount)
	fmt.Printf("  %s Keyword in den ersten 100 Wörtern\n", mark(st.KeywordEarly))
	if len(st.ForbiddenHeadings) > 0 {
		fmt.Printf("  %s Verbotene Überschriften: %s\n", checkFail, strings.Join(st.ForbiddenHeadings, ", "))
	}

	fmt.Printf("\n%s\n", yellow("SEO:"))
	fmt.Printf("  %s seo_title: %d Zeichen\n", mark(rep.SEO.TitleOK), rep.SEO.TitleLen)
	fmt.Printf("  %s meta_description: %d Zeichen\n", mark(rep.SEO.DescOK), rep.SEO.DescLen)

	fmt.Printf("\n%s\n", yellow("Kohärenz:"))
	fmt.Printf("  %s Reiseziel in Einleitung\n", mark(rep.Coherence.IntroHasDestination))
	fmt.Printf("  %s Brücke im Hintergrund\n", mark(rep.Coherence.BridgeOK))
	fmt.Printf("  %s Szenentiefe: %d Sätze\n", mark(rep.BackgroundDepthOK), rep.Coherence.BackgroundSentences)
	fmt.Printf("  %s Sinneseindrücke: %d\n", mark(rep.SensoryOK), rep.Coherence.SensoryHits)

	fmt.Printf("\n%s\n", yellow("Plausibilität:"))
	pl := rep.Plausibility
	fmt.Printf("  %s Ausrüstung (Kocher/Pfanne)\n", mark(pl.EquipmentOK))
	fmt.Printf("  %s Kein Backofen\n", mark(pl.OvenOK))
	fmt.Printf("  %s Wenig Abwasch\n", mark(pl.DishesOK))
	fmt.Printf("  %s Zeiten\n", mark(pl.TimingOK))
	fmt.Printf("  %s Portionen\n", mark(pl.PortionsOK))
	fmt.Println()
}

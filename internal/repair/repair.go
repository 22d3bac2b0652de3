// Package repair picks one corrective rewrite per round from a diagnostic
// report and renders the matching instruction for the generation service.
// Exactly one strategy fires per round; selection is priority ordered so the
// most fundamental defect is fixed first. Narrative voice outranks
// everything, since rewrites for other defects tend to regress voice.
package repair

import (
	"fmt"
	"strings"

	"github.com/annigue/Artikel-LLM/internal/evaluate"
	"github.com/annigue/Artikel-LLM/internal/profile"
	"github.com/annigue/Artikel-LLM/internal/prompt"
)

// Strategy names one corrective rewrite.
type Strategy string

const (
	StrategyVoice        Strategy = "voice_rewrite"
	StrategyCoherence    Strategy = "coherence_fix"
	StrategySimplify     Strategy = "structure_simplify"
	StrategyAddress      Strategy = "address_rewrite"
	StrategyStructureSEO Strategy = "structure_seo_fix"
	StrategyExpand       Strategy = "expand"
	StrategyCondense     Strategy = "condense"
	StrategyPlausibility Strategy = "plausibility_fix"
	StrategyPolish       Strategy = "polish"
)

// Select returns the single strategy for this round. The report must come
// from a failed evaluation; on a passing report Select returns StrategyPolish
// (harmless) rather than an error.
func Select(rep evaluate.Report, p profile.Profile, in evaluate.Input) Strategy {
	switch {
	case !rep.Style.FirstPersonOK || !rep.VoiceInOpening:
		return StrategyVoice
	case in.StoryMode && !rep.CoherenceOK:
		return StrategyCoherence
	case len(rep.Structure.ForbiddenHeadings) > 0:
		return StrategySimplify
	case !rep.Style.FormalOK || !rep.Style.SecondPersonOK:
		return StrategyAddress
	case !rep.StructureOK || !rep.SEO.TitleOK || !rep.SEO.DescOK:
		return StrategyStructureSEO
	case !rep.Style.WordsMinOK:
		return StrategyExpand
	case !rep.Style.WordsMaxOK:
		return StrategyCondense
	case p.PlausibilityEnabled && !rep.Plausibility.OK:
		return StrategyPlausibility
	default:
		return StrategyPolish
	}
}

// Instruction renders the repair prompt for a strategy over the current
// article text.
func Instruction(s Strategy, text string, rep evaluate.Report, p profile.Profile, in evaluate.Input, c prompt.StyleConfig) string {
	style := c.StyleguideFor(p.MinWords, p.MaxWords)
	negative := c.NegativeLine()
	switch s {
	case StrategyVoice:
		return voicePrompt(text, negative, style)
	case StrategyCoherence:
		return coherencePrompt(text, in.Destination, style, c.Structure, c.Consistency, negative, in.StoryMode)
	case StrategySimplify:
		return simplifyPrompt(text, rep.Structure.ForbiddenHeadings, negative, style, c.Structure)
	case StrategyAddress:
		return addressPrompt(text, negative, style)
	case StrategyStructureSEO:
		return structurePrompt(text, in.PrimaryKeyword, negative, style, c.Structure, c.Examples)
	case StrategyExpand:
		return ExpandPrompt(text, p.MinWords, p.MaxWords, negative, style, c.Structure, c.Examples)
	case StrategyCondense:
		return condensePrompt(text, p.MinWords, p.MaxWords, negative, style, c.Structure, c.Examples)
	case StrategyPlausibility:
		return plausibilityPrompt(text, rep, in, style, c.Structure, c.Consistency, c.Plausible)
	default:
		return polishPrompt(text, negative, p.MinWords, p.MaxWords, c.Structure)
	}
}

func voicePrompt(text, negative, style string) string {
	return fmt.Sprintf(`Schreibe den Text konsequent in der **Ich-Perspektive** um (ich/mir/mich/mein ...).
- Beginne **Einleitung** und **Hintergrund & Tipps** in der Ich-Form.
- „Du“-Ansprache nur für Hinweise/Tipps, aber der Erzähler bleibt „ich“.
- Entferne Floskeln (vermeide: %s). Korrigiere Grammatik und Zeichensetzung.
- Behalte Inhalt, Struktur und YAML-SEO-Block bei.
Gib NUR den umgeschriebenen Text zurück.

Stilguide:
%s

Text:
%s
`, negative, style, text)
}

func coherencePrompt(text, destination, style, structure, consistency, negative string, story bool) string {
	if story {
		destLine := ""
		if destination != "" {
			destLine = fmt.Sprintf("- Nenne **%s** im ersten Satz von „Hintergrund & Tipps“.\n", destination)
		}
		return fmt.Sprintf(`Bringe Einleitung und „Hintergrund & Tipps“ in eine **einheitliche Szene**:
- Nutze einen **Übergangssatz** zur Einleitung oder eine klar markierte Rückblende.
%s- Behalte Struktur & YAML-SEO-Block bei. Entferne Floskeln (vermeide: %s). Ich-Perspektive.
- Konsistentes Vokabular: Camper, Kocher, Pfanne.

Stilguide:
%s

Struktur-Guide:
%s

Konsistenz-Guide:
%s

Text:
%s
`, destLine, negative, style, structure, consistency, text)
	}
	return fmt.Sprintf(`Eröffne „Hintergrund & Tipps“ **ohne Anekdote**:
- Starte direkt mit 2–4 **konkreten Praxis-Tipps** (häufige Fehler, Kniffe, Varianten).
- **Vermeide** Formulierungen wie „Meine erste Begegnung …“, „Damals …“.
- Behalte Struktur & YAML-SEO-Block. Entferne Floskeln (vermeide: %s). Ich-Perspektive.

Stilguide:
%s

Struktur-Guide:
%s

Konsistenz-Guide:
%s

Text:
%s
`, negative, style, structure, consistency, text)
}

func simplifyPrompt(text string, forbidden []string, negative, style, structure string) string {
	headings := strings.Join(forbidden, ", ")
	return fmt.Sprintf(`Vereinfache die Gliederung des Artikels auf das vorgegebene Schema:
- Entferne die Abschnitte/Überschriften: %s. Arbeite deren brauchbaren Inhalt knapp in die erlaubten Abschnitte ein.
- Erlaubt sind NUR: H1, H2 „Einleitung“, H2 „Hintergrund & Tipps“, H2 „Rezept: …“ (mit H3 „Zutaten“, „Schritt für Schritt“, „Zeiten & Portionen“), optional „Interne Link-Ideen“.
- Kein Fazit, keine Zusammenfassung, keine Zusatzkapitel.
- Entferne doppelte Listen und doppelte Absätze.
- Behalte Ich-Perspektive und YAML-SEO-Block. Vermeide Floskeln (vermeide: %s).
Gib nur den finalen Markdown-Artikel zurück.

Stilguide:
%s

Struktur-Guide:
%s

Text:
%s
`, headings, negative, style, structure, text)
}

func addressPrompt(text, negative, style string) string {
	return fmt.Sprintf(`Passe die Leseransprache auf **du** an (du/dich/dir/dein …) und entferne alle formellen Anreden (Sie/Ihnen/Ihr …).
- **Erhalte die Ich-Perspektive als Erzähler** unverändert.
- Korrigiere Grammatik/Zeichensetzung, keine strukturellen Änderungen.
- Gib NUR den umgeschriebenen Text zurück. Vermeide Floskeln (vermeide: %s).

Stilguide:
%s

Text:
%s
`, negative, style, text)
}

func structurePrompt(text, primaryKW, negative, style, structure, examples string) string {
	return fmt.Sprintf(`Bringe den Artikel exakt in die geforderte **Struktur** und verbessere SEO:
- YAML-SEO-Block vollständig + valide (seo_title <=60, meta_description 50–155 Zeichen, slug in kebab-case).
- H1 enthält das Primär-Keyword: "%s".
- H2 „Einleitung“, H2 „Hintergrund & Tipps“, H2 „Rezept: …“.
- Unter Rezept: H3 „Zutaten“, H3 „Schritt für Schritt“ (6–10 nummerierte Schritte), H3 „Zeiten & Portionen“.
- Primär-Keyword natürlich in den ersten 100 Wörtern.
- Du-Ansprache, keine Floskeln (vermeide: %s), aktive Verben.
Gib nur den finalen Markdown-Artikel zurück.

Stilguide:
%s

Struktur-Guide:
%s

Beispiele (Ton):
%s

Text:
%s
`, primaryKW, negative, style, structure, examples, text)
}

// ExpandPrompt is exported because the pipeline also uses it for forced
// expansion rounds after the repair budget is spent.
func ExpandPrompt(text string, minWords, maxWords int, negative, style, structure, examples string) string {
	return fmt.Sprintf(`Erweitere den Artikel substanziell auf %d–%d Wörter (keine Wortzahl ausgeben).
- Bewahre die **vorgegebene Struktur** (YAML-SEO-Block, H1, H2/H3, nummerierte Schritte).
- Ergänze sinnvolle Abschnitte (Varianten, Packliste, Timing, Troubleshooting, schnelle Abwandlungen).
- Vermeide Wiederholungen und Floskeln (vermeide: %s). Aktive Verben, konkrete Zahlen/Zeiten/Mengen.

Stilguide:
%s

Struktur-Guide:
%s

Beispiele (Ton):
%s

Text:
%s
`, minWords, maxWords, negative, style, structure, examples, text)
}

func condensePrompt(text string, minWords, maxWords int, negative, style, structure, examples string) string {
	return fmt.Sprintf(`Kürze präzise auf %d–%d Wörter (keine Wortzahl ausgeben).
- Erhalte Kerninfos, persönliche Note und konkrete Details.
- Bewahre die **vorgegebene Struktur** (YAML-SEO-Block, H1, H2/H3, nummerierte Schritte).
- Entferne Wiederholungen und Floskeln (vermeide: %s). Variiere Satzlängen.

Stilguide:
%s

Struktur-Guide:
%s

Beispiele (Ton):
%s

Text:
%s
`, minWords, maxWords, negative, style, structure, examples, text)
}

func plausibilityPrompt(text string, rep evaluate.Report, in evaluate.Input, style, structure, consistency, plausible string) string {
	var constraints []string
	pl := rep.Plausibility
	if !pl.EquipmentOK {
		constraints = append(constraints, "- Verwende **Pfanne** und **(Camping)Kocher** ausdrücklich in den Schritten.\n")
	}
	if !pl.OvenOK {
		constraints = append(constraints, "- Entferne jede Erwähnung von **Backofen/Ofen** (nicht angefragt); arbeite mit Kocher und Pfanne.\n")
	}
	if !pl.DishesOK {
		constraints = append(constraints, "- Bei „wenig Abwasch“: maximal 1 zusätzliche Schüssel und 1 Topf, wenn nötig.\n")
	}
	if !pl.TimingOK && pl.TargetWindow != nil {
		constraints = append(constraints, fmt.Sprintf(
			"- Nutze im Rezept das Zeitfenster **%d–%d Minuten** (±2 Min Toleranz) deutlich in den Schritten oder im Zeitenblock.\n",
			pl.TargetWindow.Lo, pl.TargetWindow.Hi))
	}
	if !pl.PortionsOK {
		constraints = append(constraints, "- Portionen realistisch (1–8) im Block „Zeiten & Portionen“.\n")
	}
	destHint := ""
	if in.Destination != "" {
		destHint = fmt.Sprintf("- Halte das Reiseziel **%s** konsistent in Einleitung und erstem Satz von „Hintergrund & Tipps“.\n", in.Destination)
	}
	return fmt.Sprintf(`Mache den Text camping-plausibel:
%s%s- Behalte **Ich-Perspektive**, Struktur und YAML-SEO-Block.

Stilguide:
%s

Struktur-Guide:
%s

Konsistenz-Guide:
%s

Plausibilitäts-Guide:
%s

Text:
%s
`, strings.Join(constraints, ""), destHint, style, structure, consistency, plausible, text)
}

func polishPrompt(text, negative string, minWords, maxWords int, structure string) string {
	return fmt.Sprintf(`Überarbeite den Artikel gezielt:
- Halte Ich-Perspektive streng durch.
- Entferne restliche Floskeln (%s) und erhöhe Satzlängen-Varianz.
- Füge ≥2 konkrete Zahlen/Zeiten/Mengen hinzu.
- Halte Länge %d–%d, bewahre Struktur & YAML-SEO-Block.

Struktur-Guide:
%s

Text:
%s
`, negative, minWords, maxWords, structure, text)
}

// Package prompt builds the German instruction blocks sent to the
// generation service. Templates are assembled from a StyleConfig so callers
// can swap out house style without touching the pipeline.
package prompt

import (
	"fmt"
	"strings"

	"github.com/annigue/Artikel-LLM/internal/profile"
)

// StyleConfig carries the reusable instruction blocks. DefaultStyle returns
// the camp-kochen.de house style.
type StyleConfig struct {
	System      string
	Styleguide  string // contains %d verbs for min/max words
	Examples    string
	Structure   string
	Consistency string
	Plausible   string
	Negative    []string
}

// DefaultStyle returns the standard editorial configuration.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		System:      systemPrompt,
		Styleguide:  styleguide,
		Examples:    styleExamples,
		Structure:   structureGuide,
		Consistency: consistencyGuide,
		Plausible:   plausibilityGuide,
		Negative:    append([]string(nil), profile.DefaultNegativeList...),
	}
}

// NegativeLine joins the banned-phrase list for inlining into a prompt.
func (c StyleConfig) NegativeLine() string {
	return strings.Join(c.Negative, ", ")
}

// StyleguideFor substitutes the word range into the styleguide.
func (c StyleConfig) StyleguideFor(minWords, maxWords int) string {
	return strings.TrimSpace(fmt.Sprintf(c.Styleguide, minWords, maxWords))
}

const systemPrompt = `Du bist Redakteur:in für camp-kochen.de.
Deine Aufgabe: hilfreiche, konkrete, persönliche Texte mit natürlichem Rhythmus verfassen.
Erzählerstimme ist **Ich-Perspektive**; Leseransprache „du“ nur für Hinweise/Tipps.
Halte den Stilguide strikt ein.`

const styleguide = `Schreibe wie „camp-kochen.de“: pragmatisch, persönlich, ohne Füllfloskeln.
- Erzählerstimme: **Ich-Perspektive** (ich/mir/mich/mein) in allen Abschnitten.
- Leseransprache „du“ ist erlaubt für Tipps/Handgriffe, aber der Erzähler bleibt „ich“.
- Variiere Satzlängen. Kurze Sätze sind erlaubt.
- Konkrete Details (Mengen, Zeiten, Geräusche/Textur), keine Leerphrasen.
- Vermeide: „In diesem Artikel“, „abschließend“, „insgesamt“, „innovativ“, „köstlich“,
  „einfach zuzubereiten“, „im Folgenden“, „es ist wichtig zu beachten“, „nachstehend“.
- Aktive Verben. Keine sterile Aufzählung.
- Länge: zwischen %d und %d Wörtern. Gib keine Wortzahl aus.`

const styleExamples = `Beispiel 1:
Versprochen, so ein essbares Microadventure sorgt nochmal für eine Extraportion Umami.

Beispiel 2 (Erklärung + Bildsprache):
Unsere cremige Süßkartoffelsuppe bringt extra viel Farbe ins trübe Herbstwetter und zusammen mit den schnellen, rauchigen und knusprigen Rosenkohl-Chips, die einen tollen Kontrast zur süßen Gemüsebasis bilden, wirds richtig aufregend in der Schüssel.

Beispiel 3 (Hürde entkrampfen, Humor):
Ich rede jetzt aber nicht davon, bei den nächsten drölf Schneeflocken sofort die
ganze Family in den Minivan zu packen und zusammen mit 827 anderen, denen die Decke auf den Kopf fällt, den nächstgelegenen und eigentlich viel zu popelig-kurzen Schlittenhügel mit einer fünfsekündigen Abfahrt und matschigem Auslauf anzusteuern.

Beispiel 4 (fachlich + bildlich):
Dafür schneiden wir den Strunk großzügig ab und kerben den Stil rundherum leicht schräg mit einem kleinen Küchenmesser ein. Am einfachsten gehts mit einem kurzen, scharfen Schälmesser. So lassen sich die äußeren Blätter leicht ablösen.`

const structureGuide = `Erzeuge einen vollständigen Artikel in **Markdown** mit exakt dieser Struktur:

- **SEO-Block** (oberhalb des Inhalts), im YAML-Frontmatter-Format:
  ---
  seo_title: "<max 60 Zeichen, Primär-Keyword enthalten>"
  meta_description: "<max 155 Zeichen, Nutzen/USP, Primär-Keyword enthalten>"
  slug: "<kebab-case-ohne-Sonderzeichen>"
  primary_keyword: "<Primär-Keyword>"
  secondary_keywords: ["<Sek1>", "<Sek2>", "<Sek3>"]
  ---
- **H1**: Rezeptname (Primär-Keyword enthalten)
- **H2 Einleitung**: 1–2 Absätze, natürliche Einbindung des Primär-Keywords in den ersten 100 Wörtern.
- **H2 Hintergrund & Tipps**: Back-Story, typische Fehler entkrampfen, 2–4 konkrete Tipps aus Erfahrung.
- **H2 Rezept: <Kurzbezeichnung>**
  - **H3 Zutaten** (Liste mit Mengenangaben)
  - **H3 Schritt für Schritt** (nummerierte Liste, 6–10 Schritte)
  - **H3 Zeiten & Portionen** (Zubereitung, Gesamtzeit, Ruhe-/Backzeit, Portionen)
Optional am Ende: 1–2 interne Link-Ideen (ohne URL).`

const consistencyGuide = `Kohärenz & Story-Führung:
- Halte Einleitung und „Hintergrund & Tipps“ in derselben Szene/Erzählzeit, ODER markiere Wechsel sauber als Rückblende (z. B. „Meine erste Begegnung …“, „Ein paar Tage zuvor …“).
- Wenn ein Reiseziel angegeben ist, nenne es in der Einleitung **und** zu Beginn von „Hintergrund & Tipps“.
- Vermeide konkurrierende Start-Szenen; nutze im Hintergrund einen Übergangssatz, der klar an die Einleitung anknüpft.
- Nutze ein konsistentes Vokabular: „Camper“, „Kocher“, „Pfanne“, „Vanlife“, "Rundreise"`

const plausibilityGuide = `Plausibilität & Camping-Kontext:
- Nutze typische Outdoor-Ausrüstung (Pfanne, Campingkocher, Deckel). Kein „Backofen/Ofen“ ohne explizite Anforderung.
- „Wenig Abwasch“: vermeide unnötige zusätzliche Schüsseln/Schalen. Wenn möglich direkt in der Pfanne arbeiten.
- Bleib bei hausüblichen Mengen und Zeiten. Wenn im Input ein Zeitfenster genannt ist (z. B. 12–14 Min), nutze es.
- Keine erfundenen Markennamen oder exakten Adressen. Nenne nur allgemein bekannte Orte/Landschaften (z. B. Tel Aviv, Negev, Totes Meer).
- sei präzise bei der Beschreibung von Details, bildlich beschreiben, vermeide Übertreibungen`

const coherenceLineStory = "\n\nWICHTIG: Einleitung und „Hintergrund & Tipps“ bilden eine **einheitliche Szene**; " +
	"im Hintergrund zuerst **an die Einleitung andocken** (Übergangssatz), " +
	"alternativ sauber markierte Rückblende."

const coherenceLineTips = "\n\nWICHTIG: „Hintergrund & Tipps“ **ohne Anekdote eröffnen**. " +
	"Starte direkt mit 2–4 **konkreten Technik-/Praxis-Tipps**; " +
	"keine Formulierungen wie „Meine erste Begegnung …“."

// CoherenceLine returns the trailer appended to draft and edit prompts.
func CoherenceLine(story bool) string {
	if story {
		return coherenceLineStory
	}
	return coherenceLineTips
}

// TravelHook builds the optional mini-story requirement for the background
// section. Empty when no destination narrative is wanted.
func TravelHook(destination, angle string) string {
	if destination == "" {
		return ""
	}
	if angle == "" {
		angle = "Vanlife/Rundreise"
	}
	return fmt.Sprintf(`
Zusatzanforderung (Reise-Story, nur wenn sinnvoll):
- Beginne H2 „Hintergrund & Tipps“ mit **Übergang** zur Einleitung oder sauber markierter **Rückblende**.
- Nenne **%s** im ersten Satz von „Hintergrund & Tipps“ und verknüpfe die Szene mit der Einleitung.
- Beziehe dich auf **%s** und nenne 1–2 konkrete Orte/Details. Danach folgen die Tipps.
`, destination, angle)
}

// DraftInput carries the per-article parameters for the initial draft.
type DraftInput struct {
	Topic        string
	Details      string
	PrimaryKW    string
	SecondaryKWs string
	MinWords     int
	MaxWords     int
	Destination  string
	TravelAngle  string
	StoryMode    bool
}

// Draft builds the stage-one generation prompt.
func (c StyleConfig) Draft(in DraftInput) string {
	base := fmt.Sprintf(`Erstelle einen Rohentwurf gemäß Stilguide, Struktur-Guide und Beispielen.
Thema: %s
Pflichtdetails: %s
Primär-Keyword: %s
Sekundär-Keywords (optional): %s
Gib **nur** den finalen Markdown-Artikel in der geforderten Struktur zurück (inkl. YAML-SEO-Block).
Stilguide:
%s

Struktur-Guide:
%s

Konsistenz-Guide:
%s

Plausibilitäts-Guide:
%s

Beispiele (Tonfallreferenz):
%s
`, in.Topic, in.Details, in.PrimaryKW, in.SecondaryKWs,
		c.StyleguideFor(in.MinWords, in.MaxWords), c.Structure, c.Consistency, c.Plausible, c.Examples)
	hook := ""
	if in.StoryMode {
		hook = TravelHook(in.Destination, in.TravelAngle)
	}
	return base + hook + CoherenceLine(in.StoryMode)
}

// Clean builds the stage-two language correction prompt.
func (c StyleConfig) Clean(raw string) string {
	return fmt.Sprintf(`Korrigiere den folgenden Text in deutscher Sprache:
- Behebe Rechtschreibung, Grammatik, Zeichensetzung und schiefe Formulierungen.
- Schreibe konsequent in der **Ich-Perspektive** (ich/mir/mich/mein). Ersetze unpersönliche „man“-Konstruktionen
  und unpassende „wir“-Formen durch „ich“, außer wenn „wir“ inhaltlich zwingend ist.
- „Du“-Ansprache für Hinweise/Tipps bleibt erlaubt.
- Vermeide formelle Anrede (Sie/Ihnen/Ihr ...).
- Behalte Inhalt und Struktur bei.
Gib NUR den bereinigten Text zurück.

Text:
%s
`, raw)
}

// Edit builds the stage-three style pass over the cleaned draft.
func (c StyleConfig) Edit(in DraftInput, cleaned string) string {
	base := fmt.Sprintf(`Überarbeite den Text gemäß Stil- und Struktur-Guide.
- Schreibe durchgängig in **Ich-Perspektive**; beginne **Einleitung** sowie **Hintergrund & Tipps** in der Ich-Form.
- Leser darf als „du“ adressiert werden, aber nicht die Erzählerrolle übernehmen.
- Entferne Floskeln aus der Negativliste: %s
- Wahrung der Struktur (YAML-SEO-Block, H1, H2/H3 exakt wie vorgegeben)
- Nutze Primär-Keyword in H1 + Einleitung (erste 100 Wörter) + mindestens 1 H2.
- Variiere Satzlängen; erlaube rhetorische Fragen.
- Füge 1–2 konkrete Beobachtungen/Details ein (Geräusch, Textur, Zahl).
- Liste „Schritt für Schritt“ nummeriert (6–10 Schritte).
- Mengenangaben bei Zutaten prüfen/ergänzen.
- Länge strikt %d–%d Wörter (keine Wortzahl ausgeben).
- Konsequent Du-Ansprache (keine formelle Anrede).
Gib **nur** den finalen Markdown-Artikel zurück.

Stilguide:
%s

Struktur-Guide:
%s

Konsistenz-Guide:
%s

Plausibilitäts-Guide:
%s

Beispiele (Tonfallreferenz):
%s

Text:
%s
`, c.NegativeLine(), in.MinWords, in.MaxWords,
		c.StyleguideFor(in.MinWords, in.MaxWords), c.Structure, c.Consistency, c.Plausible, c.Examples, cleaned)
	hook := ""
	if in.StoryMode {
		hook = TravelHook(in.Destination, in.TravelAngle)
	}
	return base + hook + CoherenceLine(in.StoryMode)
}

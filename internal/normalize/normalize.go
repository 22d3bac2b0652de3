// Package normalize enforces the article schema on raw generation-service
// output before evaluation. The service is non-deterministic and drifts from
// its instructions over repair rounds; without this deterministic cleanup,
// repair attempts compound malformation (duplicate tips, runaway headings)
// instead of converging.
//
// Normalize is idempotent: applying it twice yields the same result as once.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/annigue/Artikel-LLM/internal/article"
)

// Config bounds the list surgery. Zero values are replaced by defaults.
type Config struct {
	MaxTips      int // consolidated tip list cap in "Hintergrund & Tipps"
	MaxListItems int // cap for every bulleted list
	MaxSteps     int // numbered steps kept in "Schritt für Schritt"
	MaxLinkIdeas int // bullet cap for the optional link-ideas section
}

// DefaultConfig returns the stock bounds.
func DefaultConfig() Config {
	return Config{
		MaxTips:      4,
		MaxListItems: 8,
		MaxSteps:     10,
		MaxLinkIdeas: 2,
	}
}

var (
	frontmatterRE = regexp.MustCompile(`(?s)\A\s*---\s*\n(.*?)\n---\s*\n?`)
	h2LineRE      = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	h3LineRE      = regexp.MustCompile(`^###\s+(.+?)\s*$`)
	bulletLineRE  = regexp.MustCompile(`^\s*[-*•]\s+(.*)$`)
	numberedRE    = regexp.MustCompile(`^\s*\d+[.)]\s+(.*)$`)
)

// Normalize applies the corrective transforms in fixed order and returns the
// schema-conforming document. Total over arbitrary text.
func Normalize(raw string, cfg Config) string {
	if cfg.MaxTips == 0 {
		cfg = DefaultConfig()
	}

	fm, body := splitFrontmatter(raw)

	blocks := parseBlocks(body)
	blocks = pruneForbidden(blocks)
	blocks = consolidateTips(blocks, cfg.MaxTips)
	blocks = collapseRepeats(blocks, cfg.MaxLinkIdeas)

	lines := flatten(blocks)
	lines = capBulletLists(lines, cfg.MaxListItems)
	lines = renumberSteps(lines, cfg.MaxSteps)
	lines = dedupeLines(lines)

	out := collapseBlankRuns(strings.Join(lines, "\n"))
	out = strings.TrimRight(out, "\n ") + "\n"
	if fm != "" {
		return fm + out
	}
	return out
}

// splitFrontmatter separates the YAML block (returned verbatim, trailing
// newline included) from the body.
func splitFrontmatter(raw string) (fm, body string) {
	loc := frontmatterRE.FindStringIndex(raw)
	if loc == nil {
		return "", raw
	}
	return raw[:loc[1]], raw[loc[1]:]
}

// block is one H2 section, or the preamble (heading == "") holding the H1
// and any text before the first H2.
type block struct {
	heading string // full heading line, e.g. "## Einleitung"
	title   string // heading text only
	lines   []string
}

func parseBlocks(body string) []block {
	var blocks []block
	cur := block{}
	for _, line := range strings.Split(body, "\n") {
		if m := h2LineRE.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, cur)
			cur = block{heading: line, title: m[1]}
			continue
		}
		cur.lines = append(cur.lines, line)
	}
	return append(blocks, cur)
}

// pruneForbidden drops H2 blocks outside the allowed schema (step 1) and
// strips forbidden H3 sub-blocks inside the survivors. H3 headings are only
// legal inside the recipe section.
func pruneForbidden(blocks []block) []block {
	var kept []block
	for _, b := range blocks {
		if b.heading != "" {
			if article.DisallowedH2(b.title) || !article.AllowedH2(b.title) {
				continue
			}
		}
		inRecipe := b.heading != "" && article.HeadingMatches(b.title, article.SectionRecipe)
		b.lines = pruneH3(b.lines, inRecipe)
		kept = append(kept, b)
	}
	return kept
}

func pruneH3(lines []string, inRecipe bool) []string {
	var out []string
	dropping := false
	for _, line := range lines {
		if m := h3LineRE.FindStringSubmatch(line); m != nil {
			dropping = !inRecipe || !article.AllowedH3(m[1])
			if dropping {
				continue
			}
		}
		if dropping {
			continue
		}
		out = append(out, line)
	}
	return out
}

// consolidateTips gathers scattered bullet lines inside the background
// section into a single deduplicated list at the end of the section,
// first-seen order, capped (step 2).
func consolidateTips(blocks []block, maxTips int) []block {
	for i, b := range blocks {
		if b.heading == "" || !article.HeadingMatches(b.title, article.SectionBackground) {
			continue
		}
		var prose []string
		var tips []string
		seen := map[string]struct{}{}
		for _, line := range b.lines {
			m := bulletLineRE.FindStringSubmatch(line)
			if m == nil {
				prose = append(prose, line)
				continue
			}
			text := strings.TrimSpace(m[1])
			key := dedupeKey(text)
			if _, dup := seen[key]; dup || key == "" {
				continue
			}
			seen[key] = struct{}{}
			if len(tips) < maxTips {
				tips = append(tips, "- "+text)
			}
		}
		if len(tips) == 0 {
			blocks[i].lines = prose
			break
		}
		rebuilt := trimBlankTail(prose)
		rebuilt = append(rebuilt, "")
		rebuilt = append(rebuilt, tips...)
		blocks[i].lines = rebuilt
		break
	}
	return blocks
}

// collapseRepeats keeps only the first occurrence of each schema section
// (step 3) and caps the optional link-ideas list.
func collapseRepeats(blocks []block, maxLinkIdeas int) []block {
	canonical := []string{
		article.SectionIntro,
		article.SectionBackground,
		article.SectionRecipe,
		article.SectionLinkIdeas,
	}
	seen := map[string]bool{}
	var kept []block
	for _, b := range blocks {
		if b.heading == "" {
			kept = append(kept, b)
			continue
		}
		key := ""
		for _, c := range canonical {
			if article.HeadingMatches(b.title, c) {
				key = c
				break
			}
		}
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		if key == article.SectionLinkIdeas {
			b.lines = capBulletLists(b.lines, maxLinkIdeas)
		}
		kept = append(kept, b)
	}
	return kept
}

func flatten(blocks []block) []string {
	var lines []string
	for _, b := range blocks {
		if b.heading != "" {
			lines = append(lines, b.heading)
		}
		lines = append(lines, b.lines...)
	}
	return lines
}

// capBulletLists truncates every run of consecutive bullet lines (step 4).
func capBulletLists(lines []string, limit int) []string {
	var out []string
	run := 0
	for _, line := range lines {
		if bulletLineRE.MatchString(line) {
			run++
			if run > limit {
				continue
			}
		} else {
			run = 0
		}
		out = append(out, line)
	}
	return out
}

// renumberSteps rewrites the procedure section's numbered list contiguously
// from 1 and drops items beyond maxSteps (step 5).
func renumberSteps(lines []string, maxSteps int) []string {
	var out []string
	inRecipe := false
	inSteps := false
	n := 0
	for _, line := range lines {
		if m := h2LineRE.FindStringSubmatch(line); m != nil {
			inRecipe = article.HeadingMatches(m[1], article.SectionRecipe)
			inSteps = false
		} else if m := h3LineRE.FindStringSubmatch(line); m != nil {
			inSteps = inRecipe && article.HeadingMatches(m[1], article.SectionSteps)
			n = 0
		} else if inSteps {
			if m := numberedRE.FindStringSubmatch(line); m != nil {
				n++
				if n > maxSteps {
					continue
				}
				out = append(out, fmt.Sprintf("%d. %s", n, strings.TrimSpace(m[1])))
				continue
			}
		}
		out = append(out, line)
	}
	return out
}

// dedupeLines removes whole-document duplicate lines, first occurrence kept
// (step 6). Keys trim and collapse internal whitespace; blank lines are
// never deduplicated. Lines inside the procedure list carry a scoped key so
// a matching line elsewhere cannot knock out a freshly renumbered step,
// which would leave a gap and break idempotence.
func dedupeLines(lines []string) []string {
	seen := map[string]struct{}{}
	var out []string
	inRecipe := false
	inSteps := false
	for _, line := range lines {
		if m := h2LineRE.FindStringSubmatch(line); m != nil {
			inRecipe = article.HeadingMatches(m[1], article.SectionRecipe)
			inSteps = false
		} else if m := h3LineRE.FindStringSubmatch(line); m != nil {
			inSteps = inRecipe && article.HeadingMatches(m[1], article.SectionSteps)
		}
		key := strings.Join(strings.Fields(line), " ")
		if key == "" {
			out = append(out, line)
			continue
		}
		if inSteps && numberedRE.MatchString(line) {
			key = "schritt\x00" + key
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, line)
	}
	return out
}

// collapseBlankRuns reduces runs of 3+ blank lines to one (step 7).
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			continue
		}
		if blanks > 0 {
			if blanks >= 3 {
				out = append(out, "")
			} else {
				for i := 0; i < blanks; i++ {
					out = append(out, "")
				}
			}
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func dedupeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func trimBlankTail(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

package textmetrics

import (
	"regexp"
	"strings"

	"github.com/annigue/Artikel-LLM/internal/article"
)

// StructureMetrics reports presence of every required part of the article
// skeleton plus schema violations.
type StructureMetrics struct {
	Frontmatter  bool
	H1Present    bool
	H1HasKeyword bool

	HasIntro       bool
	HasBackground  bool
	HasRecipe      bool
	HasIngredients bool
	HasSteps       bool
	HasTimes       bool

	StepCount int
	StepsOK   bool

	// KeywordEarly is true when the primary keyword appears within the first
	// 100 body tokens, frontmatter excluded.
	KeywordEarly bool

	// ForbiddenHeadings lists heading titles (either tier) outside the
	// allowed schema.
	ForbiddenHeadings []string
}

var (
	h2ScanRE       = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
	h3ScanRE       = regexp.MustCompile(`(?m)^###\s+(.+?)\s*$`)
	h2OnlyRE       = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	h3OnlyRE       = regexp.MustCompile(`^###\s+(.+?)\s*$`)
	numberedLineRE = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
)

// Structure extracts the structural metrics. minSteps/maxSteps bound the
// numbered items of the "Schritt für Schritt" section.
func Structure(d *article.Document, primaryKW string, minSteps, maxSteps int) StructureMetrics {
	body := d.Body()
	title := d.Title()

	m := StructureMetrics{
		Frontmatter:    d.HasFrontmatter(),
		H1Present:      title != "",
		HasIntro:       hasSection(d, article.SectionIntro),
		HasBackground:  hasSection(d, article.SectionBackground),
		HasRecipe:      hasSection(d, article.SectionRecipe),
		HasIngredients: hasH3(body, article.SectionIngredients),
		HasSteps:       hasH3(body, article.SectionSteps),
		HasTimes:       hasH3(body, article.SectionTimes),
		KeywordEarly:   KeywordInWindow(body, primaryKW, 100),
	}

	if strings.TrimSpace(primaryKW) == "" {
		m.H1HasKeyword = true
	} else {
		m.H1HasKeyword = strings.Contains(strings.ToLower(title), strings.ToLower(primaryKW))
	}

	m.StepCount = StepCount(d)
	m.StepsOK = m.StepCount >= minSteps && m.StepCount <= maxSteps

	m.ForbiddenHeadings = forbiddenHeadings(body)
	return m
}

// StepCount counts numbered items inside the procedure section. Numbered
// lines elsewhere in the document do not count.
func StepCount(d *article.Document) int {
	recipe := d.Section(article.SectionRecipe)
	if recipe == "" {
		return 0
	}
	steps := h3Block(recipe, article.SectionSteps)
	return len(numberedLineRE.FindAllString(steps, -1))
}

func hasSection(d *article.Document, name string) bool {
	return d.Section(name) != ""
}

func hasH3(body, name string) bool {
	for _, m := range h3ScanRE.FindAllStringSubmatch(body, -1) {
		if article.HeadingMatches(m[1], name) {
			return true
		}
	}
	return false
}

// h3Block returns the content of the named H3 inside the given section text,
// up to the next H3 or the end.
func h3Block(section, name string) string {
	lines := strings.Split(section, "\n")
	start := -1
	for i, line := range lines {
		m := h3OnlyRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if start >= 0 {
			return strings.Join(lines[start+1:i], "\n")
		}
		if article.HeadingMatches(m[1], name) {
			start = i
		}
	}
	if start < 0 {
		return ""
	}
	return strings.Join(lines[start+1:], "\n")
}

// forbiddenHeadings collects heading titles outside the allowed schema at
// both tiers. An H3 outside the recipe section is forbidden even when its
// title is in the allowed H3 set.
func forbiddenHeadings(body string) []string {
	var bad []string
	for _, m := range h2ScanRE.FindAllStringSubmatch(body, -1) {
		if !article.AllowedH2(m[1]) {
			bad = append(bad, m[1])
		}
	}
	inRecipe := false
	for _, line := range strings.Split(body, "\n") {
		if h2 := h2OnlyRE.FindStringSubmatch(line); h2 != nil {
			inRecipe = article.HeadingMatches(h2[1], article.SectionRecipe)
			continue
		}
		if h3 := h3OnlyRE.FindStringSubmatch(line); h3 != nil {
			if !inRecipe || !article.AllowedH3(h3[1]) {
				bad = append(bad, h3[1])
			}
		}
	}
	return bad
}

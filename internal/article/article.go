// Package article models the generated markdown article: a YAML SEO
// frontmatter block followed by a fixed H2/H3 skeleton. Parsing is total:
// malformed input never fails, a section that cannot be located is simply
// absent. Absence, not errors, is the failure channel; the evaluator turns
// absence into failed checks.
package article

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Meta is the SEO frontmatter block above the article body.
type Meta struct {
	SEOTitle          string   `yaml:"seo_title"`
	MetaDescription   string   `yaml:"meta_description"`
	Slug              string   `yaml:"slug"`
	PrimaryKeyword    string   `yaml:"primary_keyword"`
	SecondaryKeywords []string `yaml:"secondary_keywords"`
}

// Document wraps raw article markdown with structured read access. The raw
// text is the source of truth; ReplaceSection rewrites one section and leaves
// every other byte untouched.
type Document struct {
	raw string
}

var (
	frontmatterRE = regexp.MustCompile(`(?s)\A\s*---\s*\n(.*?)\n---\s*\n?`)
	h1RE          = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	h2LineRE      = regexp.MustCompile(`^##\s+(.+?)\s*$`)
	h3LineRE      = regexp.MustCompile(`^###\s+(.+?)\s*$`)

	metaFieldRE = map[string]*regexp.Regexp{
		"seo_title":        regexp.MustCompile(`(?m)^seo_title:\s*"?([^"\n]+)"?\s*$`),
		"meta_description": regexp.MustCompile(`(?m)^meta_description:\s*"?([^"\n]+)"?\s*$`),
		"slug":             regexp.MustCompile(`(?m)^slug:\s*"?([^"\n]+)"?\s*$`),
	}
)

// Parse wraps raw markdown. It never fails.
func Parse(raw string) *Document {
	return &Document{raw: raw}
}

// Raw returns the underlying markdown unchanged.
func (d *Document) Raw() string { return d.raw }

// HasFrontmatter reports whether a YAML frontmatter block opens the document.
func (d *Document) HasFrontmatter() bool {
	return frontmatterRE.MatchString(d.raw)
}

// Frontmatter decodes the YAML SEO block. The second return is false when the
// block is missing or does not decode; the zero Meta is returned in that case.
func (d *Document) Frontmatter() (Meta, bool) {
	m := frontmatterRE.FindStringSubmatch(d.raw)
	if m == nil {
		return Meta{}, false
	}
	var meta Meta
	if err := yaml.Unmarshal([]byte(m[1]), &meta); err != nil {
		return Meta{}, false
	}
	return meta, true
}

// MetaField extracts a single frontmatter string field. It prefers the YAML
// decode and falls back to a line pattern, so a block with one broken value
// still yields the others.
func (d *Document) MetaField(key string) string {
	if meta, ok := d.Frontmatter(); ok {
		switch key {
		case "seo_title":
			return meta.SEOTitle
		case "meta_description":
			return meta.MetaDescription
		case "slug":
			return meta.Slug
		}
	}
	if re, ok := metaFieldRE[key]; ok {
		if m := re.FindStringSubmatch(d.raw); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Body returns the markdown without the frontmatter block.
func (d *Document) Body() string {
	return strings.TrimSpace(frontmatterRE.ReplaceAllString(d.raw, ""))
}

// Title returns the H1 text, or "" when absent.
func (d *Document) Title() string {
	if m := h1RE.FindStringSubmatch(d.Body()); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Section returns the raw content of the named H2 section, without the
// heading line, trimmed. Missing or unparseable sections yield "".
func (d *Document) Section(name string) string {
	start, end := d.sectionBounds(name)
	if start < 0 {
		return ""
	}
	lines := strings.Split(d.raw, "\n")
	return strings.TrimSpace(strings.Join(lines[start+1:end], "\n"))
}

// ReplaceSection rewrites the named H2 section's content in place, keeping
// the heading line and all text outside the section byte-identical. When the
// section is absent the document is returned unchanged.
func (d *Document) ReplaceSection(name, body string) *Document {
	start, end := d.sectionBounds(name)
	if start < 0 {
		return d
	}
	lines := strings.Split(d.raw, "\n")
	var out []string
	out = append(out, lines[:start+1]...)
	out = append(out, "")
	out = append(out, strings.Split(strings.TrimSpace(body), "\n")...)
	out = append(out, "")
	out = append(out, lines[end:]...)
	return &Document{raw: strings.Join(out, "\n")}
}

// sectionBounds locates the named H2 section. start is the heading line
// index, end the index of the next H2 line (or len(lines)). start is -1 when
// the section is not found. Frontmatter lines are skipped so a "---" fence
// can never shadow a heading.
func (d *Document) sectionBounds(name string) (start, end int) {
	lines := strings.Split(d.raw, "\n")
	skip := frontmatterLineCount(d.raw)
	start = -1
	for i := skip; i < len(lines); i++ {
		m := h2LineRE.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		if start < 0 {
			if HeadingMatches(m[1], name) {
				start = i
			}
			continue
		}
		return start, i
	}
	if start < 0 {
		return -1, -1
	}
	return start, len(lines)
}

// frontmatterLineCount returns how many leading lines the frontmatter block
// occupies, 0 when there is none.
func frontmatterLineCount(raw string) int {
	loc := frontmatterRE.FindStringIndex(raw)
	if loc == nil {
		return 0
	}
	return strings.Count(raw[:loc[1]], "\n")
}

var (
	slugInvalidRE  = regexp.MustCompile(`[^a-z0-9\-]+`)
	slugCollapseRE = regexp.MustCompile(`-+`)
)

// Slug returns the frontmatter slug, falling back to a kebab-case form of the
// H1 title, falling back to "artikel".
func (d *Document) Slug() string {
	if s := d.MetaField("slug"); s != "" {
		return s
	}
	title := strings.ToLower(d.Title())
	s := slugInvalidRE.ReplaceAllString(strings.ReplaceAll(title, " ", "-"), "-")
	s = strings.Trim(slugCollapseRE.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return "artikel"
	}
	return s
}

// Package export renders a finished article to HTML suitable for pasting
// into a CMS, plus a metadata sidecar for the post fields.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/annigue/Artikel-LLM/internal/article"
)

// Options controls the render.
type Options struct {
	// StripH1 removes the leading H1 from the HTML body. CMSes set the post
	// title from a separate field, so the in-body H1 would duplicate it.
	StripH1 bool
}

// Meta is the sidecar written next to the HTML.
type Meta struct {
	SEOTitle          string   `json:"seo_title"`
	MetaDescription   string   `json:"meta_description"`
	Slug              string   `json:"slug"`
	PrimaryKeyword    string   `json:"primary_keyword"`
	SecondaryKeywords []string `json:"secondary_keywords"`
	PostTitle         string   `json:"post_title"`
}

// Output is the rendered article.
type Output struct {
	HTML string
	Meta Meta
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

var leadingH1RE = regexp.MustCompile(`^\s*#\s+.+\n?`)

// Render converts the article markdown to HTML and extracts the metadata
// sidecar.
func Render(raw string, opts Options) (*Output, error) {
	doc := article.Parse(raw)
	body := doc.Body()

	title := doc.Title()
	if opts.StripH1 {
		body = leadingH1RE.ReplaceAllString(strings.TrimLeft(body, "\n"), "")
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	meta := Meta{PostTitle: title}
	if fm, ok := doc.Frontmatter(); ok {
		meta.SEOTitle = fm.SEOTitle
		meta.MetaDescription = fm.MetaDescription
		meta.Slug = fm.Slug
		meta.PrimaryKeyword = fm.PrimaryKeyword
		meta.SecondaryKeywords = fm.SecondaryKeywords
		if meta.PostTitle == "" {
			meta.PostTitle = fm.SEOTitle
		}
	}
	if meta.SEOTitle == "" {
		meta.SEOTitle = title
	}
	if meta.Slug == "" {
		meta.Slug = doc.Slug()
	}

	return &Output{
		HTML: strings.TrimSpace(buf.String()) + "\n",
		Meta: meta,
	}, nil
}

// MetaJSON serializes the sidecar with stable indentation.
func (o *Output) MetaJSON() ([]byte, error) {
	b, err := json.MarshalIndent(o.Meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal meta: %w", err)
	}
	return append(b, '\n'), nil
}

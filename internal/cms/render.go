package cms

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
)

const summaryLimit = 180

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy = newPagePolicy()
)

func newPagePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span", "div")
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	p.AllowAttrs("loading").OnElements("img")
	p.RequireNoFollowOnLinks(true)
	return p
}

// render converts page.Body to sanitized HTML and fills a missing summary.
func render(page *Page) error {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(page.Body), &buf); err != nil {
		return fmt.Errorf("cms: render %s: %w", page.Slug, err)
	}
	safe := policy.SanitizeBytes(buf.Bytes())
	page.HTML = template.HTML(safe)
	if page.Summary == "" {
		page.Summary = Summarize(bytes.NewReader(safe), summaryLimit)
	}
	if page.SEO.Description == "" {
		page.SEO.Description = page.Summary
	}
	return nil
}

// Summarize returns the text of the first paragraph in r, truncated at a word
// boundary to at most limit runes.
func Summarize(r io.Reader, limit int) string {
	z := html.NewTokenizer(r)
	var (
		b      strings.Builder
		inPara bool
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncate(b.String(), limit)
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "p" {
				inPara = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "p" && inPara && strings.TrimSpace(b.String()) != "" {
				return truncate(b.String(), limit)
			}
		case html.TextToken:
			if inPara {
				b.Write(z.Text())
			}
		}
	}
}

func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// Package links extracts wiki-style and Markdown-style links from task
// descriptions.
package links

import (
	"regexp"
	"strings"
)

// WikiLink is an internal [[Name]] or [[Name|Alias]] reference.
type WikiLink struct {
	Name  string
	Alias string
}

// MarkdownLink is an external [text](url) reference. The URL is whatever sat
// between the parentheses; no validation is applied.
type MarkdownLink struct {
	Text string
	URL  string
}

var (
	wikiRe     = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)
	markdownRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// ExtractWikiLink returns the first wiki link in the text. Only the first
// match is considered; the split is at the first pipe, so an alias keeps any
// later pipes literally. A name that is empty after trimming yields nothing.
func ExtractWikiLink(text string) (WikiLink, bool) {
	m := wikiRe.FindStringSubmatch(text)
	if m == nil {
		return WikiLink{}, false
	}
	name, alias, _ := strings.Cut(m[1], "|")
	name = strings.TrimSpace(name)
	if name == "" {
		return WikiLink{}, false
	}
	return WikiLink{Name: name, Alias: strings.TrimSpace(alias)}, true
}

// ExtractMarkdownLinks returns every Markdown link in the text in order of
// appearance.
func ExtractMarkdownLinks(text string) []MarkdownLink {
	var out []MarkdownLink
	for _, m := range markdownRe.FindAllStringSubmatch(text, -1) {
		out = append(out, MarkdownLink{Text: m[1], URL: m[2]})
	}
	return out
}

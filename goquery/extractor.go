// Package goquery extracts categorized search text from HTML pages.
package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/sitesearch"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitesearch.Extractor at compile time.
var _ sitesearch.Extractor = (*Extractor)(nil)

// titleSelectors are tried in order for the page title.
var titleSelectors = []string{"title", "h1", "h2", "h3", "h4", "h5"}

// invisibleTags never contribute text.
var invisibleTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// blockTags separate the words on either side of them.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "br": true, "dd": true, "div": true, "dl": true,
	"dt": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "head": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"title": true, "tr": true, "ul": true,
}

// Option configures an Extractor.
type Option func(*options)

type options struct {
	mainSelector string
	dateFields   []string
}

// WithMainSelector sets the selector of the main content node.
// Defaults to "main".
func WithMainSelector(selector string) Option {
	return func(o *options) {
		o.mainSelector = selector
	}
}

// WithDateFields sets the meta names (or properties) checked, in order, for
// the publication date.
func WithDateFields(fields ...string) Option {
	return func(o *options) {
		o.dateFields = fields
	}
}

type rule struct {
	category string
	matcher  cascadia.Selector // nil when the rule lists no tags
}

// Extractor pulls text out of a page rule by rule. A node claimed by one
// rule is invisible to every later rule and to the content pass.
type Extractor struct {
	rules      []rule
	main       cascadia.Selector
	titles     []cascadia.Selector
	dateFields []string
}

// NewExtractor compiles the rules into selectors.
// Tags are CSS selectors; plain tag names are the common case.
// Returns EINVALID if a selector does not compile.
func NewExtractor(rules []sitesearch.ExtractRule, opts ...Option) (*Extractor, error) {
	o := options{
		mainSelector: sitesearch.DefaultMainSelector,
		dateFields:   sitesearch.DefaultDateFields,
	}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Extractor{
		rules:      make([]rule, 0, len(rules)),
		dateFields: make([]string, 0, len(o.dateFields)),
	}

	for _, r := range rules {
		var tags []string
		for _, tag := range r.Tags {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		compiled := rule{category: r.Category}
		if len(tags) > 0 {
			m, err := cascadia.Compile(strings.Join(tags, ", "))
			if err != nil {
				return nil, sitesearch.Errorf(sitesearch.EINVALID, "key_tags %q: invalid tag selector: %v", r.Category, err)
			}
			compiled.matcher = m
		}
		e.rules = append(e.rules, compiled)
	}

	m, err := cascadia.Compile(o.mainSelector)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid main selector %q: %v", o.mainSelector, err)
	}
	e.main = m

	for _, s := range titleSelectors {
		e.titles = append(e.titles, cascadia.MustCompile(s))
	}

	for _, f := range o.dateFields {
		e.dateFields = append(e.dateFields, strings.ToLower(strings.TrimSpace(f)))
	}

	return e, nil
}

// Extract parses raw HTML and claims text for each rule in order, then
// collects the remaining text of the main content node, or of the whole
// page when no unclaimed main node exists.
// Within one rule, matches of all its tags are taken in document order,
// not tag by tag in the order the tags are listed.
func (e *Extractor) Extract(rawHTML string) (*sitesearch.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "failed to parse HTML: %v", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "empty document")
	}
	root := doc.Nodes[0]

	ext := &sitesearch.Extraction{
		Categories: make(map[string]string, len(e.rules)),
	}

	// Title and date are read before anything is claimed.
	ext.Title = e.title(root)
	ext.RawDate = e.rawDate(doc)
	ext.Date = parseDate(ext.RawDate)

	claimed := make(map[*html.Node]bool)
	for _, r := range e.rules {
		var terms []string
		if r.matcher != nil {
			for _, n := range doc.FindMatcher(r.matcher).Nodes {
				if isClaimed(n, claimed) {
					continue
				}
				for _, term := range strings.Fields(nodeText(n, claimed)) {
					terms = append(terms, sitesearch.CleanTerm(term))
				}
				claimed[n] = true
			}
		}
		ext.Categories[r.category] = strings.Join(terms, " ")
	}

	ext.Content = sitesearch.NormalizeSpace(nodeText(e.contentRoot(root, claimed), claimed))

	return ext, nil
}

// contentRoot returns the first unclaimed main node, falling back to root.
func (e *Extractor) contentRoot(root *html.Node, claimed map[*html.Node]bool) *html.Node {
	for _, n := range e.main.MatchAll(root) {
		if !isClaimed(n, claimed) {
			return n
		}
	}
	return root
}

func (e *Extractor) title(root *html.Node) string {
	for _, m := range e.titles {
		n := m.MatchFirst(root)
		if n == nil {
			continue
		}
		if title := sitesearch.NormalizeSpace(nodeText(n, nil)); title != "" {
			return title
		}
	}
	return ""
}

// rawDate returns the content of the first meta tag matching the date
// fields, honoring field order.
func (e *Extractor) rawDate(doc *goquery.Document) string {
	if len(e.dateFields) == 0 {
		return ""
	}
	found := make(map[string]string)
	doc.Find("meta[content]").Each(func(_ int, sel *goquery.Selection) {
		content, _ := sel.Attr("content")
		for _, attr := range []string{"name", "property", "itemprop"} {
			key, ok := sel.Attr(attr)
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			if _, seen := found[key]; !seen {
				found[key] = strings.TrimSpace(content)
			}
		}
	})
	for _, f := range e.dateFields {
		if v := found[f]; v != "" {
			return v
		}
	}
	return ""
}

// parseDate parses leniently and returns nil when raw is empty or
// unparseable.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// isClaimed reports whether n or any of its ancestors was claimed.
func isClaimed(n *html.Node, claimed map[*html.Node]bool) bool {
	for p := n; p != nil; p = p.Parent {
		if claimed[p] {
			return true
		}
	}
	return false
}

// nodeText concatenates the text beneath n, skipping claimed subtrees and
// invisible elements. Block elements are padded with spaces so words in
// adjacent blocks stay apart.
func nodeText(n *html.Node, claimed map[*html.Node]bool) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if claimed[c] {
				continue
			}
			if c.Type == html.ElementNode && invisibleTags[c.Data] {
				continue
			}
			block := c.Type == html.ElementNode && blockTags[c.Data]
			if block {
				b.WriteByte(' ')
			}
			walk(c)
			if block {
				b.WriteByte(' ')
			}
		}
	}
	walk(n)
	return b.String()
}

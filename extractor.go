package sitesearch

import (
	"strings"
	"time"
)

// ExtractRule names a category and the tags whose text it claims.
type ExtractRule struct {
	Category string
	Tags     []string
}

// Extraction holds the text pulled out of one page.
type Extraction struct {
	// Categories maps every configured category to its space-joined terms.
	// Categories whose tags matched nothing map to "".
	Categories map[string]string

	// Content is the whitespace-normalized text not claimed by any category.
	Content string

	// Title is the page title read before any text was claimed.
	Title string

	// Date is the parsed publication date, nil if absent or unparseable.
	Date *time.Time

	// RawDate is the unparsed date value as declared by the page.
	RawDate string
}

// Extractor pulls categorized text out of a page.
type Extractor interface {
	// Extract parses raw HTML and claims text for each rule in order.
	// Returns EINVALID if the page cannot be parsed.
	Extract(html string) (*Extraction, error)
}

// EmptyExtraction returns the extraction used when a page cannot be parsed:
// every category present and empty, no content.
func EmptyExtraction(rules []ExtractRule) *Extraction {
	categories := make(map[string]string, len(rules))
	for _, rule := range rules {
		categories[rule.Category] = ""
	}
	return &Extraction{Categories: categories}
}

// CleanTerm is applied to every extracted term. It currently returns the
// term unchanged.
func CleanTerm(term string) string {
	return term
}

// NormalizeSpace collapses every run of whitespace to a single space and
// trims both ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

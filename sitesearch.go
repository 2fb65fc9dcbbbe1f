// Package sitesearch builds a search corpus for a static website.
// It walks generated HTML pages, extracts text into named categories by tag
// precedence, scores every page with an explicit path boost and a time-decay
// boost, and emits a JSON document list for a client-side search index.
//
// This package contains domain types, interfaces and the pure scoring and
// assembly logic following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, doublestar/, fs/).
package sitesearch

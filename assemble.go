package sitesearch

// Assemble builds the record of one page from its extraction, its boost and
// the configured file terms.
func Assemble(page PageContext, ext *Extraction, boost int, fileTerms *FileTermMatcher) *Record {
	if ext == nil {
		ext = &Extraction{}
	}
	categories := ext.Categories
	if categories == nil {
		categories = map[string]string{}
	}
	return &Record{
		Document: &Document{
			Path:       page.Path,
			URL:        page.URL,
			Date:       ext.Date,
			Categories: categories,
			Content:    ext.Content,
			FileTerms:  fileTerms.Match(page.URL),
		},
		Boost: boost,
	}
}

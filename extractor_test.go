package sitesearch_test

import (
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/stretchr/testify/assert"
)

func TestEmptyExtraction(t *testing.T) {
	t.Parallel()

	ext := sitesearch.EmptyExtraction([]sitesearch.ExtractRule{
		{Category: "titles", Tags: []string{"title"}},
		{Category: "headings", Tags: []string{"h1"}},
	})

	assert.Equal(t, map[string]string{"titles": "", "headings": ""}, ext.Categories)
	assert.Empty(t, ext.Content)
	assert.Nil(t, ext.Date)
}

func TestCleanTerm_IsIdentity(t *testing.T) {
	t.Parallel()

	for _, term := range []string{"Hello", "world!", "C++", "naïve", "--flag"} {
		assert.Equal(t, term, sitesearch.CleanTerm(term))
	}
}

func TestNormalizeSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello world", sitesearch.NormalizeSpace("\n  Hello \t\n world  "))
	assert.Empty(t, sitesearch.NormalizeSpace(" \n\t "))
}

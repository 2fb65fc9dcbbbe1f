package goquery_test

import (
	"testing"
	"time"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T, rules []sitesearch.ExtractRule, opts ...goquery.Option) *goquery.Extractor {
	t.Helper()
	e, err := goquery.NewExtractor(rules, opts...)
	require.NoError(t, err)
	return e
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("claims title and keeps main content", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, []sitesearch.ExtractRule{{Category: "titles", Tags: []string{"title"}}})

		ext, err := e.Extract(`<title>Home</title><main>Hello world</main>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"titles": "Home"}, ext.Categories)
		assert.Equal(t, "Hello world", ext.Content)
	})

	t.Run("earlier rule wins a node matched by two rules", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<h1>Getting Started</h1>
<p>Install the <strong>tool</strong> first.</p>
</main></body></html>`

		e := newExtractor(t, []sitesearch.ExtractRule{
			{Category: "headings", Tags: []string{"h1", "strong"}},
			{Category: "emphasis", Tags: []string{"strong", "h1"}},
		})

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Getting Started tool", ext.Categories["headings"])
		assert.Equal(t, "", ext.Categories["emphasis"])
		assert.Equal(t, "Install the first.", ext.Content)
	})

	t.Run("claimed descendants are hidden from later rules", func(t *testing.T) {
		t.Parallel()

		html := `<main><p>alpha <em>beta</em> gamma</p><p>delta</p></main>`

		e := newExtractor(t, []sitesearch.ExtractRule{
			{Category: "emphasis", Tags: []string{"em"}},
			{Category: "paragraphs", Tags: []string{"p"}},
		})

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "beta", ext.Categories["emphasis"])
		assert.Equal(t, "alpha gamma delta", ext.Categories["paragraphs"])
		assert.Empty(t, ext.Content)
	})

	t.Run("nested matches of one rule count once", func(t *testing.T) {
		t.Parallel()

		html := `<body><div class="note">outer <div class="note">inner</div></div></body>`

		e := newExtractor(t, []sitesearch.ExtractRule{
			{Category: "notes", Tags: []string{"div.note"}},
		})

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "outer inner", ext.Categories["notes"])
	})

	t.Run("terms within a rule follow document order", func(t *testing.T) {
		t.Parallel()

		html := `<body><h2>Second</h2><h1>First</h1><h2>Third</h2></body>`

		e := newExtractor(t, []sitesearch.ExtractRule{
			{Category: "headings", Tags: []string{"h1", "h2"}},
		})

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Second First Third", ext.Categories["headings"])
	})

	t.Run("adjacent blocks keep words apart", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil)

		ext, err := e.Extract(`<main><p>a</p><p>b</p><div>c</div>d<br>e</main>`)

		require.NoError(t, err)
		assert.Equal(t, "a b c d e", ext.Content)
	})

	t.Run("inline elements do not add spaces", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil)

		ext, err := e.Extract(`<main><p>un<em>break</em>able</p></main>`)

		require.NoError(t, err)
		assert.Equal(t, "unbreakable", ext.Content)
	})

	t.Run("rule without matches yields an empty category", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, []sitesearch.ExtractRule{
			{Category: "tables", Tags: []string{"table"}},
			{Category: "none", Tags: nil},
		})

		ext, err := e.Extract(`<main>text</main>`)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"tables": "", "none": ""}, ext.Categories)
	})

	t.Run("falls back to whole page text without main", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Page</title><style>body{}</style></head>
<body><nav>Menu</nav><p>Body   text</p><script>var x = 1;</script></body></html>`

		e := newExtractor(t, []sitesearch.ExtractRule{{Category: "titles", Tags: []string{"title"}}})

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Page", ext.Categories["titles"])
		assert.Equal(t, "Menu Body text", ext.Content)
	})

	t.Run("falls back to whole page when main was claimed", func(t *testing.T) {
		t.Parallel()

		html := `<body><main>claimed</main><footer>left over</footer></body>`

		e := newExtractor(t, []sitesearch.ExtractRule{{Category: "body", Tags: []string{"main"}}})

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "claimed", ext.Categories["body"])
		assert.Equal(t, "left over", ext.Content)
	})

	t.Run("uses configured main selector", func(t *testing.T) {
		t.Parallel()

		html := `<body><header>Site</header><article>Post body</article></body>`

		e := newExtractor(t, nil, goquery.WithMainSelector("article"))

		ext, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Post body", ext.Content)
		assert.Empty(t, ext.Categories)
	})

	t.Run("empty page extracts nothing", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, []sitesearch.ExtractRule{{Category: "titles", Tags: []string{"title"}}})

		ext, err := e.Extract("")

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"titles": ""}, ext.Categories)
		assert.Empty(t, ext.Content)
		assert.Empty(t, ext.Title)
	})
}

func TestExtractor_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "title tag",
			html: `<head><title> Docs  Home </title></head><body><h1>Heading</h1></body>`,
			want: "Docs Home",
		},
		{
			name: "first heading without title",
			html: `<body><h2>Sub</h2><h1>Main heading</h1></body>`,
			want: "Main heading",
		},
		{
			name: "lower heading when higher ones are missing",
			html: `<body><h4>Four</h4><h3>Three</h3></body>`,
			want: "Three",
		},
		{
			name: "empty title falls through",
			html: `<head><title></title></head><body><h1>Fallback</h1></body>`,
			want: "Fallback",
		},
		{
			name: "no candidates",
			html: `<body><p>text</p></body>`,
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// The title is read before the title rule claims it.
			e := newExtractor(t, []sitesearch.ExtractRule{{Category: "titles", Tags: []string{"title", "h1"}}})

			ext, err := e.Extract(tt.html)

			require.NoError(t, err)
			assert.Equal(t, tt.want, ext.Title)
		})
	}
}

func TestExtractor_Date(t *testing.T) {
	t.Parallel()

	t.Run("parses date meta", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil)

		ext, err := e.Extract(`<head><meta name="date" content="2024-03-05"></head>`)

		require.NoError(t, err)
		require.NotNil(t, ext.Date)
		assert.True(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC).Equal(*ext.Date))
		assert.Equal(t, "2024-03-05", ext.RawDate)
	})

	t.Run("parses open graph published time", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil)

		ext, err := e.Extract(`<head><meta property="article:published_time" content="2023-11-20T08:30:00Z"></head>`)

		require.NoError(t, err)
		require.NotNil(t, ext.Date)
		assert.Equal(t, 2023, ext.Date.Year())
		assert.Equal(t, time.November, ext.Date.Month())
	})

	t.Run("honors field order", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil, goquery.WithDateFields("published", "date"))

		ext, err := e.Extract(`<head>
<meta name="date" content="2020-01-01">
<meta name="Published" content="2022-06-15">
</head>`)

		require.NoError(t, err)
		require.NotNil(t, ext.Date)
		assert.Equal(t, 2022, ext.Date.Year())
	})

	t.Run("unparseable date is treated as absent", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil)

		ext, err := e.Extract(`<head><meta name="date" content="unknown"></head>`)

		require.NoError(t, err)
		assert.Nil(t, ext.Date)
		assert.Equal(t, "unknown", ext.RawDate)
	})

	t.Run("missing date", func(t *testing.T) {
		t.Parallel()

		e := newExtractor(t, nil)

		ext, err := e.Extract(`<head><meta name="description" content="About"></head>`)

		require.NoError(t, err)
		assert.Nil(t, ext.Date)
		assert.Empty(t, ext.RawDate)
	})
}

func TestNewExtractor_InvalidSelectors(t *testing.T) {
	t.Parallel()

	t.Run("tag selector", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor([]sitesearch.ExtractRule{{Category: "bad", Tags: []string{"h1[", "h2"}}})

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
		assert.Contains(t, sitesearch.ErrorMessage(err), `"bad"`)
	})

	t.Run("main selector", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor(nil, goquery.WithMainSelector("div["))

		require.Error(t, err)
		assert.Equal(t, sitesearch.EINVALID, sitesearch.ErrorCode(err))
	})
}

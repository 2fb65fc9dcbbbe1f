package sitesearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Defaults applied to optional configuration fields.
const (
	DefaultIncludePath  = "**/*.html"
	DefaultMainSelector = "main"
	DefaultOutput       = "./documents.json"
)

// DefaultDateFields are the meta names checked for a publication date.
var DefaultDateFields = []string{"date", "article:published_time"}

// Config is the build configuration read at startup.
type Config struct {
	SiteRoot       string        `json:"site_root"`
	IncludePaths   []string      `json:"include_paths"`
	ExcludePaths   []string      `json:"exclude_paths"`
	KeyTags        Groups        `json:"key_tags"`
	PathBoosts     Groups        `json:"path_boosts"`
	CharBoosts     Groups        `json:"char_boosts"`
	FileTerms      FileTermRules `json:"file_terms"`
	MainSelector   string        `json:"main_selector"`
	DateFields     []string      `json:"date_fields"`
	Output         string        `json:"output"`
	MetadataOutput string        `json:"meta_data_output"`
}

// ApplyDefaults fills optional fields that were left unset.
func (c *Config) ApplyDefaults() {
	if len(c.IncludePaths) == 0 {
		c.IncludePaths = []string{DefaultIncludePath}
	}
	if c.MainSelector == "" {
		c.MainSelector = DefaultMainSelector
	}
	if len(c.DateFields) == 0 {
		c.DateFields = append([]string(nil), DefaultDateFields...)
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// Validate returns every problem found in the configuration at once.
// The returned error reports EINVALID through ErrorCode.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.SiteRoot == "" {
		result = multierror.Append(result, Errorf(EINVALID, "site_root required"))
	}
	if c.KeyTags == nil {
		result = multierror.Append(result, Errorf(EINVALID, "key_tags required"))
	}

	seen := make(map[string]bool, len(c.KeyTags))
	for i, g := range c.KeyTags {
		if g.Name == "" {
			result = multierror.Append(result, Errorf(EINVALID, "key_tags[%d]: category name required", i))
			continue
		}
		if seen[g.Name] {
			result = multierror.Append(result, Errorf(EINVALID, "key_tags[%d]: duplicate category %q", i, g.Name))
		}
		seen[g.Name] = true
	}

	for _, g := range c.PathBoosts {
		if _, err := ParseBoostValue(g.Name); err != nil {
			result = multierror.Append(result, err)
		}
	}

	for i, g := range c.CharBoosts {
		if g.Name == "" {
			result = multierror.Append(result, Errorf(EINVALID, "char_boosts[%d]: name required", i))
		}
	}

	if _, err := NewFileTermMatcher(c.FileTerms); err != nil {
		result = multierror.Append(result, err)
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = formatConfigErrors
	return Errorf(EINVALID, "%s", result.Error())
}

// ExtractRules returns the key tags as extraction rules in declared order.
func (c *Config) ExtractRules() []ExtractRule {
	rules := make([]ExtractRule, 0, len(c.KeyTags))
	for _, g := range c.KeyTags {
		rules = append(rules, ExtractRule{Category: g.Name, Tags: g.Values})
	}
	return rules
}

func formatConfigErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, ErrorMessage(err))
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// ParseBoostValue parses a declared boost key. Keys must be numbers within
// MinBoost..MaxBoost.
func ParseBoostValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, Errorf(EINVALID, "path_boosts: boost %q is not a number", s)
	}
	if v < MinBoost || v > MaxBoost {
		return 0, Errorf(EINVALID, "path_boosts: boost %q out of range %d..%d", s, MinBoost, MaxBoost)
	}
	return v, nil
}

// Group is one named list from the configuration, e.g. a category and its
// tags or a boost value and its glob patterns.
type Group struct {
	Name   string
	Values []string
}

// Groups is an ordered list of named lists. It decodes from a JSON array of
// objects, or from a single object, keeping key order as written.
type Groups []Group

// UnmarshalJSON implements json.Unmarshaler.
func (g *Groups) UnmarshalJSON(data []byte) error {
	groups := Groups{}
	err := eachObjectEntry(data, func(key string, value json.RawMessage) error {
		var values []string
		if err := json.Unmarshal(value, &values); err != nil {
			return fmt.Errorf("%q: expected a list of strings", key)
		}
		groups = append(groups, Group{Name: key, Values: values})
		return nil
	})
	if err != nil {
		return err
	}
	*g = groups
	return nil
}

// FileTermRule attaches Terms to every document whose URL matches Pattern.
type FileTermRule struct {
	Pattern string
	Terms   string
}

// FileTermRules decodes from a JSON object or an array of objects mapping
// URL patterns to terms, keeping key order as written.
type FileTermRules []FileTermRule

// UnmarshalJSON implements json.Unmarshaler.
func (r *FileTermRules) UnmarshalJSON(data []byte) error {
	rules := FileTermRules{}
	err := eachObjectEntry(data, func(key string, value json.RawMessage) error {
		var terms string
		if err := json.Unmarshal(value, &terms); err != nil {
			return fmt.Errorf("%q: expected a string", key)
		}
		rules = append(rules, FileTermRule{Pattern: key, Terms: terms})
		return nil
	})
	if err != nil {
		return err
	}
	*r = rules
	return nil
}

// eachObjectEntry calls fn for every key of a JSON object, or of every
// object in a JSON array, in document order. null yields no entries.
func eachObjectEntry(data []byte, fn func(key string, value json.RawMessage) error) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var objects []json.RawMessage
	if len(data) > 0 && data[0] == '{' {
		objects = []json.RawMessage{data}
	} else if err := json.Unmarshal(data, &objects); err != nil {
		return fmt.Errorf("expected an object or a list of objects")
	}

	for _, obj := range objects {
		dec := json.NewDecoder(bytes.NewReader(obj))
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return fmt.Errorf("expected an object, got %s", obj)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := tok.(string)
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return err
			}
			if err := fn(key, value); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	return nil
}

// FileTermMatcher assigns file terms to URLs using compiled patterns.
type FileTermMatcher struct {
	rules []compiledFileTerm
}

type compiledFileTerm struct {
	re    *regexp.Regexp
	terms string
}

// NewFileTermMatcher compiles every rule pattern.
// Returns EINVALID naming the first pattern that does not compile.
func NewFileTermMatcher(rules FileTermRules) (*FileTermMatcher, error) {
	m := &FileTermMatcher{rules: make([]compiledFileTerm, 0, len(rules))}
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "file_terms: invalid pattern %q: %v", rule.Pattern, err)
		}
		m.rules = append(m.rules, compiledFileTerm{re: re, terms: rule.Terms})
	}
	return m, nil
}

// Match returns the terms of the last rule whose pattern occurs in url, or
// nil if none does. Every rule is tested.
func (m *FileTermMatcher) Match(url string) *string {
	if m == nil {
		return nil
	}
	var matched *string
	for i := range m.rules {
		if m.rules[i].re.MatchString(url) {
			matched = &m.rules[i].terms
		}
	}
	if matched == nil {
		return nil
	}
	terms := *matched
	return &terms
}

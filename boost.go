package sitesearch

import (
	"math"
	"time"
)

// Boost scale.
const (
	MinBoost     = 1
	MaxBoost     = 10
	DefaultBoost = 5
)

// TimeBoost is the char boost set that enrolls documents in time decay.
const TimeBoost = "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// PathSet is a set of page paths.
type PathSet map[string]struct{}

// Contains reports whether path is in the set.
func (s PathSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// PathBoost is one explicit boost declaration with its expanded paths.
type PathBoost struct {
	Value float64
	Paths PathSet
}

// BoostTables are the boost declarations expanded once at startup.
// They are not modified after BuildBoostTables returns.
type BoostTables struct {
	PathBoosts []PathBoost
	CharBoosts map[string]PathSet
}

// BuildBoostTables expands every declared glob through r.
// Char boost groups sharing a name are merged.
func BuildBoostTables(r PathResolver, pathBoosts, charBoosts Groups) (*BoostTables, error) {
	tables := &BoostTables{
		PathBoosts: make([]PathBoost, 0, len(pathBoosts)),
		CharBoosts: make(map[string]PathSet, len(charBoosts)),
	}

	for _, g := range pathBoosts {
		value, err := ParseBoostValue(g.Name)
		if err != nil {
			return nil, err
		}
		paths, err := expandPatterns(r, g.Values)
		if err != nil {
			return nil, err
		}
		tables.PathBoosts = append(tables.PathBoosts, PathBoost{Value: value, Paths: paths})
	}

	for _, g := range charBoosts {
		paths, err := expandPatterns(r, g.Values)
		if err != nil {
			return nil, err
		}
		set, ok := tables.CharBoosts[g.Name]
		if !ok {
			tables.CharBoosts[g.Name] = paths
			continue
		}
		for p := range paths {
			set[p] = struct{}{}
		}
	}

	return tables, nil
}

func expandPatterns(r PathResolver, patterns []string) (PathSet, error) {
	set := make(PathSet)
	for _, pattern := range patterns {
		paths, err := r.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			set[p] = struct{}{}
		}
	}
	return set, nil
}

// Enrolled reports whether path belongs to the named char boost set.
func (t *BoostTables) Enrolled(name, path string) bool {
	if t == nil {
		return false
	}
	return t.CharBoosts[name].Contains(path)
}

// ExplicitBoost returns the mean of every declared boost whose paths
// contain path, rounded half to even. Undeclared paths get DefaultBoost.
func ExplicitBoost(path string, tables *BoostTables) int {
	if tables == nil {
		return DefaultBoost
	}
	var sum float64
	var n int
	for _, pb := range tables.PathBoosts {
		if pb.Paths.Contains(path) {
			sum += pb.Value
			n++
		}
	}
	if n == 0 {
		return DefaultBoost
	}
	return clampBoost(math.RoundToEven(sum / float64(n)))
}

// TimeDecayBoost scores a publication date against now with a logistic
// curve over the year difference. Same-year pages have age 1; each year
// older lowers the age by one. A nil date scores DefaultBoost.
func TimeDecayBoost(date *time.Time, now time.Time) int {
	if date == nil {
		return DefaultBoost
	}
	age := float64(date.Year() - now.Year() + 1)
	return clampBoost(math.Ceil(MaxBoost * Sigmoid(age)))
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// MergeBoosts returns the mean of boosts rounded half to even, or
// DefaultBoost when none are given.
func MergeBoosts(boosts ...int) int {
	if len(boosts) == 0 {
		return DefaultBoost
	}
	var sum int
	for _, b := range boosts {
		sum += b
	}
	return clampBoost(math.RoundToEven(float64(sum) / float64(len(boosts))))
}

func clampBoost(v float64) int {
	switch {
	case v < MinBoost:
		return MinBoost
	case v > MaxBoost:
		return MaxBoost
	}
	return int(v)
}

// Scorer computes the final boost of a page.
type Scorer struct {
	Tables *BoostTables

	// Clock supplies the current year for time decay. Defaults to the
	// system clock when nil.
	Clock Clock
}

// Score merges the explicit boost of page with its time decay boost when
// the page is enrolled in the time char boost set.
func (s *Scorer) Score(page PageContext, date *time.Time) int {
	boosts := []int{ExplicitBoost(page.Path, s.Tables)}
	if s.Tables.Enrolled(TimeBoost, page.Path) {
		boosts = append(boosts, TimeDecayBoost(date, s.now()))
	}
	return MergeBoosts(boosts...)
}

func (s *Scorer) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

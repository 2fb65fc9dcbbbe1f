package mock

import "github.com/fwojciec/sitesearch"

var _ sitesearch.PathResolver = (*PathResolver)(nil)

// PathResolver is a mock implementation of sitesearch.PathResolver.
type PathResolver struct {
	GlobFn  func(pattern string) ([]string, error)
	PathsFn func(include, exclude []string) ([]string, error)
	URLFn   func(path string) (string, error)
}

// Glob calls GlobFn.
func (r *PathResolver) Glob(pattern string) ([]string, error) {
	return r.GlobFn(pattern)
}

// Paths calls PathsFn.
func (r *PathResolver) Paths(include, exclude []string) ([]string, error) {
	return r.PathsFn(include, exclude)
}

// URL calls URLFn.
func (r *PathResolver) URL(path string) (string, error) {
	return r.URLFn(path)
}

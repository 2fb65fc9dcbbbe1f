// Package doublestar resolves site pages from glob patterns with "**"
// support.
package doublestar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/sitesearch"
)

// Ensure Resolver implements sitesearch.PathResolver at compile time.
var _ sitesearch.PathResolver = (*Resolver)(nil)

// Resolver expands patterns relative to a site root.
// Returned paths are the site root joined with the matched relative path.
type Resolver struct {
	root string
	fsys fs.FS
}

// NewResolver creates a Resolver rooted at root.
func NewResolver(root string) *Resolver {
	root = filepath.Clean(root)
	return &Resolver{root: root, fsys: os.DirFS(root)}
}

// Root returns the cleaned site root.
func (r *Resolver) Root() string {
	return r.root
}

// Glob expands one pattern relative to the site root, matching files only.
// Patterns may start with "/" or "./"; both are taken relative to the root.
func (r *Resolver) Glob(pattern string) ([]string, error) {
	p := cleanPattern(pattern)
	if !doublestar.ValidatePattern(p) {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.Glob(r.fsys, p, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(r.root, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

// Paths returns the files matched by include minus the files matched by
// exclude, sorted. Returns ENOTFOUND if the site root does not exist.
func (r *Resolver) Paths(include, exclude []string) ([]string, error) {
	info, err := os.Stat(r.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, sitesearch.Errorf(sitesearch.ENOTFOUND, "site root %q not found", r.root)
	} else if err != nil {
		return nil, fmt.Errorf("stat site root: %w", err)
	}
	if !info.IsDir() {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "site root %q is not a directory", r.root)
	}

	valid := make(map[string]struct{})
	for _, pattern := range include {
		matches, err := r.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			valid[m] = struct{}{}
		}
	}

	for _, pattern := range exclude {
		matches, err := r.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			delete(valid, m)
		}
	}

	paths := make([]string, 0, len(valid))
	for p := range valid {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// URL returns the root-relative URL of path.
// Example: site root "public", path "public/blog/post.html" → "/blog/post.html"
func (r *Resolver) URL(path string) (string, error) {
	rel, err := filepath.Rel(r.root, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", sitesearch.Errorf(sitesearch.EINVALID, "path %q is outside site root %q", path, r.root)
	}
	if rel == "." {
		return "/", nil
	}
	return "/" + filepath.ToSlash(rel), nil
}

func cleanPattern(pattern string) string {
	p := filepath.ToSlash(strings.TrimSpace(pattern))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return strings.TrimLeft(p, "/")
}

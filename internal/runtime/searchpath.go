package runtime

import (
	"os"
	"path/filepath"
)

// SearchPaths is the ordered list of directories find_file probes to
// resolve a relative source path. Absolute paths bypass the list entirely.
type SearchPaths struct {
	roots []string
}

// NewSearchPaths creates a SearchPaths over the given ordered roots.
func NewSearchPaths(roots ...string) *SearchPaths {
	return &SearchPaths{roots: append([]string(nil), roots...)}
}

// Add appends a root to the end of the search-path list.
func (s *SearchPaths) Add(root string) {
	s.roots = append(s.roots, root)
}

// Find resolves p to a file path: if p is absolute, it is returned as-is
// without consulting the search-path list at all; otherwise the first
// root/p that exists (via os.Stat) is returned. The result is not made
// absolute here; Runtime.FindFile does that.
func (s *SearchPaths) Find(p string) (string, bool) {
	if filepath.IsAbs(p) {
		return p, true
	}
	for _, root := range s.roots {
		candidate := filepath.Join(root, p)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

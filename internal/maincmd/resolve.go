package maincmd

import (
	"os"
	"path/filepath"
	"strings"
)

// searchPaths builds the ordered list of directories sorthc looks in to
// resolve an `include`d path: the compiled source file's own directory
// first, then each colon-separated entry of SORTH_LIB, in order.
func searchPaths(sourcePath string) []string {
	paths := []string{filepath.Dir(sourcePath)}
	if lib := os.Getenv("SORTH_LIB"); lib != "" {
		for _, p := range strings.Split(lib, ":") {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

package extract

import (
	"path/filepath"
	"sort"

	"github.com/karrick/godirwalk"
)

// LocalChildren returns the immediate child file and directory paths
// reachable one level beneath dir, sorted for deterministic frontier
// ordering. The crawler treats each as a candidate out-link at depth d+1,
// same as a remote out-link.
func LocalChildren(dir string) ([]string, error) {
	entries, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, err
	}
	children := make([]string, 0, len(entries))
	for _, e := range entries {
		children = append(children, filepath.Join(dir, e.Name()))
	}
	sort.Strings(children)
	return children, nil
}

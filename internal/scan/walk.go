package scan

import (
	"io/fs"
	"path/filepath"
)

// subdirectories returns every descendant directory of root in lexical
// walk order, root itself excluded.
//
// Unreadable entries below the root are skipped rather than failing the
// walk; a directory that cannot be listed still appears itself (the
// server may know it even when the local process cannot read it).
// Symlinks are not followed, so cyclic layouts cannot loop the walk.
func subdirectories(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}

// dedupeIDs drops duplicate identifiers, keeping the first occurrence
// of each and preserving order.
func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

package model

import (
	"os"
	"path/filepath"
	"strings"
)

// Library represents the local directory tree that mirrors an external
// library on the Immich server.
//
// The root is the addressing origin: the server identifies folders by
// their path relative to it. A Library is constructed once per session
// from configuration and passed explicitly to everything that needs to
// translate paths; there is no process-wide root.
//
// Example:
//
//	lib := model.NewLibrary("/mnt/photos")
//	lib.RelativePath("/mnt/photos/2024/summer") // "2024/summer"
//	lib.RelativePath("/elsewhere/2024")         // "/elsewhere/2024" (unchanged)
type Library struct {
	// Root is the absolute path of the library root, cleaned of
	// trailing separators. An empty root disables prefix stripping.
	Root string
}

// NewLibrary returns a Library rooted at root. The root is cleaned but
// not resolved; symlinks and case are preserved as given.
func NewLibrary(root string) *Library {
	if root != "" {
		root = filepath.Clean(root)
	}
	return &Library{Root: root}
}

// RelativePath converts an absolute local path into the server's
// relative addressing scheme.
//
// When absPath starts with the library root, the result is absPath with
// the root prefix and one leading separator stripped, in forward-slash
// form (the server addresses folders with forward slashes on every
// platform). When absPath does not start with the root, or the root is
// empty, absPath is returned unchanged and the server decides what to
// make of it.
//
// Pure string operation, no I/O.
func (l *Library) RelativePath(absPath string) string {
	if l.Root == "" || !strings.HasPrefix(absPath, l.Root) {
		return absPath
	}
	rel := strings.TrimPrefix(absPath, l.Root)
	rel = strings.TrimPrefix(rel, string(os.PathSeparator))
	return filepath.ToSlash(rel)
}

// Contains reports whether absPath starts with the library root.
func (l *Library) Contains(absPath string) bool {
	return l.Root != "" && strings.HasPrefix(absPath, l.Root)
}

// Resolve interprets a user-supplied target path. Absolute paths are
// cleaned and returned as is; relative paths are joined to the library
// root, so users can address folders the same way the server does.
func (l *Library) Resolve(target string) string {
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Join(l.Root, target)
}

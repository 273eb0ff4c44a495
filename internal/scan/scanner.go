package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/immich-tools/immich-album-manager/internal/model"
)

// FolderLister is the single server capability the scanner depends on:
// answering which assets belong to a library-relative folder path.
// *immich.Client satisfies it.
type FolderLister interface {
	FolderAssets(ctx context.Context, relPath string) ([]model.Asset, error)
}

// FolderEvent reports progress for one queried folder.
type FolderEvent struct {
	// RelPath is the library-relative path sent to the server.
	RelPath string

	// Assets is the number of assets the server reported for the folder.
	Assets int

	// Queried is the number of folders processed so far, including this one.
	Queried int

	// Total is the number of folders the scan will query overall.
	Total int

	// Err is non-nil when the folder query failed. The folder then
	// contributes no assets and the scan continues.
	Err error
}

// Folder is one row of a scan result: a queried folder and how many
// assets the server reported for it.
type Folder struct {
	// RelPath is the library-relative path of the folder.
	RelPath string

	// Assets is the server-reported asset count, before deduplication.
	Assets int
}

// Result holds the outcome of a Collect run.
type Result struct {
	// Target is the absolute directory that was scanned. When Collect
	// was pointed at a file, this is its containing directory.
	Target string

	// AssetIDs are the unique asset identifiers, in discovery order:
	// the target folder's assets first, then each subfolder's in walk
	// order, with later duplicates dropped.
	AssetIDs []string

	// Folders is the per-folder breakdown in query order. Folders whose
	// query failed are not listed.
	Folders []Folder
}

// Scanner aggregates server-known assets for a local directory tree.
//
// A scan queries the target directory itself first, then every
// descendant directory in lexical walk order, asking the server for
// each folder's assets and deduplicating the combined identifiers by
// first occurrence.
//
// Example usage:
//
//	lib := model.NewLibrary("/mnt/photos")
//	scanner := scan.NewScanner(lib, client, func(ev scan.FolderEvent) {
//	    fmt.Printf("%d/%d %s: %d assets\n", ev.Queried, ev.Total, ev.RelPath, ev.Assets)
//	})
//
//	result, err := scanner.Collect(ctx, "/mnt/photos/2024")
//	fmt.Printf("%d unique assets\n", len(result.AssetIDs))
type Scanner struct {
	library *model.Library
	lister  FolderLister
	onEvent func(FolderEvent)
}

// NewScanner creates a Scanner for the given library.
//
// Parameters:
//   - library: the root used to translate local paths for the server
//   - lister: the server connection (typically *immich.Client)
//   - onEvent: optional per-folder progress callback; pass nil to disable
func NewScanner(library *model.Library, lister FolderLister, onEvent func(FolderEvent)) *Scanner {
	return &Scanner{
		library: library,
		lister:  lister,
		onEvent: onEvent,
	}
}

// Collect gathers the unique asset IDs for target and its subtree.
//
// The target directory is queried first, then every descendant
// directory in walk order. Each folder's query failure is reported
// through the event callback and contributes an empty result; the scan
// itself only fails when the target cannot be inspected or the context
// is cancelled.
//
// A file target falls back to its containing directory, which is then
// queried without descending further.
func (s *Scanner) Collect(ctx context.Context, target string) (*Result, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("inspect target: %w", err)
	}

	var dirs []string
	if info.IsDir() {
		subdirs, err := subdirectories(target)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
		dirs = append([]string{target}, subdirs...)
	} else {
		// A file target falls back to its containing directory, which
		// is queried alone.
		target = filepath.Dir(target)
		dirs = []string{target}
	}

	result := &Result{Target: target}
	var all []string
	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		relPath := s.library.RelativePath(dir)
		assets, err := s.lister.FolderAssets(ctx, relPath)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// This folder contributes nothing; the scan carries on.
			s.emit(FolderEvent{RelPath: relPath, Queried: i + 1, Total: len(dirs), Err: err})
			continue
		}

		all = append(all, model.IDs(assets)...)
		result.Folders = append(result.Folders, Folder{RelPath: relPath, Assets: len(assets)})
		s.emit(FolderEvent{RelPath: relPath, Assets: len(assets), Queried: i + 1, Total: len(dirs)})
	}

	result.AssetIDs = dedupeIDs(all)
	return result, nil
}

// emit invokes the event callback when one is configured.
func (s *Scanner) emit(ev FolderEvent) {
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}

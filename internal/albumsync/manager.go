package albumsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/immich-tools/immich-album-manager/internal/config"
	"github.com/immich-tools/immich-album-manager/internal/model"
	"github.com/immich-tools/immich-album-manager/internal/scan"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update from the manager.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ErrNoAssets is returned when an album mutation is requested with an
// empty asset list. Scans that find nothing end here rather than in a
// pointless server call.
var ErrNoAssets = errors.New("no assets to add")

// Client is the server surface the manager drives.
// *immich.Client implements it.
type Client interface {
	scan.FolderLister
	ListAlbums(ctx context.Context) ([]*model.Album, error)
	CreateAlbum(ctx context.Context, name, description string, assetIDs []string) (*model.Album, error)
	AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]model.AddOutcome, error)
}

// Manager coordinates scans and album mutations.
//
// Failures of a whole operation are returned as errors and reported
// once by the caller; conditions the manager degrades past (a folder
// that would not answer, a creation skipped because the album exists,
// a suppressed dry-run mutation) are reported through the progress
// callback instead.
type Manager struct {
	settings *config.Settings
	client   Client
	library  *model.Library
	scanner  *scan.Scanner

	foldersQueried int32
	foldersTotal   int32
	assetsFound    int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager from resolved settings.
//
// Parameters:
//   - settings: resolved configuration (server, library root, dry-run)
//   - client: the server connection (typically *immich.Client)
//   - onProgress: optional progress callback; pass nil to disable
func NewManager(settings *config.Settings, client Client, onProgress func(ProgressEvent)) *Manager {
	m := &Manager{
		settings:   settings,
		client:     client,
		library:    model.NewLibrary(settings.LibraryRoot),
		onProgress: onProgress,
	}
	m.scanner = scan.NewScanner(m.library, client, m.folderEvent)
	return m
}

// Library returns the library the manager translates paths against.
func (m *Manager) Library() *model.Library {
	return m.library
}

// CollectAssets scans target and returns the deduplicated asset IDs
// with the per-folder breakdown.
//
// target may be absolute or relative to the library root. Folder query
// failures degrade to empty results and are reported as warnings; only
// an uninspectable target or cancellation fail the scan.
func (m *Manager) CollectAssets(ctx context.Context, target string) (*scan.Result, error) {
	atomic.StoreInt32(&m.foldersQueried, 0)
	atomic.StoreInt32(&m.foldersTotal, 0)
	atomic.StoreInt32(&m.assetsFound, 0)

	resolved := m.library.Resolve(target)
	if m.library.Root != "" && !m.library.Contains(resolved) {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("%s is outside the library root, passing paths through unchanged", resolved),
			Level:   LevelWarning,
		})
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %s", resolved), Level: LevelInfo})

	result, err := m.scanner.Collect(ctx, resolved)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d unique assets across %d folders", len(result.AssetIDs), len(result.Folders)),
		Level:   LevelInfo,
	})
	return result, nil
}

// ScanProgress returns the live scan counters: folders queried so far,
// total folders to query, and raw (pre-dedupe) assets reported.
func (m *Manager) ScanProgress() (queried, total, assets int32) {
	return atomic.LoadInt32(&m.foldersQueried),
		atomic.LoadInt32(&m.foldersTotal),
		atomic.LoadInt32(&m.assetsFound)
}

// Albums returns all albums visible on the server.
func (m *Manager) Albums(ctx context.Context) ([]*model.Album, error) {
	return m.client.ListAlbums(ctx)
}

// FindAlbum looks up an album by exact name.
// Returns nil (and no error) when no album has that name.
func (m *Manager) FindAlbum(ctx context.Context, name string) (*model.Album, error) {
	albums, err := m.client.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}
	for _, album := range albums {
		if album.Name == name {
			return album, nil
		}
	}
	return nil, nil
}

// CreateAlbum creates an album containing the given assets.
//
// When an album of that name already exists, creation is skipped (not
// an error), a warning is reported, and the existing album is returned.
// In dry-run mode no call is made, the would-be action is reported, and
// the returned album is nil.
func (m *Manager) CreateAlbum(ctx context.Context, name, description string, assetIDs []string) (*model.Album, error) {
	if len(assetIDs) == 0 {
		return nil, ErrNoAssets
	}

	existing, err := m.FindAlbum(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Album %q already exists, skipping creation", name),
			Level:   LevelWarning,
		})
		return existing, nil
	}

	if m.settings.DryRun {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("[dry-run] Would create album %q with %d assets", name, len(assetIDs)),
			Level:   LevelInfo,
		})
		return nil, nil
	}

	album, err := m.client.CreateAlbum(ctx, name, description, assetIDs)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Created album %q with %d assets", name, len(assetIDs)),
		Level:   LevelSuccess,
	})
	return album, nil
}

// AppendAssets adds assets to an existing album and reports the
// per-asset outcome summary. Assets already in the album are counted
// as duplicates, not failures. In dry-run mode no call is made.
func (m *Manager) AppendAssets(ctx context.Context, album *model.Album, assetIDs []string) error {
	if len(assetIDs) == 0 {
		return ErrNoAssets
	}

	if m.settings.DryRun {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("[dry-run] Would add %d assets to album %q", len(assetIDs), album.Name),
			Level:   LevelInfo,
		})
		return nil
	}

	outcomes, err := m.client.AddAssets(ctx, album.ID, assetIDs)
	if err != nil {
		return err
	}

	added, duplicates, failed := summarize(outcomes)
	switch {
	case failed > 0:
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Added %d assets to %q (%d duplicates skipped, %d failed)", added, album.Name, duplicates, failed),
			Level:   LevelWarning,
		})
	case duplicates > 0:
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Added %d assets to %q (%d already present)", added, album.Name, duplicates),
			Level:   LevelSuccess,
		})
	default:
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Added %d assets to %q", added, album.Name),
			Level:   LevelSuccess,
		})
	}
	return nil
}

// folderEvent adapts scanner progress into manager events and counters.
func (m *Manager) folderEvent(ev scan.FolderEvent) {
	atomic.StoreInt32(&m.foldersQueried, int32(ev.Queried))
	atomic.StoreInt32(&m.foldersTotal, int32(ev.Total))

	folder := ev.RelPath
	if folder == "" {
		folder = "."
	}

	if ev.Err != nil {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Failed to get assets for %s: %v", folder, ev.Err),
			Level:   LevelWarning,
		})
		return
	}

	atomic.AddInt32(&m.assetsFound, int32(ev.Assets))
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d assets in: %s", ev.Assets, folder),
		Level:   LevelVerbose,
	})
}

// summarize counts outcomes by kind. Duplicates are skips; anything
// else unsuccessful counts as failed.
func summarize(outcomes []model.AddOutcome) (added, duplicates, failed int) {
	for _, o := range outcomes {
		switch {
		case o.Added:
			added++
		case o.Reason == "duplicate":
			duplicates++
		default:
			failed++
		}
	}
	return added, duplicates, failed
}

// progress invokes the progress callback when one is configured.
func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

package albumsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/immich-tools/immich-album-manager/internal/config"
	"github.com/immich-tools/immich-album-manager/internal/model"
)

// fakeClient implements Client in memory and records mutating calls.
type fakeClient struct {
	folders   map[string][]model.Asset
	folderErr map[string]error
	albums    []*model.Album
	listErr   error
	outcomes  []model.AddOutcome
	addErr    error

	createCalls int
	addCalls    int
	gotName     string
	gotDesc     string
	gotIDs      []string
	gotAlbumID  string
}

func (f *fakeClient) FolderAssets(_ context.Context, relPath string) ([]model.Asset, error) {
	if err := f.folderErr[relPath]; err != nil {
		return nil, err
	}
	return f.folders[relPath], nil
}

func (f *fakeClient) ListAlbums(_ context.Context) ([]*model.Album, error) {
	return f.albums, f.listErr
}

func (f *fakeClient) CreateAlbum(_ context.Context, name, description string, assetIDs []string) (*model.Album, error) {
	f.createCalls++
	f.gotName = name
	f.gotDesc = description
	f.gotIDs = assetIDs
	return &model.Album{ID: "new-album", Name: name, AssetCount: len(assetIDs)}, nil
}

func (f *fakeClient) AddAssets(_ context.Context, albumID string, assetIDs []string) ([]model.AddOutcome, error) {
	f.addCalls++
	f.gotAlbumID = albumID
	f.gotIDs = assetIDs
	return f.outcomes, f.addErr
}

func newTestManager(t *testing.T, settings *config.Settings, client *fakeClient) (*Manager, *[]ProgressEvent) {
	t.Helper()
	var events []ProgressEvent
	m := NewManager(settings, client, func(ev ProgressEvent) {
		events = append(events, ev)
	})
	return m, &events
}

func hasMessage(events []ProgressEvent, substr string) bool {
	for _, ev := range events {
		if strings.Contains(ev.Message, substr) {
			return true
		}
	}
	return false
}

func hasLevel(events []ProgressEvent, level ProgressLevel) bool {
	for _, ev := range events {
		if ev.Level == level {
			return true
		}
	}
	return false
}

func TestManager_CollectAssets(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	client := &fakeClient{folders: map[string][]model.Asset{
		"":  {{ID: "1"}, {ID: "2"}},
		"a": {{ID: "2"}, {ID: "3"}},
		"b": {{ID: "3"}},
	}}
	m, _ := newTestManager(t, &config.Settings{LibraryRoot: root}, client)

	result, err := m.CollectAssets(context.Background(), root)
	if err != nil {
		t.Fatalf("CollectAssets() error = %v", err)
	}

	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(result.AssetIDs, want) {
		t.Errorf("AssetIDs = %v, want %v", result.AssetIDs, want)
	}

	queried, total, assets := m.ScanProgress()
	if queried != 3 || total != 3 {
		t.Errorf("ScanProgress() queried/total = %d/%d, want 3/3", queried, total)
	}
	if assets != 5 {
		t.Errorf("ScanProgress() assets = %d, want 5", assets)
	}
}

func TestManager_CollectAssets_FolderFailureDegrades(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "bad"), 0o755); err != nil {
		t.Fatal(err)
	}

	client := &fakeClient{
		folders:   map[string][]model.Asset{"": {{ID: "1"}}},
		folderErr: map[string]error{"bad": errors.New("boom")},
	}
	m, events := newTestManager(t, &config.Settings{LibraryRoot: root}, client)

	result, err := m.CollectAssets(context.Background(), root)
	if err != nil {
		t.Fatalf("CollectAssets() error = %v", err)
	}
	if want := []string{"1"}; !reflect.DeepEqual(result.AssetIDs, want) {
		t.Errorf("AssetIDs = %v, want %v", result.AssetIDs, want)
	}
	if !hasMessage(*events, "Failed to get assets for bad") {
		t.Errorf("expected a warning about the failing folder, got %v", *events)
	}
	if !hasLevel(*events, LevelWarning) {
		t.Error("expected a warning-level event")
	}
}

func TestManager_CollectAssets_WarnsOutsideLibraryRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	client := &fakeClient{folders: map[string][]model.Asset{
		outside: {{ID: "x-1"}},
	}}
	m, events := newTestManager(t, &config.Settings{LibraryRoot: root}, client)

	result, err := m.CollectAssets(context.Background(), outside)
	if err != nil {
		t.Fatalf("CollectAssets() error = %v", err)
	}

	if !hasMessage(*events, "outside the library root") {
		t.Errorf("expected an outside-root warning, got %v", *events)
	}
	// The scan still runs; the path goes to the server unchanged.
	if want := []string{"x-1"}; !reflect.DeepEqual(result.AssetIDs, want) {
		t.Errorf("AssetIDs = %v, want %v", result.AssetIDs, want)
	}

	// A target under the root must not warn.
	m2, events2 := newTestManager(t, &config.Settings{LibraryRoot: root}, &fakeClient{})
	if _, err := m2.CollectAssets(context.Background(), root); err != nil {
		t.Fatalf("CollectAssets() error = %v", err)
	}
	if hasMessage(*events2, "outside the library root") {
		t.Error("a target under the root should not warn")
	}

	// With no root configured, passthrough is the normal mode.
	m3, events3 := newTestManager(t, &config.Settings{}, &fakeClient{})
	if _, err := m3.CollectAssets(context.Background(), outside); err != nil {
		t.Fatalf("CollectAssets() error = %v", err)
	}
	if hasMessage(*events3, "outside the library root") {
		t.Error("an empty root should not warn")
	}
}

func TestManager_CreateAlbum(t *testing.T) {
	client := &fakeClient{}
	m, events := newTestManager(t, &config.Settings{}, client)

	album, err := m.CreateAlbum(context.Background(), "Iceland", "spring trip", []string{"1", "2"})
	if err != nil {
		t.Fatalf("CreateAlbum() error = %v", err)
	}
	if album == nil || album.Name != "Iceland" {
		t.Fatalf("CreateAlbum() = %+v, want album named Iceland", album)
	}
	if client.createCalls != 1 {
		t.Errorf("create calls = %d, want 1", client.createCalls)
	}
	if client.gotDesc != "spring trip" {
		t.Errorf("description = %q, want %q", client.gotDesc, "spring trip")
	}
	if want := []string{"1", "2"}; !reflect.DeepEqual(client.gotIDs, want) {
		t.Errorf("asset IDs = %v, want %v", client.gotIDs, want)
	}
	if !hasLevel(*events, LevelSuccess) {
		t.Error("expected a success event")
	}
}

func TestManager_CreateAlbum_SkipsExisting(t *testing.T) {
	existing := &model.Album{ID: "alb-1", Name: "Iceland"}
	client := &fakeClient{albums: []*model.Album{existing}}
	m, events := newTestManager(t, &config.Settings{}, client)

	album, err := m.CreateAlbum(context.Background(), "Iceland", "", []string{"1"})
	if err != nil {
		t.Fatalf("CreateAlbum() error = %v", err)
	}
	if album != existing {
		t.Errorf("CreateAlbum() = %+v, want the existing album", album)
	}
	if client.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", client.createCalls)
	}
	if !hasMessage(*events, "already exists") {
		t.Error("expected an already-exists warning")
	}
}

func TestManager_CreateAlbum_DryRun(t *testing.T) {
	client := &fakeClient{}
	m, events := newTestManager(t, &config.Settings{DryRun: true}, client)

	album, err := m.CreateAlbum(context.Background(), "Iceland", "", []string{"1", "2"})
	if err != nil {
		t.Fatalf("CreateAlbum() error = %v", err)
	}
	if album != nil {
		t.Errorf("CreateAlbum() = %+v, want nil in dry-run", album)
	}
	if client.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", client.createCalls)
	}
	if !hasMessage(*events, "[dry-run]") {
		t.Error("expected a dry-run notice")
	}
}

func TestManager_CreateAlbum_NoAssets(t *testing.T) {
	client := &fakeClient{}
	m, _ := newTestManager(t, &config.Settings{}, client)

	_, err := m.CreateAlbum(context.Background(), "Iceland", "", nil)
	if !errors.Is(err, ErrNoAssets) {
		t.Errorf("CreateAlbum() error = %v, want ErrNoAssets", err)
	}
	if client.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", client.createCalls)
	}
}

func TestManager_AppendAssets_Summary(t *testing.T) {
	tests := []struct {
		name      string
		outcomes  []model.AddOutcome
		wantLevel ProgressLevel
		wantMsg   string
	}{
		{
			name: "all added",
			outcomes: []model.AddOutcome{
				{AssetID: "1", Added: true},
				{AssetID: "2", Added: true},
			},
			wantLevel: LevelSuccess,
			wantMsg:   `Added 2 assets to "Iceland"`,
		},
		{
			name: "duplicates skipped",
			outcomes: []model.AddOutcome{
				{AssetID: "1", Added: true},
				{AssetID: "2", Reason: "duplicate"},
			},
			wantLevel: LevelSuccess,
			wantMsg:   "(1 already present)",
		},
		{
			name: "failures reported",
			outcomes: []model.AddOutcome{
				{AssetID: "1", Added: true},
				{AssetID: "2", Reason: "duplicate"},
				{AssetID: "3", Reason: "not found"},
			},
			wantLevel: LevelWarning,
			wantMsg:   "1 duplicates skipped, 1 failed",
		},
	}

	album := &model.Album{ID: "alb-1", Name: "Iceland"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{outcomes: tt.outcomes}
			m, events := newTestManager(t, &config.Settings{}, client)

			if err := m.AppendAssets(context.Background(), album, []string{"1", "2", "3"}); err != nil {
				t.Fatalf("AppendAssets() error = %v", err)
			}
			if client.gotAlbumID != "alb-1" {
				t.Errorf("album ID = %q, want %q", client.gotAlbumID, "alb-1")
			}

			last := (*events)[len(*events)-1]
			if last.Level != tt.wantLevel {
				t.Errorf("event level = %d, want %d", last.Level, tt.wantLevel)
			}
			if !strings.Contains(last.Message, tt.wantMsg) {
				t.Errorf("event = %q, want it to contain %q", last.Message, tt.wantMsg)
			}
		})
	}
}

func TestManager_AppendAssets_DryRun(t *testing.T) {
	client := &fakeClient{}
	m, events := newTestManager(t, &config.Settings{DryRun: true}, client)

	album := &model.Album{ID: "alb-1", Name: "Iceland"}
	if err := m.AppendAssets(context.Background(), album, []string{"1"}); err != nil {
		t.Fatalf("AppendAssets() error = %v", err)
	}
	if client.addCalls != 0 {
		t.Errorf("add calls = %d, want 0", client.addCalls)
	}
	if !hasMessage(*events, "[dry-run]") {
		t.Error("expected a dry-run notice")
	}
}

func TestManager_AppendAssets_NoAssets(t *testing.T) {
	client := &fakeClient{}
	m, _ := newTestManager(t, &config.Settings{}, client)

	album := &model.Album{ID: "alb-1", Name: "Iceland"}
	err := m.AppendAssets(context.Background(), album, nil)
	if !errors.Is(err, ErrNoAssets) {
		t.Errorf("AppendAssets() error = %v, want ErrNoAssets", err)
	}
	if client.addCalls != 0 {
		t.Errorf("add calls = %d, want 0", client.addCalls)
	}
}

func TestManager_FindAlbum(t *testing.T) {
	client := &fakeClient{albums: []*model.Album{
		{ID: "a1", Name: "Iceland"},
		{ID: "a2", Name: "Norway"},
	}}
	m, _ := newTestManager(t, &config.Settings{}, client)

	album, err := m.FindAlbum(context.Background(), "Norway")
	if err != nil {
		t.Fatalf("FindAlbum() error = %v", err)
	}
	if album == nil || album.ID != "a2" {
		t.Errorf("FindAlbum(Norway) = %+v, want album a2", album)
	}

	missing, err := m.FindAlbum(context.Background(), "Sweden")
	if err != nil {
		t.Fatalf("FindAlbum() error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindAlbum(Sweden) = %+v, want nil", missing)
	}
}

package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/immich-tools/immich-album-manager/internal/model"
)

// fakeLister serves canned per-folder asset lists and records the
// relative paths it was asked about, in order.
type fakeLister struct {
	assets map[string][]model.Asset
	fail   map[string]bool
	calls  []string
}

func (f *fakeLister) FolderAssets(_ context.Context, relPath string) ([]model.Asset, error) {
	f.calls = append(f.calls, relPath)
	if f.fail[relPath] {
		return nil, errors.New("query failed")
	}
	return f.assets[relPath], nil
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func TestScanner_Collect_DedupeFirstSeen(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "a"))
	mustMkdir(t, filepath.Join(root, "b"))

	lister := &fakeLister{assets: map[string][]model.Asset{
		"a": {{ID: "1"}, {ID: "2"}},
		"b": {{ID: "2"}, {ID: "3"}},
	}}

	scanner := NewScanner(model.NewLibrary(root), lister, nil)
	result, err := scanner.Collect(context.Background(), root)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	want := []string{"1", "2", "3"}
	if !reflect.DeepEqual(result.AssetIDs, want) {
		t.Errorf("AssetIDs = %v, want %v", result.AssetIDs, want)
	}
}

func TestScanner_Collect_QueriesRootFirstThenWalkOrder(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "b", "inner"))
	mustMkdir(t, filepath.Join(root, "a"))
	mustMkdir(t, filepath.Join(root, "c"))

	lister := &fakeLister{assets: map[string][]model.Asset{
		"":        {{ID: "root-1"}},
		"a":       {{ID: "a-1"}},
		"b/inner": {{ID: "i-1"}},
	}}

	scanner := NewScanner(model.NewLibrary(root), lister, nil)
	result, err := scanner.Collect(context.Background(), root)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	wantCalls := []string{"", "a", "b", "b/inner", "c"}
	if !reflect.DeepEqual(lister.calls, wantCalls) {
		t.Errorf("queried folders = %v, want %v", lister.calls, wantCalls)
	}

	wantIDs := []string{"root-1", "a-1", "i-1"}
	if !reflect.DeepEqual(result.AssetIDs, wantIDs) {
		t.Errorf("AssetIDs = %v, want %v", result.AssetIDs, wantIDs)
	}
}

func TestScanner_Collect_FileTargetQueriesParentOnly(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "photos")
	mustMkdir(t, filepath.Join(dir, "nested"))
	file := filepath.Join(dir, "img.jpg")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	lister := &fakeLister{assets: map[string][]model.Asset{
		"photos": {{ID: "p-1"}},
	}}

	scanner := NewScanner(model.NewLibrary(root), lister, nil)
	result, err := scanner.Collect(context.Background(), file)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	// Only the containing directory, no descent into nested/.
	wantCalls := []string{"photos"}
	if !reflect.DeepEqual(lister.calls, wantCalls) {
		t.Errorf("queried folders = %v, want %v", lister.calls, wantCalls)
	}
	if result.Target != dir {
		t.Errorf("Target = %q, want %q", result.Target, dir)
	}
	if !reflect.DeepEqual(result.AssetIDs, []string{"p-1"}) {
		t.Errorf("AssetIDs = %v, want [p-1]", result.AssetIDs)
	}
}

func TestScanner_Collect_FolderErrorDegradesToEmpty(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "good"))
	mustMkdir(t, filepath.Join(root, "bad"))

	lister := &fakeLister{
		assets: map[string][]model.Asset{
			"good": {{ID: "g-1"}},
		},
		fail: map[string]bool{"bad": true},
	}

	var failed []string
	scanner := NewScanner(model.NewLibrary(root), lister, func(ev FolderEvent) {
		if ev.Err != nil {
			failed = append(failed, ev.RelPath)
		}
	})

	result, err := scanner.Collect(context.Background(), root)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if !reflect.DeepEqual(result.AssetIDs, []string{"g-1"}) {
		t.Errorf("AssetIDs = %v, want [g-1]", result.AssetIDs)
	}
	if !reflect.DeepEqual(failed, []string{"bad"}) {
		t.Errorf("failed folders = %v, want [bad]", failed)
	}
	for _, f := range result.Folders {
		if f.RelPath == "bad" {
			t.Error("failed folder should not appear in Folders")
		}
	}
}

func TestScanner_Collect_EventCounts(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "a"))
	mustMkdir(t, filepath.Join(root, "b"))

	lister := &fakeLister{assets: map[string][]model.Asset{
		"a": {{ID: "1"}, {ID: "2"}},
	}}

	var events []FolderEvent
	scanner := NewScanner(model.NewLibrary(root), lister, func(ev FolderEvent) {
		events = append(events, ev)
	})

	if _, err := scanner.Collect(context.Background(), root); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Queried != i+1 {
			t.Errorf("events[%d].Queried = %d, want %d", i, ev.Queried, i+1)
		}
		if ev.Total != 3 {
			t.Errorf("events[%d].Total = %d, want 3", i, ev.Total)
		}
	}
	if events[1].Assets != 2 {
		t.Errorf("events[1].Assets = %d, want 2", events[1].Assets)
	}
}

func TestScanner_Collect_MissingTarget(t *testing.T) {
	root := t.TempDir()
	scanner := NewScanner(model.NewLibrary(root), &fakeLister{}, nil)

	_, err := scanner.Collect(context.Background(), filepath.Join(root, "does-not-exist"))
	if err == nil {
		t.Fatal("expected an error for a missing target")
	}
}

func TestScanner_Collect_CancelledContext(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewScanner(model.NewLibrary(root), &fakeLister{}, nil)
	if _, err := scanner.Collect(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("Collect() error = %v, want context.Canceled", err)
	}
}

func TestDedupeIDs(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"no duplicates", []string{"1", "2", "3"}, []string{"1", "2", "3"}},
		{"adjacent duplicates", []string{"1", "1", "2"}, []string{"1", "2"}},
		{"first occurrence wins", []string{"1", "2", "2", "3", "1"}, []string{"1", "2", "3"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedupeIDs(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dedupeIDs(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

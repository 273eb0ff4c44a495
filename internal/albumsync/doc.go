// Package albumsync provides the orchestration logic for building
// Immich albums out of local folder trees.
//
// # Manager
//
// The Manager coordinates the entire flow:
//
//  1. Translate the local target into library-relative form
//  2. Query the server for the assets of each folder
//  3. Deduplicate asset IDs in first-seen order
//  4. Create the album, or append to an existing one
//
// # Basic Usage
//
//	manager := albumsync.NewManager(settings, client, func(event albumsync.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result, err := manager.CollectAssets(ctx, "/photos/2024/iceland")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_, err = manager.CreateAlbum(ctx, "Iceland 2024", "", result.AssetIDs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// Scan counters (folders queried, folders total, assets seen) are also
// readable at any time through ScanProgress, which UIs poll to render
// progress bars.
//
// # Dry-Run
//
// With settings.DryRun set, CreateAlbum and AppendAssets suppress the
// server mutation and report the action they would have taken. Reads
// (folder queries, album listing) still go to the server so the report
// reflects real data.
package albumsync

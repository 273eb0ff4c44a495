package commands

import (
	"fmt"
	"io"

	"github.com/immich-tools/immich-album-manager/internal/albumsync"
)

// newEventPrinter renders manager progress events as console lines,
// one per event, with a level prefix. Verbose events are dropped
// unless verbose is set.
func newEventPrinter(out io.Writer, verbose bool) func(albumsync.ProgressEvent) {
	return func(event albumsync.ProgressEvent) {
		if event.Level == albumsync.LevelVerbose && !verbose {
			return
		}

		prefix := "   "
		switch event.Level {
		case albumsync.LevelError:
			prefix = "❌ "
		case albumsync.LevelWarning:
			prefix = "⚠️  "
		case albumsync.LevelSuccess:
			prefix = "✅ "
		case albumsync.LevelInfo:
			prefix = "ℹ️  "
		}

		fmt.Fprintln(out, prefix+event.Message)
	}
}

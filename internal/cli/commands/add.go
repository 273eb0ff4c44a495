package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/immich-tools/immich-album-manager/internal/model"
)

// NewAddCommand creates the add command.
func NewAddCommand() *cobra.Command {
	var (
		albumName string
		albumID   string
	)

	cmd := &cobra.Command{
		Use:   "add [path]",
		Short: "Add a folder tree's assets to an album",
		Long: `Collect the assets of a local directory tree and append them to an
existing album. Assets already in the album are skipped by the server
and reported as duplicates.

With neither --album nor --album-id, a numbered menu of the server's
albums is shown; entry 0 creates a new album instead.`,
		Example: `  # Append to an album by name
  immich-albums add /photos/2024/iceland --album "Iceland 2024"

  # Append to an album by ID
  immich-albums add /photos/2024/iceland --album-id 9e8cc8d9-65bb-4a35-9a8c-3a3b0712b2f4

  # Pick the album from a menu
  immich-albums add /photos/2024/iceland`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args, albumName, albumID)
		},
	}

	cmd.Flags().StringVarP(&albumName, "album", "a", "", "Album name")
	cmd.Flags().StringVar(&albumID, "album-id", "", "Album ID (UUID)")
	cmd.MarkFlagsMutuallyExclusive("album", "album-id")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string, albumName, albumID string) error {
	// Validate before any network call.
	if albumID != "" {
		if _, err := uuid.Parse(albumID); err != nil {
			return fmt.Errorf("invalid album ID %q: %w", albumID, err)
		}
	}

	sess, cleanup, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	// Resolve the album before scanning so a bad name fails fast.
	var (
		album     *model.Album
		createNew bool
	)
	switch {
	case albumID != "":
		albums, err := sess.manager.Albums(ctx)
		if err != nil {
			return err
		}
		for _, a := range albums {
			if a.ID == albumID {
				album = a
				break
			}
		}
		if album == nil {
			return fmt.Errorf("no album with ID %s", albumID)
		}

	case albumName != "":
		album, err = sess.manager.FindAlbum(ctx, albumName)
		if err != nil {
			return err
		}
		if album == nil {
			return fmt.Errorf("no album named %q", albumName)
		}

	default:
		albums, err := sess.manager.Albums(ctx)
		if err != nil {
			return err
		}
		p, err := sess.prompt()
		if err != nil {
			return err
		}
		album, createNew, err = p.SelectAlbum(albums)
		if err != nil {
			return err
		}
		if createNew {
			albumName, err = p.Required("New album name")
			if err != nil {
				return err
			}
		}
	}

	target, err := sess.resolveTarget(args)
	if err != nil {
		return err
	}

	result, err := sess.manager.CollectAssets(ctx, target)
	if err != nil {
		return err
	}

	if createNew {
		if _, err := sess.manager.CreateAlbum(ctx, albumName, "", result.AssetIDs); err != nil {
			return fmt.Errorf("create album %q: %w", albumName, err)
		}
		return nil
	}
	if err := sess.manager.AppendAssets(ctx, album, result.AssetIDs); err != nil {
		return fmt.Errorf("add assets to %q: %w", album.Name, err)
	}
	return nil
}

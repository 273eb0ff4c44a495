package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	var (
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create [path]",
		Short: "Create an album from a local folder tree",
		Long: `Collect the assets of a local directory and all of its subdirectories
and create a new album containing them.

The path may be absolute or relative to the library root. When an album
of the chosen name already exists, creation is skipped and reported; it
is not an error.`,
		Example: `  # Create an album from a folder, named after the folder
  immich-albums create /photos/2024/iceland

  # Explicit name and description
  immich-albums create /photos/2024/iceland --name "Iceland 2024" --description "Spring trip"

  # See what would happen without creating anything
  immich-albums create /photos/2024/iceland --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, name, description)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Album name (default: the target folder's name)")
	cmd.Flags().StringVar(&description, "description", "", "Album description")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, name, description string) error {
	sess, cleanup, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	target, err := sess.resolveTarget(args)
	if err != nil {
		return err
	}

	if name == "" {
		base := filepath.Base(sess.manager.Library().Resolve(target))
		p, err := sess.prompt()
		if err != nil {
			return err
		}
		name, err = p.Line("Album name", base)
		if err != nil {
			return err
		}
	}

	result, err := sess.manager.CollectAssets(cmd.Context(), target)
	if err != nil {
		return err
	}
	if len(result.AssetIDs) == 0 {
		return fmt.Errorf("no assets found under %s", result.Target)
	}

	if _, err := sess.manager.CreateAlbum(cmd.Context(), name, description, result.AssetIDs); err != nil {
		return fmt.Errorf("create album %q: %w", name, err)
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path]",
		Short: "Show which assets a folder tree would contribute",
		Long: `Collect the assets of a local directory tree and print the per-folder
breakdown without touching any album. scan never modifies the server.`,
		Example: `  # Inspect a folder before creating an album from it
  immich-albums scan /photos/2024/iceland`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args)
		},
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	sess, cleanup, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	defer cleanup()

	target, err := sess.resolveTarget(args)
	if err != nil {
		return err
	}

	result, err := sess.manager.CollectAssets(cmd.Context(), target)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Folder", "Assets"})
	for _, folder := range result.Folders {
		rel := folder.RelPath
		if rel == "" {
			rel = "."
		}
		t.AppendRow(table.Row{rel, folder.Assets})
	}
	t.Render()
	fmt.Fprintf(w, "%d unique assets\n", len(result.AssetIDs))
	return nil
}

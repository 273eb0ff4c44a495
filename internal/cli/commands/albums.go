package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewAlbumsCommand creates the albums command.
func NewAlbumsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "List albums on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAlbums(cmd)
		},
	}
}

func runAlbums(cmd *cobra.Command) error {
	sess, cleanup, err := newSession(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	albums, err := sess.manager.Albums(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(albums) == 0 {
		fmt.Fprintln(w, "No albums.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "ID", "Assets", "Shared", "Created"})
	for _, album := range albums {
		shared := ""
		if album.Shared {
			shared = "yes"
		}
		created := ""
		if !album.CreatedAt.IsZero() {
			created = album.CreatedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{album.Name, album.ID, album.AssetCount, shared, created})
	}
	t.Render()
	fmt.Fprintf(w, "(%d albums)\n", len(albums))
	return nil
}

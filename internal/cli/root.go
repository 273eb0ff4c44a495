// Package cli provides the command-line interface for immich-albums.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/immich-tools/immich-album-manager/internal/cli/commands"
	"github.com/immich-tools/immich-album-manager/internal/config"
	"github.com/immich-tools/immich-album-manager/internal/prompt"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "immich-albums",
		Short: "Build Immich albums from local folders",
		Long: `immich-albums maps local directory trees onto albums in an Immich
media server. It converts local paths into the server's library-relative
addressing, collects the assets of every folder in the tree, and creates
or extends albums with them.

Values missing from flags, environment, and the config file are prompted
for interactively.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			settings, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(commands.WithSettings(cmd.Context(), settings))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/immich-albums/config.yaml)")
	rootCmd.PersistentFlags().String("server", "", "Immich server address (e.g. http://127.0.0.1:2283)")
	rootCmd.PersistentFlags().String("api-key", "", "Immich API key")
	rootCmd.PersistentFlags().String("library-root", "", "Local path the server addresses folders against")
	rootCmd.PersistentFlags().BoolP("dry-run", "n", false, "Print what would happen without creating or changing albums")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("save-config", false, "Save the resolved settings to the config file")

	// Add subcommands
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewAddCommand())
	rootCmd.AddCommand(commands.NewAlbumsCommand())
	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))

	return rootCmd
}

// Execute runs the root command with interrupt handling and returns
// the process exit code.
func Execute() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
		cancel()
	}()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, prompt.ErrCancelled):
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return 0
		case errors.Is(err, context.Canceled):
			return 130
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

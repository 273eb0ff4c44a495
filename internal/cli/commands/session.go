package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/immich-tools/immich-album-manager/internal/albumsync"
	"github.com/immich-tools/immich-album-manager/internal/config"
	"github.com/immich-tools/immich-album-manager/internal/immich"
	"github.com/immich-tools/immich-album-manager/internal/prompt"
)

// session bundles what a command needs to talk to the server: resolved
// settings, a verified client, and the manager wired to the console
// event printer.
type session struct {
	settings *config.Settings
	client   *immich.Client
	manager  *albumsync.Manager
	prompter *prompt.Prompter
	out      io.Writer
}

// newSession resolves missing connection values (prompting where
// needed), verifies the server answers, and builds the manager. The
// returned cleanup must be called when the command is done.
func newSession(cmd *cobra.Command, needLibrary bool) (*session, func(), error) {
	s := &session{
		settings: GetSettings(cmd.Context()),
		out:      cmd.OutOrStdout(),
	}
	cleanup := func() {
		if s.prompter != nil {
			_ = s.prompter.Close()
		}
	}

	if err := s.resolveConnection(needLibrary); err != nil {
		cleanup()
		return nil, nil, err
	}

	if save, _ := cmd.Flags().GetBool("save-config"); save {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultConfigPath()
		}
		// Run modifiers stay out of the saved file; it carries the
		// connection values only.
		saved := *s.settings
		saved.DryRun = false
		saved.Verbose = false
		if err := saved.Save(path); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(s.out, "Settings saved to %s\n", path)
	}

	s.client = immich.NewClient(s.settings.Server, s.settings.APIKey)
	if err := s.client.Ping(cmd.Context()); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("server %s is not answering: %w", s.client.BaseURL(), err)
	}
	s.printConnection()

	s.manager = albumsync.NewManager(s.settings, s.client, newEventPrinter(s.out, s.settings.Verbose))
	return s, cleanup, nil
}

// printConnection echoes the resolved connection back to the user. The
// API key is always masked; the full key never reaches the console.
func (s *session) printConnection() {
	fmt.Fprintf(s.out, "Server:       %s\n", s.client.BaseURL())
	fmt.Fprintf(s.out, "API key:      %s\n", s.settings.MaskedAPIKey())
	if s.settings.LibraryRoot != "" {
		fmt.Fprintf(s.out, "Library root: %s\n", s.settings.LibraryRoot)
	}
}

// prompt lazily opens the terminal prompter the first time a value has
// to be asked for, so fully non-interactive runs never touch the
// terminal.
func (s *session) prompt() (*prompt.Prompter, error) {
	if s.prompter == nil {
		p, err := prompt.New()
		if err != nil {
			return nil, err
		}
		s.prompter = p
	}
	return s.prompter, nil
}

// resolveConnection fills in the server, API key, and (when needed)
// library root, asking for whatever flags, environment, and config
// file did not provide.
func (s *session) resolveConnection(needLibrary bool) error {
	if s.settings.Server == "" {
		p, err := s.prompt()
		if err != nil {
			return err
		}
		server, err := p.Line("Immich server", config.DefaultServer)
		if err != nil {
			return err
		}
		s.settings.Server = server
	}

	if s.settings.APIKey == "" {
		p, err := s.prompt()
		if err != nil {
			return err
		}
		key, err := p.Secret("API key")
		if err != nil {
			return err
		}
		if key == "" {
			return errors.New("an API key is required")
		}
		s.settings.APIKey = key
	}

	if needLibrary && s.settings.LibraryRoot == "" {
		p, err := s.prompt()
		if err != nil {
			return err
		}
		root, err := p.Line("Library root (empty passes paths through unchanged)", "")
		if err != nil {
			return err
		}
		s.settings.LibraryRoot = root
	}

	return nil
}

// resolveTarget returns the path to scan. An argument is taken as
// given and fails later if wrong; a prompted answer is checked locally
// first, with the chance to correct a typo before anything is queried.
// The default answer is the library root itself.
func (s *session) resolveTarget(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	p, err := s.prompt()
	if err != nil {
		return "", err
	}

	for {
		target, err := p.Line("Directory or file to scan", s.settings.LibraryRoot)
		if err != nil {
			return "", err
		}
		if target == "" {
			fmt.Fprintln(s.out, "A path is required.")
			continue
		}

		resolved := s.manager.Library().Resolve(target)
		if _, err := os.Stat(resolved); err == nil {
			return target, nil
		}

		fmt.Fprintf(s.out, "Path does not exist: %s\n", resolved)
		again, err := p.Confirm("Try another path?", true)
		if err != nil {
			return "", err
		}
		if !again {
			return "", prompt.ErrCancelled
		}
	}
}

package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/immich-tools/immich-album-manager/internal/model"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl-C
// or Ctrl-D. Callers treat it as a clean abort, not a failure.
var ErrCancelled = errors.New("cancelled")

// Prompter asks interactive questions on the terminal.
type Prompter struct {
	rl *readline.Instance
}

// New creates a Prompter bound to the current terminal.
func New() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("initialize prompt: %w", err)
	}
	return &Prompter{rl: rl}, nil
}

// Close releases the terminal.
func (p *Prompter) Close() error {
	return p.rl.Close()
}

// Line asks for a single line of input. An empty answer returns def.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		p.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", label, def))
	} else {
		p.rl.SetPrompt(label + ": ")
	}
	line, err := p.rl.Readline()
	if err != nil {
		return "", mapErr(err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Required re-asks until the answer is non-empty.
func (p *Prompter) Required(label string) (string, error) {
	for {
		value, err := p.Line(label, "")
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
}

// Secret asks for a line without echoing it.
func (p *Prompter) Secret(label string) (string, error) {
	answer, err := p.rl.ReadPassword(label + ": ")
	if err != nil {
		return "", mapErr(err)
	}
	return strings.TrimSpace(string(answer)), nil
}

// Confirm asks a yes/no question. An empty answer returns def;
// anything unrecognized re-asks.
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		p.rl.SetPrompt(fmt.Sprintf("%s %s: ", label, hint))
		line, err := p.rl.Readline()
		if err != nil {
			return false, mapErr(err)
		}
		if value, ok := parseYesNo(line, def); ok {
			return value, nil
		}
		fmt.Fprintln(p.rl.Stdout(), "Please answer y or n.")
	}
}

// SelectAlbum shows a numbered album menu with entry 0 reserved for
// creating a new album. It returns the chosen album, or createNew set
// when entry 0 was picked. Invalid selections re-ask.
func (p *Prompter) SelectAlbum(albums []*model.Album) (album *model.Album, createNew bool, err error) {
	out := p.rl.Stdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available albums:")
	fmt.Fprintln(out, "  0. Create a new album")
	for i, a := range albums {
		fmt.Fprintf(out, "  %d. %s\n", i+1, a.Label())
	}

	for {
		p.rl.SetPrompt(fmt.Sprintf("Select an album [0-%d]: ", len(albums)))
		line, err := p.rl.Readline()
		if err != nil {
			return nil, false, mapErr(err)
		}
		choice, ok := parseSelection(line, len(albums))
		if !ok {
			fmt.Fprintf(out, "Enter a number between 0 and %d.\n", len(albums))
			continue
		}
		if choice == 0 {
			return nil, true, nil
		}
		return albums[choice-1], false, nil
	}
}

// parseSelection interprets a menu answer for n albums: 0 means create
// new, 1..n picks an album. ok reports whether the answer is in range.
func parseSelection(input string, n int) (choice int, ok bool) {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 0 || choice > n {
		return 0, false
	}
	return choice, true
}

// parseYesNo interprets a confirmation answer. ok reports whether the
// answer was recognized.
func parseYesNo(input string, def bool) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return def, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	default:
		return false, false
	}
}

// mapErr converts readline termination errors into ErrCancelled.
func mapErr(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrCancelled
	}
	return err
}

// Package tui provides a Bubble Tea terminal user interface for
// immich-album-manager: a guided wizard from server address to a
// created or extended album.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/immich-tools/immich-album-manager/internal/albumsync"
	"github.com/immich-tools/immich-album-manager/internal/config"
	"github.com/immich-tools/immich-album-manager/internal/immich"
	"github.com/immich-tools/immich-album-manager/internal/model"
	"github.com/immich-tools/immich-album-manager/internal/scan"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current wizard step.
type State int

const (
	StateServer State = iota
	StatePinging
	StateAPIKey
	StateLibraryRoot
	StateFetchingAlbums
	StateAlbumSelect
	StateAlbumName
	StateTarget
	StateScanning
	StateConfirm
	StateApplying
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   albumsync.ProgressLevel
}

// eventBuffer collects manager events across goroutines; the UI
// drains it on each progress tick.
type eventBuffer struct {
	mu     sync.Mutex
	events []albumsync.ProgressEvent
}

func (b *eventBuffer) add(ev albumsync.ProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func (b *eventBuffer) drain() []albumsync.ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	evs := b.events
	b.events = nil
	return evs
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	events    *eventBuffer
	err       error

	// Wizard context
	ctx    context.Context
	cancel context.CancelFunc

	client  *immich.Client
	manager *albumsync.Manager

	// Album choice
	albums    []*model.Album
	cursor    int
	createNew bool
	chosen    *model.Album
	albumName string

	// Scan outcome
	target  string
	result  *scan.Result
	applied *model.Album

	width  int
	height int
}

// NewModel creates a new TUI model starting at the server step.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:     StateServer,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		events:    &eventBuffer{},
		ctx:       ctx,
		cancel:    cancel,
	}
	m.setInputForServer()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// PingDoneMsg is sent when the server healthcheck finishes.
	PingDoneMsg struct {
		Err error
	}

	// AlbumsMsg carries the fetched album list.
	AlbumsMsg struct {
		Albums []*model.Album
		Err    error
	}

	// ScanDoneMsg is sent when asset collection finishes.
	ScanDoneMsg struct {
		Result *scan.Result
		Err    error
	}

	// ApplyDoneMsg is sent when the album mutation finishes.
	ApplyDoneMsg struct {
		Album *model.Album
		Err   error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StatePinging, StateFetchingAlbums, StateScanning, StateApplying:
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			default:
				return m, tea.Quit
			}

		case "enter":
			return m.handleEnter()

		case "up", "k":
			if m.state == StateAlbumSelect && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.state == StateAlbumSelect && m.cursor < len(m.albums) {
				m.cursor++
			}

		case "y":
			if m.state == StateConfirm {
				return m.handleEnter()
			}

		case "d":
			if m.state == StateConfirm {
				m.settings.DryRun = !m.settings.DryRun
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another run, keeping the connection when
				// it was already established.
				m.logs = nil
				m.err = nil
				m.result = nil
				m.applied = nil
				m.chosen = nil
				m.createNew = false
				m.albumName = ""
				m.cursor = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				if m.manager != nil {
					m.state = StateFetchingAlbums
					return m, tea.Batch(m.fetchAlbums(), m.spinner.Tick)
				}
				m.state = StateServer
				m.setInputForServer()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case PingDoneMsg:
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateAPIKey
			m.setInputForAPIKey()
			cmds = append(cmds, textinput.Blink)
		}

	case AlbumsMsg:
		switch {
		case m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.albums = msg.Albums
			m.cursor = 0
			m.state = StateAlbumSelect
		}

	case ScanDoneMsg:
		switch {
		case m.ctx.Err() != nil:
			// An esc during the scan already set the message; the
			// in-flight scan's context error must not replace it.
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		case len(msg.Result.AssetIDs) == 0:
			m.state = StateError
			m.err = fmt.Errorf("no assets found under %s", msg.Result.Target)
		default:
			m.result = msg.Result
			m.state = StateConfirm
		}

	case ApplyDoneMsg:
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.applied = msg.Album
			m.state = StateComplete
		}

	case TickMsg:
		for _, ev := range m.events.drain() {
			if ev.Level == albumsync.LevelVerbose && !m.settings.Verbose {
				continue
			}
			m.logs = append(m.logs, LogEntry{Message: ev.Message, Level: ev.Level})
		}
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

		if m.manager != nil && (m.state == StateScanning || m.state == StateApplying) {
			queried, total, _ := m.manager.ScanProgress()
			var percent float64
			if total > 0 {
				percent = float64(queried) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.isInputState() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleEnter advances the wizard out of the current step.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateServer:
		server := strings.TrimSpace(m.textInput.Value())
		if server == "" {
			server = config.DefaultServer
		}
		m.settings.Server = server
		m.state = StatePinging
		return m, tea.Batch(m.pingServer(), m.spinner.Tick)

	case StateAPIKey:
		key := strings.TrimSpace(m.textInput.Value())
		if key == "" {
			return m, nil
		}
		m.settings.APIKey = key
		m.client = immich.NewClient(m.settings.Server, key)
		m.state = StateLibraryRoot
		m.setInputForLibraryRoot()
		return m, nil

	case StateLibraryRoot:
		m.settings.LibraryRoot = strings.TrimSpace(m.textInput.Value())
		m.manager = albumsync.NewManager(m.settings, m.client, m.events.add)
		m.state = StateFetchingAlbums
		return m, tea.Batch(m.fetchAlbums(), m.spinner.Tick)

	case StateAlbumSelect:
		if m.cursor == 0 {
			m.createNew = true
			m.chosen = nil
			m.state = StateAlbumName
			m.setInputForAlbumName()
			return m, nil
		}
		m.createNew = false
		m.chosen = m.albums[m.cursor-1]
		m.state = StateTarget
		m.setInputForTarget()
		return m, nil

	case StateAlbumName:
		name := strings.TrimSpace(m.textInput.Value())
		if name == "" {
			return m, nil
		}
		m.albumName = name
		m.state = StateTarget
		m.setInputForTarget()
		return m, nil

	case StateTarget:
		target := strings.TrimSpace(m.textInput.Value())
		if target == "" {
			target = m.settings.LibraryRoot
		}
		if target == "" {
			return m, nil
		}
		m.target = target
		m.state = StateScanning
		return m, tea.Batch(m.startScan(), m.tickProgress(), m.spinner.Tick)

	case StateConfirm:
		m.state = StateApplying
		return m, tea.Batch(m.applyChanges(), m.tickProgress(), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) isInputState() bool {
	switch m.state {
	case StateServer, StateAPIKey, StateLibraryRoot, StateAlbumName, StateTarget:
		return true
	}
	return false
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Input field setup per step

func (m *Model) setInputForServer() {
	m.textInput.EchoMode = textinput.EchoNormal
	m.textInput.Placeholder = config.DefaultServer
	m.textInput.SetValue(m.settings.Server)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

func (m *Model) setInputForAPIKey() {
	m.textInput.EchoMode = textinput.EchoPassword
	m.textInput.Placeholder = "paste your API key"
	m.textInput.SetValue(m.settings.APIKey)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

func (m *Model) setInputForLibraryRoot() {
	m.textInput.EchoMode = textinput.EchoNormal
	m.textInput.Placeholder = "/path/to/photo/library"
	m.textInput.SetValue(m.settings.LibraryRoot)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

func (m *Model) setInputForAlbumName() {
	m.textInput.EchoMode = textinput.EchoNormal
	m.textInput.Placeholder = "Album name"
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m *Model) setInputForTarget() {
	m.textInput.EchoMode = textinput.EchoNormal
	m.textInput.Placeholder = "directory to scan"
	m.textInput.SetValue(m.settings.LibraryRoot)
	m.textInput.CursorEnd()
	m.textInput.Focus()
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📸 Immich Albums"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Map local folders onto server albums"))
	b.WriteString("\n\n")

	switch m.state {
	case StateServer:
		b.WriteString(m.viewServer())
	case StatePinging:
		b.WriteString(m.viewWaiting("Checking server..."))
	case StateAPIKey:
		b.WriteString(m.viewAPIKey())
	case StateLibraryRoot:
		b.WriteString(m.viewLibraryRoot())
	case StateFetchingAlbums:
		b.WriteString(m.viewWaiting("Fetching albums..."))
	case StateAlbumSelect:
		b.WriteString(m.viewAlbumSelect())
	case StateAlbumName:
		b.WriteString(m.viewAlbumName())
	case StateTarget:
		b.WriteString(m.viewTarget())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateConfirm:
		b.WriteString(m.viewConfirm())
	case StateApplying:
		b.WriteString(m.viewWaiting("Applying changes..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewServer() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Immich server address:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Scheme and /api suffix are added automatically."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewAPIKey() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("API key:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Create one in Immich under Account Settings > API Keys."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLibraryRoot() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Library root:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Local path of the library the server indexes."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Leave empty to send paths unchanged."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewWaiting(message string) string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(message))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewAlbumSelect() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d albums on the server. Add assets to:", len(m.albums))))
	b.WriteString("\n\n")

	entries := make([]string, 0, len(m.albums)+1)
	entries = append(entries, "Create a new album")
	for _, album := range m.albums {
		entries = append(entries, album.Label())
	}

	for i, entry := range entries {
		cursor := "  "
		style := infoStyle
		if m.cursor == i {
			cursor = "> "
			style = albumStyle
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(entry))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewAlbumName() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Name for the new album:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewTarget() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Directory or file to scan:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Absolute, or relative to the library root."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Scanning %s", m.target)))
	b.WriteString("\n\n")

	queried, total, assets := int32(0), int32(0), int32(0)
	if m.manager != nil {
		queried, total, assets = m.manager.ScanProgress()
	}

	var percent float64
	if total > 0 {
		percent = float64(queried) / float64(total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Folders: %d/%d | Assets: %d", queried, total, assets)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConfirm() string {
	var b strings.Builder

	action := fmt.Sprintf("Create album %q", m.albumName)
	if !m.createNew && m.chosen != nil {
		action = fmt.Sprintf("Add to album %q", m.chosen.Name)
	}

	summary := fmt.Sprintf(
		"%s\n\nAssets:  %d unique\nFolders: %d\nServer:  %s\nAPI key: %s",
		action,
		len(m.result.AssetIDs),
		len(m.result.Folders),
		m.settings.Server,
		m.settings.MaskedAPIKey(),
	)
	b.WriteString(boxStyle.Render(summary))
	b.WriteString("\n\n")

	if m.settings.DryRun {
		b.WriteString(warningStyle.Render("DRY-RUN: no changes will be made"))
	} else {
		b.WriteString(dimStyle.Render("Press d to toggle dry-run"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	name := m.albumName
	if m.applied != nil {
		name = m.applied.Name
	}

	var text string
	if m.settings.DryRun {
		text = fmt.Sprintf(
			"✨ Dry-run complete\n\n"+
				"Album: %s\n"+
				"Assets: %d\n\n"+
				"Nothing was changed.",
			name,
			len(m.result.AssetIDs),
		)
	} else {
		text = fmt.Sprintf(
			"✨ Album ready!\n\n"+
				"Album: %s\n"+
				"Assets: %d\n"+
				"Folders: %d",
			name,
			len(m.result.AssetIDs),
			len(m.result.Folders),
		)
	}
	b.WriteString(boxStyle.Render(text))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case albumsync.LevelError:
			style = errorStyle
			prefix = "✗"
		case albumsync.LevelWarning:
			style = warningStyle
			prefix = "!"
		case albumsync.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case albumsync.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateServer, StateAPIKey, StateLibraryRoot, StateAlbumName, StateTarget:
		return "enter: continue • esc: quit"
	case StateAlbumSelect:
		return "↑/↓: move • enter: choose • esc: quit"
	case StatePinging, StateFetchingAlbums, StateScanning, StateApplying:
		return "esc: cancel"
	case StateConfirm:
		return "enter/y: apply • d: toggle dry-run • esc: quit"
	case StateComplete, StateError:
		return "r: start over • q: quit"
	}
	return ""
}

// pingServer checks the server answers before asking for credentials.
func (m *Model) pingServer() tea.Cmd {
	server := m.settings.Server
	ctx := m.ctx
	return func() tea.Msg {
		client := immich.NewClient(server, "")
		if err := client.Ping(ctx); err != nil {
			return PingDoneMsg{Err: err}
		}
		return PingDoneMsg{}
	}
}

// fetchAlbums loads the album list for the selection step.
func (m *Model) fetchAlbums() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	return func() tea.Msg {
		albums, err := manager.Albums(ctx)
		return AlbumsMsg{Albums: albums, Err: err}
	}
}

// startScan collects assets in the background.
func (m *Model) startScan() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	target := m.target
	return func() tea.Msg {
		result, err := manager.CollectAssets(ctx, target)
		return ScanDoneMsg{Result: result, Err: err}
	}
}

// applyChanges performs the album mutation in the background.
func (m *Model) applyChanges() tea.Cmd {
	manager := m.manager
	ctx := m.ctx
	createNew := m.createNew
	albumName := m.albumName
	chosen := m.chosen
	result := m.result
	return func() tea.Msg {
		if createNew {
			album, err := manager.CreateAlbum(ctx, albumName, "", result.AssetIDs)
			return ApplyDoneMsg{Album: album, Err: err}
		}
		err := manager.AppendAssets(ctx, chosen, result.AssetIDs)
		return ApplyDoneMsg{Album: chosen, Err: err}
	}
}

// Run starts the TUI application.
func Run() error {
	settings, err := config.Load("", nil)
	if err != nil {
		settings = config.DefaultSettings()
	}

	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

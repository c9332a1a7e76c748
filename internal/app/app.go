package app

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/deff/internal/config"
	"github.com/kmacinski/deff/internal/diff"
	"github.com/kmacinski/deff/internal/git"
	"github.com/kmacinski/deff/internal/keys"
	"github.com/kmacinski/deff/internal/layout"
	"github.com/kmacinski/deff/internal/review"
	"github.com/kmacinski/deff/internal/ui"
	"github.com/kmacinski/deff/internal/window"
	"github.com/rs/zerolog"
)

const noticeTTL = 3 * time.Second

// Deps is everything the review session needs, built before the program starts
type Deps struct {
	Comparison  git.Comparison
	Files       []diff.FileView
	Store       *review.Store
	Styles      ui.Styles
	Highlighter window.Highlighter
	Config      config.Config
	Logger      zerolog.Logger

	// Changes signals working tree edits; nil disables the stale marker.
	Changes <-chan struct{}

	// Clipboard writes text to the system clipboard. Defaults to atotto/clipboard.
	Clipboard func(string) error
}

// App is the main application model
type App struct {
	deps   Deps
	state  *State
	keys   keys.KeyMap
	help   help.Model
	modal  *window.Help
	logger zerolog.Logger

	width  int
	height int

	showHelp  bool
	stale     bool
	notice    string
	noticeSeq int

	err error
}

// New creates the review application for a non-empty file list
func New(deps Deps) *App {
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.Config.Wheel.Lines < 1 {
		deps.Config.Wheel.Lines = config.Defaults().Wheel.Lines
	}
	if deps.Config.Wheel.Columns < 1 {
		deps.Config.Wheel.Columns = config.Defaults().Wheel.Columns
	}

	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = deps.Styles.HelpKey
	h.Styles.ShortDesc = deps.Styles.HelpDesc
	h.Styles.ShortSeparator = deps.Styles.Muted

	return &App{
		deps:   deps,
		state:  NewState(deps.Files, deps.Store),
		keys:   keys.DefaultKeyMap,
		help:   h,
		modal:  window.NewHelp(deps.Styles, keys.DefaultKeyMap.FullHelp()),
		logger: deps.Logger.With().Str("component", "app").Logger(),
	}
}

// Err returns the fatal error that ended the session, if any
func (a *App) Err() error {
	return a.err
}

// State exposes the navigation state
func (a *App) State() *State {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	if a.deps.Changes == nil {
		return nil
	}
	return waitForChange(a.deps.Changes)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return WorkingTreeChangedMsg{}
	}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.state.Resize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.showHelp {
			return a.handleModalKey(msg)
		}
		if a.state.InSearchInput() {
			a.handleSearchKey(msg)
			return a, nil
		}
		return a.handleKey(msg)

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, nil

	case WorkingTreeChangedMsg:
		if !a.stale {
			a.logger.Info().Msg("working tree changed since load")
		}
		a.stale = true
		if a.deps.Changes == nil {
			return a, nil
		}
		return a, waitForChange(a.deps.Changes)

	case clearNoticeMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow quit
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	if key.Matches(msg, a.keys.Help) || key.Matches(msg, a.keys.Cancel) {
		a.showHelp = false
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.state.CommitSearch()
		s := a.state.Search()
		a.logger.Debug().Str("query", s.Query).Int("matches", len(s.Matches)).Msg("search")
	case key.Matches(msg, a.keys.Cancel):
		a.state.CancelSearch()
	case key.Matches(msg, a.keys.Backspace):
		a.state.Backspace()
	case msg.Type == tea.KeyRunes && !msg.Alt:
		for _, r := range msg.Runes {
			a.state.AppendRune(r)
		}
	case msg.Type == tea.KeySpace && !msg.Alt:
		a.state.AppendRune(' ')
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true

	case key.Matches(msg, a.keys.PrevFile):
		a.state.MoveFile(-1)
	case key.Matches(msg, a.keys.NextFile):
		a.state.MoveFile(1)

	case key.Matches(msg, a.keys.Up):
		a.state.ScrollBy(-1)
	case key.Matches(msg, a.keys.Down):
		a.state.ScrollBy(1)
	case key.Matches(msg, a.keys.PageUp):
		a.state.Page(-1)
	case key.Matches(msg, a.keys.PageDown):
		a.state.Page(1)
	case key.Matches(msg, a.keys.Top):
		a.state.Top()
	case key.Matches(msg, a.keys.Bottom):
		a.state.Bottom()

	case key.Matches(msg, a.keys.LeftPaneBack):
		a.state.ScrollPane(layout.PaneLeft, -1)
	case key.Matches(msg, a.keys.LeftPaneForward):
		a.state.ScrollPane(layout.PaneLeft, 1)
	case key.Matches(msg, a.keys.RightPaneBack):
		a.state.ScrollPane(layout.PaneRight, -1)
	case key.Matches(msg, a.keys.RightPaneForward):
		a.state.ScrollPane(layout.PaneRight, 1)

	case key.Matches(msg, a.keys.Search):
		a.state.EnterSearch()
	case key.Matches(msg, a.keys.NextMatch):
		a.state.NextMatch()
	case key.Matches(msg, a.keys.PrevMatch):
		a.state.PrevMatch()

	case key.Matches(msg, a.keys.NextHunk):
		a.state.NextHunk()
	case key.Matches(msg, a.keys.PrevHunk):
		a.state.PrevHunk()

	case key.Matches(msg, a.keys.Review):
		return a, a.toggleReviewed()

	case key.Matches(msg, a.keys.Yank):
		return a, a.yankPath()
	}

	return a, nil
}

// toggleReviewed flips the mark and writes the store through. A failed write
// ends the session.
func (a *App) toggleReviewed() tea.Cmd {
	f := a.state.Current()
	if f == nil {
		return nil
	}
	reviewed := a.state.ToggleReviewed()

	if a.deps.Store != nil {
		if err := a.deps.Store.Persist(); err != nil {
			a.err = fmt.Errorf("persist review state: %w", err)
			a.logger.Error().Err(err).Str("path", a.deps.Store.Path()).Msg("persist failed")
			return tea.Quit
		}
	}
	a.logger.Info().
		Str("file", f.Descriptor.DisplayPath).
		Bool("reviewed", reviewed).
		Int("reviewed_count", a.state.ReviewedCount()).
		Msg("review toggled")
	return nil
}

func (a *App) yankPath() tea.Cmd {
	f := a.state.Current()
	if f == nil {
		return nil
	}
	path := f.Descriptor.DisplayPath
	if err := a.deps.Clipboard(path); err != nil {
		a.logger.Warn().Err(err).Msg("clipboard write failed")
		return a.setNotice(fmt.Sprintf("copy failed: %v", err))
	}
	return a.setNotice("copied: " + path)
}

func (a *App) setNotice(text string) tea.Cmd {
	a.notice = text
	a.noticeSeq++
	seq := a.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// handleMouse scrolls with the wheel inside the body rows. Vertical wheel
// moves both panes; shift+wheel and horizontal wheel move the hovered pane.
func (a *App) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	g := a.state.Geometry()
	if !g.InBody(msg.Y) {
		return
	}
	pane := g.PaneAt(msg.X)
	a.logger.Debug().Stringer("pane", pane).Str("event", msg.String()).Msg("wheel")
	lines := a.deps.Config.Wheel.Lines
	cols := a.deps.Config.Wheel.Columns

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Shift {
			a.state.ScrollPane(pane, -cols)
		} else {
			a.state.ScrollBy(-lines)
		}
	case tea.MouseButtonWheelDown:
		if msg.Shift {
			a.state.ScrollPane(pane, cols)
		} else {
			a.state.ScrollBy(lines)
		}
	case tea.MouseButtonWheelLeft:
		a.state.ScrollPane(pane, -cols)
	case tea.MouseButtonWheelRight:
		a.state.ScrollPane(pane, cols)
	}
}

// View renders the application. The geometry computed here is authoritative
// and corrects any offsets clamped against an older size.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}
	if a.showHelp {
		return a.modal.Overlay(a.width, a.height)
	}

	g := a.state.Geometry()
	a.state.Clamp(g)
	a.help.Width = a.width

	offsets := a.state.Offsets(a.state.FileIndex())
	frame := window.Frame{
		Geometry:      g,
		Comparison:    a.deps.Comparison,
		File:          a.state.Current(),
		FileIndex:     a.state.FileIndex(),
		FileCount:     a.state.FileCount(),
		Reviewed:      a.state.Reviewed(),
		ReviewedCount: a.state.ReviewedCount(),
		Scroll:        a.state.Scroll(),
		LeftOffset:    offsets.Left,
		RightOffset:   offsets.Right,
		SearchStatus:  a.state.SearchStatus(),
		Hints:         a.help.ShortHelpView(a.keys.ShortHelp()),
		Notice:        a.notice,
		Stale:         a.stale,
	}
	return frame.Render(a.deps.Styles, a.deps.Highlighter)
}

package train

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/chordtrainer/cmd/common/chordstack"
	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/score"
	"github.com/gigurra/chordtrainer/cmd/common/stayon"
)

// refreshPeriod is the trainer clock resolution. Display time is counted in
// whole periods, so a paused or slow terminal never skips chords.
const refreshPeriod = 50 * time.Millisecond

type tickMsg time.Time

// settingsMsg carries settings reloaded from disk.
type settingsMsg struct {
	settings *config.Settings
	err      error
}

type renderedMsg struct {
	kind imageKind
	key  string
	path string
	err  error
}

type stayOnMsg struct{ err error }

type imageKind int

const (
	chordImage imageKind = iota
	scaleImage
)

type model struct {
	ctx      context.Context
	settings *config.Settings
	stack    *chordstack.Stack
	renderer *score.Renderer
	keeper   *stayon.Keeper
	cacheDir string

	elapsed           time.Duration
	paused            bool
	manualChange      bool
	changedParameters bool

	// what is on screen, taken from the stack at the last refresh
	prev, current, next chordstack.Entry
	images              map[imageKind]string
	imageKeys           map[imageKind]string

	menu       menuKind
	menuCursor int
	helpView   bool
	status     string
	width      int
	height     int
}

func newModel(ctx context.Context, settings *config.Settings, stack *chordstack.Stack, keeper *stayon.Keeper, cacheDir string) model {
	m := model{
		ctx:       ctx,
		settings:  settings,
		stack:     stack,
		keeper:    keeper,
		cacheDir:  cacheDir,
		prev:      chordstack.Empty(),
		current:   chordstack.Empty(),
		next:      chordstack.Empty(),
		images:    map[imageKind]string{},
		imageKeys: map[imageKind]string{},
	}
	m = m.withRenderer()
	stack.Initialize(settings.AvailablePitches(), settings.AvailableQualities(), settings.CurrentMode())
	// first tick shows the first chord
	m.elapsed = settings.Duration()
	return m
}

// withRenderer sets up the notation renderer for the current settings, or
// none when lilypond is missing or neither image is displayed.
func (m model) withRenderer() model {
	m.renderer = nil
	if m.cacheDir == "" || (!m.settings.DisplayScore && !m.settings.DisplayScale) {
		return m
	}
	r := score.NewRenderer(m.cacheDir, m.settings.Lilypond, m.settings.ScoreResolution)
	if !r.Available() {
		m.status = fmt.Sprintf("%s not found, no notation", m.settings.Lilypond)
		return m
	}
	m.renderer = r
	return m
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshPeriod, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		next, cmd := m.onTick()
		return next, tea.Batch(cmd, tickCmd())

	case settingsMsg:
		return m.onSettingsReloaded(msg)

	case renderedMsg:
		if errors.Is(msg.err, score.ErrInFlight) {
			// the render already running reports this image
			return m, nil
		}
		if msg.err != nil {
			slog.Warn("rendering failed", "key", msg.key, "error", msg.err)
			m.status = "rendering failed: " + msg.err.Error()
			return m, nil
		}
		// a late result for a chord that is no longer shown is dropped
		if m.imageKeys[msg.kind] == msg.key {
			m.images[msg.kind] = msg.path
		}
		return m, nil

	case stayOnMsg:
		if msg.err != nil {
			slog.Warn("stay-on failed", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

func (m model) onTick() (model, tea.Cmd) {
	if m.paused {
		return m, nil
	}
	m.elapsed += refreshPeriod

	var cmds []tea.Cmd
	if m.settings.StayOn && m.keeper != nil && m.keeper.Advance(refreshPeriod) {
		cmds = append(cmds, m.stayOnCmd())
	}

	if m.elapsed <= m.settings.Duration() {
		return m, tea.Batch(cmds...)
	}
	m.elapsed = 0

	// after browsing by hand, continue after the chord that was chosen
	if m.manualChange {
		m.manualChange = false
		m.stack.Next()
	}

	m, cmd := m.refresh()
	cmds = append(cmds, cmd)

	m.stack.UpdateStack(m.settings.AvailablePitches(), m.settings.AvailableQualities(), m.settings.CurrentMode())
	return m, tea.Batch(cmds...)
}

// refresh applies pending parameter changes and takes the chords to show
// from the stack.
func (m model) refresh() (model, tea.Cmd) {
	if m.changedParameters {
		m.changedParameters = false
		m.stack.RecreateNext(m.settings.AvailablePitches(), m.settings.AvailableQualities(), m.settings.CurrentMode())
		// stay on the chord that is due next
		m.stack.Prev()
	}

	m.prev = m.stack.PrevEntry()
	m.current = m.stack.Current()
	m.next = m.stack.NextEntry()

	return m, m.renderCmd()
}

// stepNext shows the next chord. The stack cursor is already one ahead of
// the display after a tick, so the first manual step only refreshes.
func (m model) stepNext() (model, tea.Cmd) {
	moved := true
	if m.manualChange {
		moved = m.stack.Next()
	}
	m.manualChange = true
	if !moved {
		return m, nil
	}
	return m.refresh()
}

// stepPrev shows the previous chord. The first manual step goes back twice
// for the same reason stepNext does not move at all.
func (m model) stepPrev() (model, tea.Cmd) {
	moved := true
	if !m.manualChange {
		m.stack.Prev()
		m.stack.Prev()
	} else {
		moved = m.stack.Prev()
	}
	m.manualChange = true
	if !moved {
		return m, nil
	}
	return m.refresh()
}

func (m model) onSettingsReloaded(msg settingsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "settings not reloaded: " + msg.err.Error()
		return m, nil
	}
	if !msg.settings.SameSelection(m.settings) {
		m.changedParameters = true
	}
	rendererChanged := msg.settings.Lilypond != m.settings.Lilypond ||
		msg.settings.ScoreResolution != m.settings.ScoreResolution ||
		msg.settings.DisplayScore != m.settings.DisplayScore ||
		msg.settings.DisplayScale != m.settings.DisplayScale
	m.settings = msg.settings
	m.status = "settings reloaded"
	if rendererChanged {
		m = m.withRenderer()
		return m, m.renderCmd()
	}
	return m, nil
}

func (m model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpView {
		m.helpView = false
		return m, nil
	}
	if m.menu != menuNone {
		return m.onMenuKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case " ", "p":
		m.paused = !m.paused
	case "right", "l":
		return m.stepNext()
	case "left", "h":
		return m.stepPrev()
	case "1":
		m = m.openMenu(menuTones)
	case "2":
		m = m.openMenu(menuQualities)
	case "3":
		m = m.openMenu(menuMode)
	case "4":
		m = m.openMenu(menuDisplay)
	case "+", "=":
		m.settings.AdjustDuration(1)
	case "-":
		m.settings.AdjustDuration(-1)
	case "s":
		m.settings.DisplayScale = !m.settings.DisplayScale
		m = m.withRenderer()
		return m, m.renderCmd()
	case "n":
		m.settings.DisplayScore = !m.settings.DisplayScore
		m = m.withRenderer()
		return m, m.renderCmd()
	case "c":
		m.status = m.copyCurrent()
	case "?":
		m.helpView = true
	}
	return m, nil
}

func (m model) copyCurrent() string {
	if m.current.IsEmpty() {
		return "nothing to copy"
	}
	text := fmt.Sprintf("%s (%s)", m.current.Name(), m.current.Scale().Name())
	if err := clipboard.WriteAll(text); err != nil {
		return "copy failed: " + err.Error()
	}
	return "copied " + text
}

// renderCmd renders the notation of the current chord in the background.
// In single-thread mode the chord and scale images are rendered one after
// the other instead of at the same time.
func (m model) renderCmd() tea.Cmd {
	if m.renderer == nil || m.current.IsEmpty() {
		return nil
	}
	r, ctx, e := m.renderer, m.ctx, m.current

	var cmds []tea.Cmd
	if m.settings.DisplayScore {
		key := e.Key()
		m.imageKeys[chordImage] = key
		m.images[chordImage] = ""
		cmds = append(cmds, func() tea.Msg {
			path, err := r.RenderChord(ctx, e.Pitch(), e.Quality(), e.Mode())
			return renderedMsg{kind: chordImage, key: key, path: path, err: err}
		})
	}
	if m.settings.DisplayScale {
		key := e.Scale().Key()
		m.imageKeys[scaleImage] = key
		m.images[scaleImage] = ""
		cmds = append(cmds, func() tea.Msg {
			path, err := r.RenderScale(ctx, e.Scale())
			return renderedMsg{kind: scaleImage, key: key, path: path, err: err}
		})
	}
	if m.settings.SingleThread {
		return tea.Sequence(cmds...)
	}
	return tea.Batch(cmds...)
}

func (m model) stayOnCmd() tea.Cmd {
	k, ctx := m.keeper, m.ctx
	return func() tea.Msg {
		return stayOnMsg{err: k.Poke(ctx)}
	}
}

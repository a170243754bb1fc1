package train

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
)

type menuKind int

const (
	menuNone menuKind = iota
	menuTones
	menuQualities
	menuMode
	menuDisplay
)

var menuTitles = map[menuKind]string{
	menuTones:     "Tones",
	menuQualities: "Qualities",
	menuMode:      "Mode",
	menuDisplay:   "Display",
}

// menuItem is one line of a menu. Items without checked are actions
// (presets), the others are shown with a checkbox.
type menuItem struct {
	label   string
	checked func(s *config.Settings) bool
	apply   func(s *config.Settings)
	value   func(s *config.Settings) string

	// selection reports whether applying the item changes which chords are generated
	selection bool
}

func (m model) menuItems() []menuItem {
	switch m.menu {
	case menuTones:
		return toneItems()
	case menuQualities:
		return qualityItems()
	case menuMode:
		return modeItems()
	case menuDisplay:
		return displayItems()
	}
	return nil
}

func toneItems() []menuItem {
	var items []menuItem
	for _, preset := range config.TonePresets {
		items = append(items, menuItem{
			label:     "preset " + preset,
			apply:     func(s *config.Settings) { _ = s.ApplyTonePreset(preset) },
			selection: true,
		})
	}
	for _, p := range theory.AllPitches() {
		items = append(items, menuItem{
			label:     p.Glyph(),
			checked:   func(s *config.Settings) bool { return s.Tones[p.String()] },
			apply:     func(s *config.Settings) { s.ToggleTone(p) },
			selection: true,
		})
	}
	return items
}

func qualityItems() []menuItem {
	var items []menuItem
	for _, preset := range config.QualityPresets {
		items = append(items, menuItem{
			label:     "preset " + preset,
			apply:     func(s *config.Settings) { _ = s.ApplyQualityPreset(preset) },
			selection: true,
		})
	}
	for _, q := range theory.AllQualities() {
		items = append(items, menuItem{
			label:     fmt.Sprintf("%-4s %s", q.Glyph(), q),
			checked:   func(s *config.Settings) bool { return s.Qualities[q.String()] },
			apply:     func(s *config.Settings) { s.ToggleQuality(q) },
			selection: true,
		})
	}
	return items
}

func modeItems() []menuItem {
	var items []menuItem
	for _, mode := range theory.AllModes() {
		items = append(items, menuItem{
			label:     mode.String(),
			checked:   func(s *config.Settings) bool { return s.CurrentMode() == mode },
			apply:     func(s *config.Settings) { s.SetMode(mode) },
			selection: true,
		})
	}
	return items
}

func displayItems() []menuItem {
	return []menuItem{
		{
			label:   "Show score",
			checked: func(s *config.Settings) bool { return s.DisplayScore },
			apply:   func(s *config.Settings) { s.DisplayScore = !s.DisplayScore },
		},
		{
			label:   "Show scale",
			checked: func(s *config.Settings) bool { return s.DisplayScale },
			apply:   func(s *config.Settings) { s.DisplayScale = !s.DisplayScale },
		},
		{
			label:   "Render one image at a time",
			checked: func(s *config.Settings) bool { return s.SingleThread },
			apply:   func(s *config.Settings) { s.SingleThread = !s.SingleThread },
		},
		{
			label:   "Keep screen on",
			checked: func(s *config.Settings) bool { return s.StayOn },
			apply:   func(s *config.Settings) { s.StayOn = !s.StayOn },
		},
		{
			label: "Font size",
			apply: func(s *config.Settings) { s.FontSize = cycle(config.FontSizes, s.FontSize) },
			value: func(s *config.Settings) string { return fmt.Sprintf("%d", s.FontSize) },
		},
		{
			label: "Score resolution",
			apply: func(s *config.Settings) { s.ScoreResolution = cycle(config.ScoreResolutions, s.ScoreResolution) },
			value: func(s *config.Settings) string { return fmt.Sprintf("%d dpi", s.ScoreResolution) },
		},
	}
}

// cycle returns the value after current in values, wrapping around.
func cycle(values []int, current int) int {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

func (m model) openMenu(kind menuKind) model {
	m.menu = kind
	m.menuCursor = 0
	return m
}

func (m model) onMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	switch msg.String() {
	case "esc", "q", "enter":
		m.menu = menuNone
	case "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(items)-1 {
			m.menuCursor++
		}
	case " ", "x":
		return m.applyMenuItem(items[m.menuCursor])
	case "1", "2", "3", "4":
		m = m.openMenu(menuKind(msg.String()[0] - '0'))
	}
	return m, nil
}

func (m model) applyMenuItem(item menuItem) (tea.Model, tea.Cmd) {
	item.apply(m.settings)
	if item.selection {
		m.changedParameters = true
		return m, nil
	}
	m = m.withRenderer()
	return m, m.renderCmd()
}

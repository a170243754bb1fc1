package train

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/chordtrainer/cmd/common/chordstack"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

var (
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	neighbourStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	scaleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	gaugeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	pausedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

const gaugeWidth = 40

// chordStyle scales the current chord box with the configured font size.
// Terminals have one font size, so size becomes padding.
func chordStyle(fontSize int) lipgloss.Style {
	pad := max(fontSize/24, 1)
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(pad/2, pad*2)
}

func (m model) View() string {
	if m.helpView {
		return m.renderHelpView()
	}
	if m.menu != menuNone {
		return m.renderMenu()
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(headerStyle.Render("Chord Trainer"))
	b.WriteString(helpStyle.Render("  " + m.settings.CurrentMode().String()))
	if m.paused {
		b.WriteString(pausedStyle.Render("  (Paused)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.center(m.renderChords()))
	b.WriteString("\n\n")

	if m.settings.DisplayScale && !m.current.IsEmpty() {
		b.WriteString(m.center(scaleStyle.Render("Scale: " + m.current.Scale().Name())))
		b.WriteString("\n")
	}
	b.WriteString(m.center(m.renderGauge()))
	b.WriteString("\n\n")

	if line := m.renderImages(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  " + m.selectionSummary()))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(helpStyle.Render("  " + m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ? help • space pause • ←/→ prev/next • 1 tones • 2 qualities • 3 mode • 4 display • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderChords() string {
	current := m.current.Name()
	if m.current.IsEmpty() {
		current = "no chord selected"
	}
	box := chordStyle(m.settings.FontSize).Render(current)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		neighbourStyle.Render(runewidth.FillLeft(sideName(m.prev), 8)),
		"   ", box, "   ",
		neighbourStyle.Render(runewidth.FillRight(sideName(m.next), 8)),
	)
}

func sideName(e chordstack.Entry) string {
	return lo.Ternary(e.IsEmpty(), "", e.Name())
}

func (m model) renderGauge() string {
	total := m.settings.Duration()
	filled := 0
	if total > 0 {
		filled = min(int(int64(gaugeWidth)*int64(m.elapsed)/int64(total)), gaugeWidth)
	}
	bar := gaugeStyle.Render(strings.Repeat("█", filled)) + helpStyle.Render(strings.Repeat("░", gaugeWidth-filled))
	return fmt.Sprintf("%s  %.1fs / %ds", bar, m.elapsed.Seconds(), m.settings.DurationSeconds)
}

func (m model) renderImages() string {
	var lines []string
	if m.settings.DisplayScore {
		lines = append(lines, "  Score: "+m.imageStatus(chordImage))
	}
	if m.settings.DisplayScale {
		lines = append(lines, "  Scale: "+m.imageStatus(scaleImage))
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}

func (m model) imageStatus(kind imageKind) string {
	switch {
	case m.renderer == nil:
		return "off"
	case m.imageKeys[kind] == "":
		return "-"
	case m.images[kind] == "":
		return "rendering..."
	}
	return m.images[kind]
}

func (m model) selectionSummary() string {
	tones := lo.Map(m.settings.AvailablePitches(), func(p theory.Pitch, _ int) string { return p.Glyph() })
	qualities := lo.Map(m.settings.AvailableQualities(), func(q theory.Quality, _ int) string { return q.Glyph() })
	return fmt.Sprintf("Tones: %s • Qualities: %s", strings.Join(tones, " "), strings.Join(qualities, " "))
}

func (m model) center(s string) string {
	if m.width < 10 {
		return lipgloss.NewStyle().MarginLeft(2).Render(s)
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m model) renderMenu() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuStyle.Render("  " + menuTitles[m.menu] + ":"))
	b.WriteString("\n\n")

	for i, item := range m.menuItems() {
		if i == m.menuCursor {
			b.WriteString(selectedStyle.Render(" >"))
		} else {
			b.WriteString("  ")
		}

		switch {
		case item.checked == nil:
			b.WriteString("     ")
		case item.checked(m.settings):
			b.WriteString(" [x] ")
		default:
			b.WriteString(" [ ] ")
		}

		label := item.label
		if item.value != nil {
			label = fmt.Sprintf("%s: %s", label, item.value(m.settings))
		}
		if i == m.menuCursor {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.menu == menuQualities && m.settings.CurrentMode() != theory.ModeChord {
		b.WriteString(helpStyle.Render("  Progressions always use major seventh targets"))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ↑/↓ navigate • space toggle • 1-4 switch menu • enter/esc close"))
	b.WriteString("\n")
	return b.String()
}

func (m model) renderHelpView() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuStyle.Render("  Chord Trainer - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("  Practice"))
	b.WriteString("\n")
	b.WriteString("    space/p   Pause or resume\n")
	b.WriteString("    ←/h       Previous chord\n")
	b.WriteString("    →/l       Next chord\n")
	b.WriteString("    +/-       Longer or shorter display time\n")
	b.WriteString("    c         Copy chord and scale to clipboard\n")
	b.WriteString("    q/esc     Save settings and quit\n")
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("  Selection"))
	b.WriteString("\n")
	b.WriteString("    1         Tones\n")
	b.WriteString("    2         Qualities\n")
	b.WriteString("    3         Mode\n")
	b.WriteString("    4         Display options\n")
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("  Notation"))
	b.WriteString("\n")
	b.WriteString("    n         Show or hide the chord score\n")
	b.WriteString("    s         Show or hide the scale\n")
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("  Press any key to close"))
	b.WriteString("\n")
	return b.String()
}

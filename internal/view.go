package internal

import (
	"fmt"
	"strings"
	"time"

	"countdown/internal/config"
	"countdown/internal/font"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	digits lipgloss.Style
	title  lipgloss.Style
	paused lipgloss.Style
}

func newStyles(theme config.Theme) styles {
	return styles{
		digits: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Digits)).
			Bold(true),
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Title)),
		paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Paused)).
			Bold(true),
	}
}

// formatDuration renders MM:SS, or HH:MM:SS from one hour up.
func formatDuration(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// renderBlock joins the glyphs for text side by side. Runes without a glyph
// are skipped.
func renderBlock(face *font.Face, text string) []string {
	rows := make([]strings.Builder, face.Height())
	for _, r := range text {
		g, ok := face.Glyph(r)
		if !ok {
			continue
		}
		for i := range rows {
			rows[i].WriteString(g[i])
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = rows[i].String()
	}
	return lines
}

func (m *Model) countdownView() string {
	digits := renderBlock(m.face, formatDuration(m.Frame.Display))
	top := max((m.Height-len(digits))/2, 0)

	lines := make([]string, 0, top+len(digits)+2)
	for i := 0; i < top; i++ {
		lines = append(lines, "")
	}
	for _, row := range digits {
		lines = append(lines, m.center(m.styles.digits.Render(row)))
	}
	if m.Frame.Title != "" {
		lines = append(lines, "", m.center(m.styles.title.Render(m.Frame.Title)))
	}
	return m.fit(lines)
}

func (m *Model) pausedView() string {
	banner := m.face.Paused()
	top := max(m.Height*3/4-len(banner)/2, 0)

	lines := make([]string, 0, top+len(banner))
	for i := 0; i < top; i++ {
		lines = append(lines, "")
	}
	for _, row := range banner {
		lines = append(lines, m.center(m.styles.paused.Render(row)))
	}
	return m.fit(lines)
}

func (m *Model) center(s string) string {
	return lipgloss.PlaceHorizontal(m.Width, lipgloss.Center, s)
}

// fit pads or clips lines to exactly the terminal height so the program
// never scrolls.
func (m *Model) fit(lines []string) string {
	if len(lines) > m.Height {
		lines = lines[:m.Height]
	}
	for len(lines) < m.Height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

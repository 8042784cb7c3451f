package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles the status panel is drawn with.
type Styles struct {
	Canvas    lipgloss.Style
	Panel     lipgloss.Style
	Title     lipgloss.Style
	Header    lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Selected  lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Recording lipgloss.Style
	Chart     lipgloss.Style
	Hint      lipgloss.Style
	Subtle    lipgloss.Style
	barHigh   lipgloss.Style
	barMid    lipgloss.Style
	barLow    lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Canvas: lipgloss.NewStyle(),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(panelWidth),
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Label:     lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		Value:     lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Running:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(t.Error).Blink(true),
		Chart:     lipgloss.NewStyle().Foreground(t.Secondary),
		Hint:      lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Subtle:    lipgloss.NewStyle().Foreground(t.Muted),
		barHigh:   lipgloss.NewStyle().Foreground(t.Success),
		barMid:    lipgloss.NewStyle().Foreground(t.Warning),
		barLow:    lipgloss.NewStyle().Foreground(t.Error),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(start))
	er, eg, eb := parseHex(string(end))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		col := hexColor(
			sr+int(t*float64(er-sr)),
			sg+int(t*float64(eg-sg)),
			sb+int(t*float64(eb-sb)),
		)
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(string(c)))
	}
	return result.String()
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders a bar filled to percent of width.
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case percent > 0.8:
		return s.barHigh.Render(bar)
	case percent > 0.4:
		return s.barMid.Render(bar)
	}
	return s.barLow.Render(bar)
}

// Separator draws a decorated horizontal rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	clampByte := func(v int) int { return max(0, min(v, 255)) }
	return "#" + hexByte(clampByte(r)) + hexByte(clampByte(g)) + hexByte(clampByte(b))
}

func hexByte(v int) string {
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}

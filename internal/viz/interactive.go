package viz

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/spinnet/internal/config"
)

const (
	stateMenu = iota
	stateSim
)

// picker lists the presets and starts the live display on the chosen one.
type picker struct {
	state, cursor int
	presets       []string
	base          *config.Config
	log           *slog.Logger
	width, height int
	live          Model
	err           error
}

func newPicker(base *config.Config, logger *slog.Logger) picker {
	return picker{
		presets: config.ListPresets(),
		base:    base,
		log:     logger,
		width:   width,
		height:  height,
	}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.menuKey(key)
	}
	return m, nil
}

func (m picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

// start applies the selected preset over the base config, keeping the
// base's seed, surface and storage settings.
func (m picker) start() (tea.Model, tea.Cmd) {
	cfg := *m.base
	config.Presets[m.presets[m.cursor]].Apply(&cfg)

	live, err := NewModel(&cfg, m.log)
	if err != nil {
		m.err = err
		return m, nil
	}
	live.resize(m.width, m.height)
	m.live, m.state = live, stateSim
	m.log.Debug("preset started", "preset", m.presets[m.cursor])
	return m, live.Init()
}

func (m picker) View() string {
	if m.state == stateSim {
		return m.live.View()
	}

	t := GetTheme(m.base.Theme)
	h := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.Muted)
	var b strings.Builder
	b.WriteString("\n\n    " + h.Render("SPINNET") + "\n    " + sub.Render("spin network explorer") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := config.Presets[name].Description
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(fmt.Sprintf("%-14s", name)),
				lipgloss.NewStyle().Foreground(t.Accent).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				sub.Render(fmt.Sprintf("  %-14s", name)),
				lipgloss.NewStyle().Foreground(t.Border).Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(t.Error).Render(m.err.Error()) + "\n")
	}
	key := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" start  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu, then the live display.
func RunInteractive(base *config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	_, err := tea.NewProgram(newPicker(base, logger), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

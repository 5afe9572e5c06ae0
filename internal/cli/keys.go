package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kilikali/kilikali/internal/config"
	"github.com/kilikali/kilikali/internal/input"
	"github.com/spf13/cobra"
)

// keysHistory is how many key presses the keys command keeps on screen
const keysHistory = 12

func newKeysCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the names of pressed keys",
		Long: `Print the name of every key pressed, as used in the bindings section
of the configuration file. Press ctrl+c to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, closer, err := setup(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			bindings, err := cfg.KeyBindings()
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newKeysModel(bindings), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

var (
	keyNameStyle  = lipgloss.NewStyle().Bold(true)
	reservedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boundStyle    = lipgloss.NewStyle().Faint(true)
)

// keysModel lists the names of the last keys pressed
type keysModel struct {
	bindings *config.Bindings
	lines    []string
}

func newKeysModel(bindings *config.Bindings) keysModel {
	return keysModel{bindings: bindings}
}

func (m keysModel) Init() tea.Cmd {
	return nil
}

func (m keysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	for _, ev := range input.FromKeyMsg(key) {
		m.lines = append(m.lines, m.describe(ev.Name()))
	}
	if len(m.lines) > keysHistory {
		m.lines = m.lines[len(m.lines)-keysHistory:]
	}
	return m, nil
}

// describe renders one key name with what it means to the bindings
func (m keysModel) describe(name string) string {
	label := fmt.Sprintf("%q", name)
	line := keyNameStyle.Render(label)
	switch {
	case m.bindings.IsReserved(name):
		line += " " + reservedStyle.Render("(reserved)")
	default:
		if binding, ok := m.bindings.Lookup(name); ok {
			line += " " + boundStyle.Render(binding)
		}
	}
	return line
}

func (m keysModel) View() string {
	var b strings.Builder
	b.WriteString("Press keys to see their names. ctrl+c exits.\n\n")
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Beastly713/gf2share/pkg/gf"
	"github.com/Beastly713/gf2share/pkg/shamir"
)

// Styles
var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	cursorStyle  = focusedStyle.Copy()
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
)

// field identifies one of the wizard's text inputs, in the order the
// user fills them in.
type field int

const (
	fieldBitWidth field = iota
	fieldEncoding
	fieldShares
	fieldThreshold
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldBitWidth:  "bit width (8/16/32/64/128/256)",
	fieldEncoding:  "encoding (compact/random)",
	fieldShares:    "number of shares (N)",
	fieldThreshold: "threshold (T)",
}

type model struct {
	inputs  [fieldCount]textinput.Model
	focus   field
	status  string
	result  string
	done    bool
	quiting bool
}

func initialModel() model {
	m := model{status: "Tab/Enter: next field | Esc: quit"}
	defaults := [fieldCount]string{
		fieldBitWidth:  "256",
		fieldEncoding:  "compact",
		fieldShares:    "5",
		fieldThreshold: "3",
	}
	for f := field(0); f < fieldCount; f++ {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[f]
		ti.SetValue(defaults[f])
		ti.CharLimit = 32
		m.inputs[f] = ti
	}
	m.inputs[0].Focus()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quiting = true
			return m, tea.Quit

		case "tab", "enter":
			if m.focus == fieldCount-1 {
				m.runSplit()
				return m, nil
			}
			m.inputs[m.focus].Blur()
			m.focus++
			m.inputs[m.focus].Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// runSplit validates the wizard's fields and, if they are well formed,
// runs shamir.Split and renders the resulting shares into m.result. It
// never touches disk: saving the shares is left to the non-interactive
// split command's --destination flag.
func (m *model) runSplit() {
	bitWidth, err := strconv.Atoi(m.inputs[fieldBitWidth].Value())
	if err != nil {
		m.status = errorStyle.Render("bit width must be an integer")
		return
	}

	encoding, err := parseEncodingFlag(strings.TrimSpace(m.inputs[fieldEncoding].Value()))
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}

	n, err := strconv.Atoi(m.inputs[fieldShares].Value())
	if err != nil {
		m.status = errorStyle.Render("number of shares must be an integer")
		return
	}
	t, err := strconv.Atoi(m.inputs[fieldThreshold].Value())
	if err != nil {
		m.status = errorStyle.Render("threshold must be an integer")
		return
	}

	secret := make([]byte, bitWidth/8)
	if err := (gf.CryptoRandOracle{}).Read(secret); err != nil {
		m.status = errorStyle.Render(fmt.Sprintf("failed to draw random secret: %v", err))
		return
	}

	shares, coeffHex, err := shamir.SplitVerbose(secret, n, t, encoding, gf.CryptoRandOracle{})
	if err != nil {
		m.status = errorStyle.Render(fmt.Sprintf("split failed: %v", err))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Secret = %x\n", secret)
	for i, c := range coeffHex {
		fmt.Fprintf(&b, "a%d     = %s\n", i+1, c)
	}
	fmt.Fprintln(&b)
	for i, s := range shares {
		line, _ := s.Format()
		fmt.Fprintf(&b, "share %d: %s\n", i+1, line)
	}
	m.result = b.String()
	m.done = true
	m.status = "Done. Press Esc to quit."
}

func (m model) View() string {
	if m.quiting {
		return "Bye!\n"
	}
	if m.done {
		return docStyle.Render(m.result + "\n" + m.status)
	}

	var b strings.Builder
	b.WriteString("Split wizard\n\n")
	for f := field(0); f < fieldCount; f++ {
		cursor := "  "
		if m.focus == f {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(checkedStyle.Render(fieldLabels[f]) + ": ")
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.status + "\n")
	return docStyle.Render(b.String())
}

// Cobra command setup
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Interactive wizard for choosing split parameters and previewing shares",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

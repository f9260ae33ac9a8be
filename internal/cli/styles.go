package cli

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorHeader  = lipgloss.Color("39")  // blue accent
	colorFg      = lipgloss.Color("252") // near-white
	colorDim     = lipgloss.Color("241") // grey
	colorPending = lipgloss.Color("178") // amber
	colorAlert   = lipgloss.Color("203") // red
	colorOK      = lipgloss.Color("114") // green
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)

	tabStyle       = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	tabActiveStyle = lipgloss.NewStyle().Foreground(colorFg).Background(colorHeader).Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().Foreground(colorPending)
	alertStyle   = lipgloss.NewStyle().Foreground(colorAlert).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().Foreground(colorDim).MarginTop(1)
)

// dayboardHuhTheme styles huh forms to match the board view.
func dayboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(colorFg).Background(colorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

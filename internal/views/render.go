package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
	Theme        string
}

// Palette bundles the lipgloss styles for one theme.
type Palette struct {
	Header lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style
	Footer lipgloss.Style
}

var (
	darkPalette = Palette{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	lightPalette = Palette{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Panel:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

func PaletteFor(theme string) Palette {
	if theme == "light" {
		return lightPalette
	}
	return darkPalette
}

func RenderApp(data AppData) string {
	p := PaletteFor(data.Theme)
	left := p.Panel.Width(58).Render(data.LeftPane)
	right := p.Panel.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := p.Status.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = p.Error.Render(data.StatusLine)
	}

	lines := []string{
		p.Header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, p.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, p.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a task description with the glamour style matching
// the active theme. Render failures fall back to the raw text.
func RenderMarkdown(md string, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if theme == "light" {
		style = "light"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Warning       lipgloss.Style
	Error         lipgloss.Style
	Info          lipgloss.Style
	Path          lipgloss.Style
	Key           lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles builds styles bound to r so colour follows the target writer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:        r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:          r.NewStyle().Bold(true),
		Muted:         r.NewStyle().Foreground(lipgloss.Color("8")),
		Success:       r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:       r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:         r.NewStyle().Foreground(lipgloss.Color("9")),
		Info:          r.NewStyle().Foreground(lipgloss.Color("14")),
		Path:          r.NewStyle().Foreground(lipgloss.Color("13")),
		Key:           r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		StatusSuccess: r.NewStyle().SetString("✓").Foreground(lipgloss.Color("10")),
		StatusFailed:  r.NewStyle().SetString("✗").Foreground(lipgloss.Color("9")),
	}
}

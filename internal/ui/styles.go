package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorError     = lipgloss.Color("196") // Red
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Styler applies the palette in ModeStyled and returns text untouched in ModePlain.
type Styler struct {
	mode Mode
}

// NewStyler creates a Styler for mode.
func NewStyler(mode Mode) Styler {
	return Styler{mode: mode}
}

// Styled reports whether the Styler decorates text.
func (s Styler) Styled() bool {
	return s.mode == ModeStyled
}

// Success renders text as a positive outcome.
func (s Styler) Success(text string) string {
	if !s.Styled() {
		return text
	}
	return SuccessStyle.Render(text)
}

// Error renders text as a negative outcome.
func (s Styler) Error(text string) string {
	if !s.Styled() {
		return text
	}
	return ErrorStyle.Render(text)
}

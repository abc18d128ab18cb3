package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme draws with
type Palette struct {
	Background string
	Foreground string
	Red        string
	Orange     string
	Yellow     string
	Green      string
	Cyan       string
	Blue       string
	Magenta    string
	Comment    string
	Border     string
}

// Theme is passed explicitly to everything that renders content.
// Nothing reads the terminal background on its own.
type Theme struct {
	Name    string
	Dark    bool
	Palette Palette
	// ChromaStyle names the syntax highlighting style for code blocks
	ChromaStyle string

	renderer *lipgloss.Renderer
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Dark returns the Monokai Pro theme
func Dark() Theme {
	return Theme{
		Name: ThemeDark,
		Dark: true,
		Palette: Palette{
			Background: Background,
			Foreground: Foreground,
			Red:        Red,
			Orange:     Orange,
			Yellow:     Yellow,
			Green:      Green,
			Cyan:       Cyan,
			Blue:       Blue,
			Magenta:    Magenta,
			Comment:    Comment,
			Border:     Border,
		},
		ChromaStyle: "monokai",
	}
}

// Light returns the light variant for bright terminals
func Light() Theme {
	return Theme{
		Name: ThemeLight,
		Palette: Palette{
			Background: "#FAF4F2",
			Foreground: "#29242A",
			Red:        "#E14775",
			Orange:     "#E16032",
			Yellow:     "#CC7A0A",
			Green:      "#269D69",
			Cyan:       "#1C8CA8",
			Blue:       "#7058BE",
			Magenta:    "#E14775",
			Comment:    "#A59FA0",
			Border:     "#D3CDCC",
		},
		ChromaStyle: "vs",
	}
}

// ThemeByName resolves "dark" or "light"
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeDark, "":
		return Dark(), nil
	case ThemeLight:
		return Light(), nil
	}
	return Theme{}, fmt.Errorf("unknown theme '%s': must be one of: dark, light", name)
}

// Toggle returns the other theme, keeping the renderer
func (t Theme) Toggle() Theme {
	next := Light()
	if !t.Dark {
		next = Dark()
	}
	next.renderer = t.renderer
	return next
}

// WithRenderer binds styles to a specific lipgloss renderer, e.g. one
// writing to a file or forced to a color profile
func (t Theme) WithRenderer(r *lipgloss.Renderer) Theme {
	t.renderer = r
	return t
}

// NewStyle creates a style bound to the theme's renderer
func (t Theme) NewStyle() lipgloss.Style {
	if t.renderer != nil {
		return t.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// Fg returns a style with the given palette color as foreground
func (t Theme) Fg(color string) lipgloss.Style {
	return t.NewStyle().Foreground(lipgloss.Color(color))
}

// Title is used for entry titles and headings
func (t Theme) Title() lipgloss.Style {
	return t.Fg(t.Palette.Magenta).Bold(true)
}

// Dim is used for secondary text
func (t Theme) Dim() lipgloss.Style {
	return t.Fg(t.Palette.Comment)
}

// Text is used for body text
func (t Theme) Text() lipgloss.Style {
	return t.Fg(t.Palette.Foreground)
}

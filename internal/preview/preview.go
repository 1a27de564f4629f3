// Package preview draws a generated palette as terminal color swatches.
package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"walremap/internal/theme"
)

const (
	darkText  = "#000000"
	lightText = "#ffffff"
)

// ContrastText returns black or white, whichever reads better on hex.
// ok is false when hex is not a color go-colorful understands.
func ContrastText(hex string) (text string, ok bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", false
	}
	l, _, _ := c.Lab()
	if l > 0.5 {
		return darkText, true
	}
	return lightText, true
}

// Render writes one line per palette role to w. The color profile is
// detected from w, so plain text is written when w is not a terminal.
func Render(w io.Writer, p theme.Palette) error {
	renderer := lipgloss.NewRenderer(w)
	label := renderer.NewStyle().Width(12).Padding(0, 1)
	title := renderer.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(title.Render(theme.Name))
	b.WriteByte('\n')

	for _, role := range theme.Roles {
		value, _ := p.Get(role.Name)

		swatch := label.Render(role.Name)
		if text, ok := ContrastText(value); ok {
			c, _ := colorful.Hex(value)
			swatch = label.
				Background(lipgloss.Color(c.Hex())).
				Foreground(lipgloss.Color(text)).
				Render(role.Name)
		}
		fmt.Fprintf(&b, "%s %s  (%s)\n", swatch, value, role.Source)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

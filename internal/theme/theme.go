// Package theme defines the Vicinae theme document generated from a Pywal
// scheme, the projection between the two, and its on-disk encoding.
package theme

import (
	"bytes"
	"encoding/json"

	"walremap/internal/scheme"
)

// Constant metadata written into every generated theme.
const (
	Version     = "1.0.0"
	Appearance  = "dark"
	Icon        = "./dynamic-theme.png"
	Name        = "Pywal Dynamic"
	Description = "Automatically generated from Pywal"
)

// Palette holds the ten semantic color roles. Field order is the order the
// roles are written to disk.
type Palette struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Blue       string `json:"blue"`
	Green      string `json:"green"`
	Magenta    string `json:"magenta"`
	Orange     string `json:"orange"`
	Purple     string `json:"purple"`
	Red        string `json:"red"`
	Yellow     string `json:"yellow"`
	Cyan       string `json:"cyan"`
}

// Theme is the destination document.
type Theme struct {
	Version     string  `json:"version"`
	Appearance  string  `json:"appearance"`
	Icon        string  `json:"icon"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Palette     Palette `json:"palette"`
}

// Role binds a palette role to the source key it is read from.
type Role struct {
	Name   string
	Source string
	field  func(*Palette) *string
}

// Roles lists the projection from source keys to palette roles, in output order.
var Roles = []Role{
	{"background", "special.background", func(p *Palette) *string { return &p.Background }},
	{"foreground", "special.foreground", func(p *Palette) *string { return &p.Foreground }},
	{"blue", "colors.color4", func(p *Palette) *string { return &p.Blue }},
	{"green", "colors.color2", func(p *Palette) *string { return &p.Green }},
	{"magenta", "colors.color5", func(p *Palette) *string { return &p.Magenta }},
	{"orange", "colors.color11", func(p *Palette) *string { return &p.Orange }},
	{"purple", "colors.color13", func(p *Palette) *string { return &p.Purple }},
	{"red", "colors.color1", func(p *Palette) *string { return &p.Red }},
	{"yellow", "colors.color3", func(p *Palette) *string { return &p.Yellow }},
	{"cyan", "colors.color6", func(p *Palette) *string { return &p.Cyan }},
}

// New returns a theme with the constant metadata and the given palette.
func New(p Palette) *Theme {
	return &Theme{
		Version:     Version,
		Appearance:  Appearance,
		Icon:        Icon,
		Name:        Name,
		Description: Description,
		Palette:     p,
	}
}

// FromScheme projects a scheme into a theme. The first missing or invalid
// source key aborts the projection.
func FromScheme(s *scheme.Scheme) (*Theme, error) {
	var p Palette
	for _, role := range Roles {
		value, err := s.Lookup(role.Source)
		if err != nil {
			return nil, err
		}
		*role.field(&p) = value
	}
	return New(p), nil
}

// Get returns the value of a palette role by name.
func (p Palette) Get(name string) (string, bool) {
	for _, role := range Roles {
		if role.Name == name {
			return *role.field(&p), true
		}
	}
	return "", false
}

// Encode serializes the theme as JSON indented by two spaces, with a
// trailing newline. The output is deterministic for a given theme.
func (t *Theme) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

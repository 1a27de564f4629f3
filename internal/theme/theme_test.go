package theme

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	walerrors "walremap/internal/errors"
	"walremap/internal/scheme"
)

const exampleScheme = `{"special":{"background":"#101010","foreground":"#f0f0f0"},"colors":{"color0":"#0","color1":"#a00","color2":"#0a0","color3":"#aa0","color4":"#00a","color5":"#a0a","color6":"#0aa","color11":"#fa0","color13":"#a0f", "color7":"#ccc"}}`

func mustParse(t *testing.T, doc string) *scheme.Scheme {
	t.Helper()
	s, err := scheme.Parse(strings.NewReader(doc), "colors.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func TestFromScheme(t *testing.T) {
	th, err := FromScheme(mustParse(t, exampleScheme))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &Theme{
		Version:     "1.0.0",
		Appearance:  "dark",
		Icon:        "./dynamic-theme.png",
		Name:        "Pywal Dynamic",
		Description: "Automatically generated from Pywal",
		Palette: Palette{
			Background: "#101010",
			Foreground: "#f0f0f0",
			Blue:       "#00a",
			Green:      "#0a0",
			Magenta:    "#a0a",
			Orange:     "#fa0",
			Purple:     "#a0f",
			Red:        "#a00",
			Yellow:     "#aa0",
			Cyan:       "#0aa",
		},
	}
	if diff := cmp.Diff(want, th); diff != "" {
		t.Errorf("theme mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSchemeMissingKey(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantKey string
	}{
		{
			name:    "missing color4",
			doc:     strings.Replace(exampleScheme, `"color4":"#00a",`, "", 1),
			wantKey: "colors.color4",
		},
		{
			name:    "missing background",
			doc:     strings.Replace(exampleScheme, `"background":"#101010",`, "", 1),
			wantKey: "special.background",
		},
		{
			name:    "missing color13",
			doc:     strings.Replace(exampleScheme, `"color13":"#a0f", `, "", 1),
			wantKey: "colors.color13",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromScheme(mustParse(t, tt.doc))
			if !errors.Is(err, walerrors.ErrSchema) {
				t.Fatalf("expected schema violation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q should name %q", err.Error(), tt.wantKey)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	th, err := FromScheme(mustParse(t, exampleScheme))
	if err != nil {
		t.Fatal(err)
	}

	data, err := th.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{
  "version": "1.0.0",
  "appearance": "dark",
  "icon": "./dynamic-theme.png",
  "name": "Pywal Dynamic",
  "description": "Automatically generated from Pywal",
  "palette": {
    "background": "#101010",
    "foreground": "#f0f0f0",
    "blue": "#00a",
    "green": "#0a0",
    "magenta": "#a0a",
    "orange": "#fa0",
    "purple": "#a0f",
    "red": "#a00",
    "yellow": "#aa0",
    "cyan": "#0aa"
  }
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("encoded theme mismatch (-want +got):\n%s", diff)
	}

	again, err := th.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("encoding should be deterministic")
	}

	if !json.Valid(data) {
		t.Error("encoded theme is not valid JSON")
	}
}

func TestPaletteGet(t *testing.T) {
	p := Palette{Background: "#000", Cyan: "#0ff"}

	if v, ok := p.Get("cyan"); !ok || v != "#0ff" {
		t.Errorf("Get(cyan) = (%q, %v)", v, ok)
	}
	if v, ok := p.Get("background"); !ok || v != "#000" {
		t.Errorf("Get(background) = (%q, %v)", v, ok)
	}
	if _, ok := p.Get("teal"); ok {
		t.Error("Get(teal) should not exist")
	}
	if len(Roles) != 10 {
		t.Errorf("expected 10 roles, got %d", len(Roles))
	}
}

package scheme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	walerrors "walremap/internal/errors"
)

const exampleScheme = `{
  "wallpaper": "/home/user/wall.png",
  "alpha": "100",
  "special": {"background": "#101010", "foreground": "#f0f0f0", "cursor": "#f0f0f0"},
  "colors": {
    "color0": "#0", "color1": "#a00", "color2": "#0a0", "color3": "#aa0",
    "color4": "#00a", "color5": "#a0a", "color6": "#0aa", "color7": "#ccc",
    "color11": "#fa0", "color13": "#a0f"
  }
}`

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind walerrors.ErrorType
		wantKey  string
	}{
		{
			name:  "valid scheme",
			input: exampleScheme,
		},
		{
			name:     "invalid JSON",
			input:    `{"special": {`,
			wantKind: walerrors.ErrTypeMalformed,
		},
		{
			name:     "trailing garbage",
			input:    `{"special": {}, "colors": {}} extra`,
			wantKind: walerrors.ErrTypeMalformed,
		},
		{
			name:     "empty input",
			input:    ``,
			wantKind: walerrors.ErrTypeMalformed,
		},
		{
			name:     "array root",
			input:    `[1, 2]`,
			wantKind: walerrors.ErrTypeSchema,
			wantKey:  "(root)",
		},
		{
			name:     "missing special",
			input:    `{"colors": {}}`,
			wantKind: walerrors.ErrTypeSchema,
			wantKey:  "special",
		},
		{
			name:     "colors not an object",
			input:    `{"special": {}, "colors": ["#000"]}`,
			wantKind: walerrors.ErrTypeSchema,
			wantKey:  "colors",
		},
		{
			name:     "unknown color slot",
			input:    `{"special": {}, "colors": {"color1": "#a00", "accent": "#fff"}}`,
			wantKind: walerrors.ErrTypeSchema,
			wantKey:  "colors.accent",
		},
		{
			name:     "slot beyond sixteen",
			input:    `{"special": {}, "colors": {"color16": "#fff"}}`,
			wantKind: walerrors.ErrTypeSchema,
			wantKey:  "colors.color16",
		},
		{
			name:     "non string slot",
			input:    `{"special": {}, "colors": {"color4": 4}}`,
			wantKind: walerrors.ErrTypeSchema,
			wantKey:  "colors.color4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(strings.NewReader(tt.input), "colors.json")
			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if s == nil {
					t.Fatal("expected scheme")
				}
				return
			}

			if err == nil {
				t.Fatalf("expected %s error, got nil", tt.wantKind)
			}
			if kind := walerrors.KindOf(err); kind != tt.wantKind {
				t.Errorf("KindOf() = %s, expected %s (%v)", kind, tt.wantKind, err)
			}
			if tt.wantKey != "" && !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q should name key %q", err.Error(), tt.wantKey)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	s, err := Parse(strings.NewReader(exampleScheme), "colors.json")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key         string
		expected    string
		expectError bool
	}{
		{"special.background", "#101010", false},
		{"special.foreground", "#f0f0f0", false},
		{"colors.color4", "#00a", false},
		{"colors.color11", "#fa0", false},
		{"colors.color13", "#a0f", false},
		{"colors.color8", "", true},
		{"colors.color99", "", true},
		{"special.highlight", "", true},
		{"palette.blue", "", true},
		{"background", "", true},
	}

	for _, tt := range tests {
		got, err := s.Lookup(tt.key)
		if tt.expectError {
			if err == nil {
				t.Errorf("Lookup(%q) expected error, got %q", tt.key, got)
			} else if !errors.Is(err, walerrors.ErrSchema) {
				t.Errorf("Lookup(%q) error should be a schema violation: %v", tt.key, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q) unexpected error: %v", tt.key, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Lookup(%q) = %q, expected %q", tt.key, got, tt.expected)
		}
	}

	if s.SlotsPresent() != 10 {
		t.Errorf("SlotsPresent() = %d, expected 10", s.SlotsPresent())
	}
}

func TestSpecialNonString(t *testing.T) {
	s, err := Parse(strings.NewReader(`{"special": {"background": null}, "colors": {}}`), "colors.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Special("background"); !errors.Is(err, walerrors.ErrSchema) {
		t.Errorf("expected schema violation, got %v", err)
	}
}

func TestSlotIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"color0", 0, true},
		{"color9", 9, true},
		{"color15", 15, true},
		{"color16", 0, false},
		{"color01", 0, false},
		{"color", 0, false},
		{"color-1", 0, false},
		{"Color1", 0, false},
		{"background", 0, false},
	}

	for _, tt := range tests {
		index, ok := SlotIndex(tt.name)
		if ok != tt.ok || index != tt.index {
			t.Errorf("SlotIndex(%q) = (%d, %v), expected (%d, %v)", tt.name, index, ok, tt.index, tt.ok)
		}
		if tt.ok && SlotName(index) != tt.name {
			t.Errorf("SlotName(%d) = %q, expected %q", index, SlotName(index), tt.name)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "nope.json")
		_, err := Load(path)
		if !errors.Is(err, walerrors.ErrSourceNotFound) {
			t.Fatalf("expected source-not-found, got %v", err)
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error %q should name the path", err.Error())
		}
	})

	t.Run("directory instead of file", func(t *testing.T) {
		_, err := Load(dir)
		if err == nil {
			t.Fatal("expected error")
		}
		if walerrors.KindOf(err) == walerrors.ErrTypeSourceNotFound {
			t.Errorf("a directory exists and should not be reported as missing: %v", err)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "colors.json")
		if err := os.WriteFile(path, []byte(exampleScheme), 0644); err != nil {
			t.Fatal(err)
		}
		s, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Path() != path {
			t.Errorf("Path() = %q, expected %q", s.Path(), path)
		}
	})
}

// Package scheme loads Pywal color-scheme documents.
// A scheme carries a "special" object with the named background and
// foreground colors and a "colors" object with sixteen indexed slots
// named color0 through color15.
package scheme

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"walremap/internal/errors"
)

// Section names of the source document.
const (
	SectionSpecial = "special"
	SectionColors  = "colors"
)

// SlotCount is the number of indexed color slots a Pywal scheme defines.
const SlotCount = 16

// Scheme is a validated, read-only view of a Pywal color document.
type Scheme struct {
	path    string
	special map[string]any
	colors  map[string]string
}

// Load reads and validates the color document at path.
func Load(path string) (*Scheme, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapSourceError(path, err)
	}
	defer file.Close()

	return Parse(file, path)
}

// Parse decodes a color document from r. path is only used for diagnostics.
func Parse(r io.Reader, path string) (*Scheme, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewUnexpectedError(path, "failed to read color scheme", err)
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.NewMalformedInputError(path, err)
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, errors.NewSchemaError(path, "(root)", "expected a JSON object")
	}

	special, err := section(root, SectionSpecial, path)
	if err != nil {
		return nil, err
	}

	rawColors, err := section(root, SectionColors, path)
	if err != nil {
		return nil, err
	}

	colors, err := parseColors(rawColors, path)
	if err != nil {
		return nil, err
	}

	return &Scheme{
		path:    path,
		special: special,
		colors:  colors,
	}, nil
}

func section(root map[string]any, name, path string) (map[string]any, error) {
	raw, ok := root[name]
	if !ok {
		return nil, errors.NewMissingKeyError(path, name)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.NewSchemaError(path, name, "expected a JSON object")
	}
	return obj, nil
}

// parseColors enforces the sixteen-slot naming convention. Unknown names are
// rejected rather than guessed at; slots may be absent until looked up.
func parseColors(raw map[string]any, path string) (map[string]string, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	// deterministic diagnostics when several keys are bad
	sort.Strings(names)

	colors := make(map[string]string, len(raw))
	for _, name := range names {
		key := SectionColors + "." + name
		if _, ok := SlotIndex(name); !ok {
			return nil, errors.NewSchemaError(path, key, "unknown color slot")
		}
		value, ok := raw[name].(string)
		if !ok {
			return nil, errors.NewSchemaError(path, key, "expected a string value")
		}
		colors[name] = value
	}
	return colors, nil
}

// SlotName returns the key of the indexed color slot, e.g. "color4".
func SlotName(index int) string {
	return "color" + strconv.Itoa(index)
}

// SlotIndex parses a slot key. It accepts exactly color0 through color15.
func SlotIndex(name string) (int, bool) {
	digits, ok := strings.CutPrefix(name, "color")
	if !ok || digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n >= SlotCount {
		return 0, false
	}
	return n, true
}

// Path returns the file the scheme was read from.
func (s *Scheme) Path() string {
	return s.path
}

// Special returns a string value from the "special" section.
func (s *Scheme) Special(name string) (string, error) {
	key := SectionSpecial + "." + name
	raw, ok := s.special[name]
	if !ok {
		return "", errors.NewMissingKeyError(s.path, key)
	}
	value, ok := raw.(string)
	if !ok {
		return "", errors.NewSchemaError(s.path, key, "expected a string value")
	}
	return value, nil
}

// Color returns the value of an indexed color slot.
func (s *Scheme) Color(index int) (string, error) {
	if index < 0 || index >= SlotCount {
		return "", errors.NewSchemaError(s.path, fmt.Sprintf("%s.color%d", SectionColors, index), "color slot out of range")
	}
	name := SlotName(index)
	value, ok := s.colors[name]
	if !ok {
		return "", errors.NewMissingKeyError(s.path, SectionColors+"."+name)
	}
	return value, nil
}

// Lookup resolves a dotted key such as "special.background" or "colors.color4".
func (s *Scheme) Lookup(key string) (string, error) {
	sectionName, name, ok := strings.Cut(key, ".")
	if !ok {
		return "", errors.NewSchemaError(s.path, key, "expected section.name")
	}

	switch sectionName {
	case SectionSpecial:
		return s.Special(name)
	case SectionColors:
		index, ok := SlotIndex(name)
		if !ok {
			return "", errors.NewSchemaError(s.path, key, "unknown color slot")
		}
		return s.Color(index)
	default:
		return "", errors.NewSchemaError(s.path, key, "unknown section")
	}
}

// SlotsPresent returns how many of the sixteen slots the document defines.
func (s *Scheme) SlotsPresent() int {
	return len(s.colors)
}

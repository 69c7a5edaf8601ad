package menutree

import "strings"

// Modifier is a bit set of key-equivalent modifier flags.
type Modifier uint8

const (
	ModCommand Modifier = 1 << iota
	ModShift
	ModOption
	ModControl
	ModFunction
)

var modifierNames = map[string]Modifier{
	"command":  ModCommand,
	"cmd":      ModCommand,
	"shift":    ModShift,
	"option":   ModOption,
	"alt":      ModOption,
	"control":  ModControl,
	"ctrl":     ModControl,
	"function": ModFunction,
	"fn":       ModFunction,
}

// ParseModifiers maps symbolic modifier names onto a Modifier set. Names are
// matched case-insensitively; unrecognized names are dropped.
func ParseModifiers(names []string) Modifier {
	var m Modifier
	for _, name := range names {
		if flag, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]; ok {
			m |= flag
		}
	}
	return m
}

// Has reports whether all flags in want are present.
func (m Modifier) Has(want Modifier) bool {
	return m&want == want
}

// String renders the set in a stable order for logs.
func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	parts := make([]string, 0, 5)
	for _, f := range []struct {
		flag Modifier
		name string
	}{
		{ModCommand, "command"},
		{ModShift, "shift"},
		{ModOption, "option"},
		{ModControl, "control"},
		{ModFunction, "function"},
	} {
		if m&f.flag != 0 {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "+")
}

package dialect

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode is a set of server SQL modes that change how text is tokenized.
type Mode uint8

const (
	// ANSIQuotes treats double-quoted text as an identifier.
	ANSIQuotes Mode = 1 << iota
	// NoBackslashEscapes disables backslash escapes inside strings.
	NoBackslashEscapes
)

var modeNames = map[string]Mode{
	"ANSI_QUOTES":          ANSIQuotes,
	"NO_BACKSLASH_ESCAPES": NoBackslashEscapes,
	// ANSI implies ANSI_QUOTES among other modes the tokenizer ignores.
	"ANSI": ANSIQuotes,
}

// Has reports whether all bits of other are set.
func (m Mode) Has(other Mode) bool {
	return m&other == other
}

// String renders the mode as a comma separated sql_mode value.
func (m Mode) String() string {
	var names []string
	if m.Has(ANSIQuotes) {
		names = append(names, "ANSI_QUOTES")
	}
	if m.Has(NoBackslashEscapes) {
		names = append(names, "NO_BACKSLASH_ESCAPES")
	}
	return strings.Join(names, ",")
}

// ParseMode converts sql_mode names into a Mode. Names may be given as
// separate elements or as comma separated lists.
func ParseMode(names ...string) (Mode, error) {
	var mode Mode
	for _, list := range names {
		for _, name := range strings.Split(list, ",") {
			name = strings.ToUpper(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			m, ok := modeNames[name]
			if !ok {
				return 0, errors.Errorf("unsupported sql mode %q", name)
			}
			mode |= m
		}
	}
	return mode, nil
}

package taginput

import "strings"

// Key identifies a keyboard key after normalization. Printable keys keep
// their character ("," or " "); named keys use the identifiers below.
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyTab       Key = "Tab"
	KeyBackspace Key = "Backspace"
	KeyArrowUp   Key = "ArrowUp"
	KeyArrowDown Key = "ArrowDown"
	KeyEscape    Key = "Escape"
	KeySpace     Key = " "
)

// keyAliases maps legacy and front-end specific names onto Key values.
// Lookups are case-insensitive for named keys.
var keyAliases = map[string]Key{
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace,
	"arrowup":   KeyArrowUp,
	"up":        KeyArrowUp,
	"arrowdown": KeyArrowDown,
	"down":      KeyArrowDown,
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"space":     KeySpace,
	"spacebar":  KeySpace,
}

// NormalizeKey maps a raw key identifier to its canonical Key. Single
// characters are returned unchanged so that "," stays "," and "A" stays "A".
func NormalizeKey(raw string) Key {
	if len([]rune(raw)) == 1 {
		return Key(raw)
	}
	if k, ok := keyAliases[strings.ToLower(raw)]; ok {
		return k
	}
	return Key(raw)
}

// KeyEvent is a key press reported by the front-end. Handlers call
// PreventDefault to tell the front-end not to apply the key's normal text
// editing behaviour.
type KeyEvent struct {
	Key Key
	Raw string

	prevented bool
}

// NewKeyEvent normalizes raw into a KeyEvent
func NewKeyEvent(raw string) *KeyEvent {
	return &KeyEvent{Key: NormalizeKey(raw), Raw: raw}
}

// PreventDefault suppresses the front-end's default handling
func (e *KeyEvent) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called
func (e *KeyEvent) DefaultPrevented() bool {
	return e.prevented
}

// delimiterSet holds normalized delimiter keys
type delimiterSet map[Key]struct{}

func newDelimiterSet(raw []string) delimiterSet {
	set := make(delimiterSet, len(raw))
	for _, d := range raw {
		set[NormalizeKey(d)] = struct{}{}
	}
	return set
}

func (s delimiterSet) has(k Key) bool {
	_, ok := s[k]
	return ok
}

package application

import "bytes"

// DefaultPrefixKey is Ctrl-].
const DefaultPrefixKey byte = 0x1d

type KeyActionKind int

const (
	KeyInput KeyActionKind = iota
	KeySwitch
	KeyNext
	KeyPrevious
	KeyClone
	KeyClose
	KeyList
	KeyQuit
)

type KeyAction struct {
	Kind KeyActionKind
	// Data holds the bytes to relay for KeyInput.
	Data []byte
	// Position is the 1-based tab position for KeySwitch.
	Position int
}

// Keymap splits raw keyboard chunks into relayed input and multiplexer
// commands introduced by a prefix key. The prefix may end one chunk and its
// command start the next.
type Keymap struct {
	prefix  byte
	pending bool
}

func NewKeymap(prefix byte) *Keymap {
	if prefix == 0 {
		prefix = DefaultPrefixKey
	}
	return &Keymap{prefix: prefix}
}

func (k *Keymap) Prefix() byte {
	return k.prefix
}

func (k *Keymap) Feed(chunk []byte) []KeyAction {
	var actions []KeyAction
	var input bytes.Buffer

	flush := func() {
		if input.Len() == 0 {
			return
		}
		data := make([]byte, input.Len())
		copy(data, input.Bytes())
		actions = append(actions, KeyAction{Kind: KeyInput, Data: data})
		input.Reset()
	}

	for _, b := range chunk {
		if !k.pending {
			if b == k.prefix {
				k.pending = true
				continue
			}
			input.WriteByte(b)
			continue
		}

		k.pending = false
		if b == k.prefix {
			input.WriteByte(b)
			continue
		}

		action, ok := commandFor(b)
		if !ok {
			continue
		}
		flush()
		actions = append(actions, action)
	}

	flush()
	return actions
}

func commandFor(b byte) (KeyAction, bool) {
	switch {
	case b >= '1' && b <= '9':
		return KeyAction{Kind: KeySwitch, Position: int(b - '0')}, true
	case b == 'n':
		return KeyAction{Kind: KeyNext}, true
	case b == 'p':
		return KeyAction{Kind: KeyPrevious}, true
	case b == 'c':
		return KeyAction{Kind: KeyClone}, true
	case b == 'x':
		return KeyAction{Kind: KeyClose}, true
	case b == 'l':
		return KeyAction{Kind: KeyList}, true
	case b == 'q':
		return KeyAction{Kind: KeyQuit}, true
	default:
		return KeyAction{}, false
	}
}

// ParsePrefixKey accepts "ctrl-<letter>", "ctrl-]" style names or a single
// character.
func ParsePrefixKey(raw string) (byte, bool) {
	lower := bytes.ToLower(bytes.TrimSpace([]byte(raw)))
	switch {
	case len(lower) == 0:
		return DefaultPrefixKey, true
	case len(lower) == 1:
		return lower[0], true
	}

	for _, name := range [][]byte{[]byte("ctrl-"), []byte("ctrl+"), []byte("c-"), []byte("^")} {
		if !bytes.HasPrefix(lower, name) {
			continue
		}
		rest := lower[len(name):]
		if len(rest) != 1 {
			return 0, false
		}
		switch c := rest[0]; {
		case c >= 'a' && c <= 'z':
			return c - 'a' + 1, true
		case c == '[', c == '\\', c == ']', c == '^', c == '_':
			return c - '@', true
		}
		return 0, false
	}

	return 0, false
}

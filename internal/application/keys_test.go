package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeymapPassesPlainInput(t *testing.T) {
	t.Parallel()

	keymap := NewKeymap(0)
	assert.Equal(t, []KeyAction{{Kind: KeyInput, Data: []byte("ls -la\r")}}, keymap.Feed([]byte("ls -la\r")))
	assert.Empty(t, keymap.Feed(nil))
}

func TestKeymapCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chunk string
		want  []KeyAction
	}{
		{name: "switch", chunk: "\x1d3", want: []KeyAction{{Kind: KeySwitch, Position: 3}}},
		{name: "next", chunk: "\x1dn", want: []KeyAction{{Kind: KeyNext}}},
		{name: "previous", chunk: "\x1dp", want: []KeyAction{{Kind: KeyPrevious}}},
		{name: "clone", chunk: "\x1dc", want: []KeyAction{{Kind: KeyClone}}},
		{name: "close", chunk: "\x1dx", want: []KeyAction{{Kind: KeyClose}}},
		{name: "list", chunk: "\x1dl", want: []KeyAction{{Kind: KeyList}}},
		{name: "quit", chunk: "\x1dq", want: []KeyAction{{Kind: KeyQuit}}},
		{name: "literal prefix", chunk: "\x1d\x1d", want: []KeyAction{{Kind: KeyInput, Data: []byte{0x1d}}}},
		{name: "unknown command dropped", chunk: "a\x1dzb", want: []KeyAction{{Kind: KeyInput, Data: []byte("ab")}}},
		{
			name:  "input around command",
			chunk: "ab\x1d2cd",
			want: []KeyAction{
				{Kind: KeyInput, Data: []byte("ab")},
				{Kind: KeySwitch, Position: 2},
				{Kind: KeyInput, Data: []byte("cd")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keymap := NewKeymap(DefaultPrefixKey)
			assert.Equal(t, tt.want, keymap.Feed([]byte(tt.chunk)))
		})
	}
}

func TestKeymapPrefixSpansChunks(t *testing.T) {
	t.Parallel()

	keymap := NewKeymap(DefaultPrefixKey)
	assert.Equal(t, []KeyAction{{Kind: KeyInput, Data: []byte("x")}}, keymap.Feed([]byte("x\x1d")))
	assert.Equal(t, []KeyAction{{Kind: KeyNext}}, keymap.Feed([]byte("n")))
}

func TestParsePrefixKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want byte
		ok   bool
	}{
		{raw: "", want: DefaultPrefixKey, ok: true},
		{raw: "ctrl-]", want: 0x1d, ok: true},
		{raw: "Ctrl-A", want: 0x01, ok: true},
		{raw: "ctrl+b", want: 0x02, ok: true},
		{raw: "^]", want: 0x1d, ok: true},
		{raw: "C-\\", want: 0x1c, ok: true},
		{raw: "`", want: '`', ok: true},
		{raw: "ctrl-1", ok: false},
		{raw: "ctrl-ab", ok: false},
		{raw: "meta-x", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParsePrefixKey(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.raw)
		}
	}
}

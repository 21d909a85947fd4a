package pathfinder

import (
	"errors"
	"testing"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name string
		key  []rune
		want bool
	}{
		{"ascii", []rune("data"), true},
		{"space", []rune("my data"), true},
		{"latin1 upper bound", []rune("cafÿ"), true},
		{"lower bound", []rune{0x20}, true},
		{"empty", nil, false},
		{"control", []rune("a\tb"), false},
		{"nul", []rune{'a', 0}, false},
		{"beyond latin1", []rune("Ā"), false},
		{"emoji", []rune("key\U0001F600"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateKey(tt.key); got != tt.want {
				t.Errorf("ValidateKey(%q) = %v, want %v", string(tt.key), got, tt.want)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	key, ok := KeyString("café")
	if !ok || key != "caf\xe9" {
		t.Errorf("KeyString(café) = %q, %v", key, ok)
	}

	if key != keyBytes([]rune("café")) {
		t.Errorf("KeyString and keyBytes disagree: %q", key)
	}

	if got := DisplayKey(key); got != "café" {
		t.Errorf("DisplayKey = %q", got)
	}

	if _, ok := KeyString("Ā"); ok {
		t.Error("KeyString accepted a character beyond Latin-1")
	}
}

func TestSplit(t *testing.T) {
	lit := func(s string) Token { return Token{Kind: TokenLiteral, Text: []rune(s)} }
	env := func(s string) Token { return Token{Kind: TokenEnv, Text: []rune(s)} }

	tests := []struct {
		name  string
		value string
		want  []Token
		err   error
	}{
		{"plain", "/usr/lib", []Token{lit("/usr/lib")}, nil},
		{"interleaved", "a\x00HOME\x00b", []Token{lit("a"), env("HOME"), lit("b")}, nil},
		{"only reference", "\x00HOME\x00", []Token{env("HOME")}, nil},
		{"empty name", "a\x00\x00b", []Token{lit("a"), lit("b")}, nil},
		{"adjacent references", "\x00A\x00\x00B\x00", []Token{env("A"), env("B")}, nil},
		{"unpaired", "a\x00HOME", []Token{lit("a")}, ErrBadDelimiters},
		{"unpaired after pair", "\x00A\x00b\x00", []Token{env("A"), lit("b")}, ErrBadDelimiters},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split([]rune(tt.value))
			if !errors.Is(err, tt.err) {
				t.Fatalf("error = %v, want %v", err, tt.err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %v", len(got), got, tt.want)
			}

			for i := range got {
				if got[i].Kind != tt.want[i].Kind ||
					string(got[i].Text) != string(tt.want[i].Text) {
					t.Errorf("token %d = %v %q, want %v %q", i,
						got[i].Kind, string(got[i].Text),
						tt.want[i].Kind, string(tt.want[i].Text))
				}
			}
		})
	}
}

func TestTokens_StopEarly(t *testing.T) {
	n := 0

	for range Tokens([]rune("a\x00B\x00c\x00D\x00")) {
		n++

		if n == 2 {
			break
		}
	}

	if n != 2 {
		t.Errorf("iterated %d tokens", n)
	}
}

func TestToNative(t *testing.T) {
	tests := []struct {
		name string
		in   []rune
		want string
	}{
		{"ascii", []rune("abc"), "abc"},
		{"multibyte", []rune("é\U0001F600"), "é\U0001F600"},
		{"surrogate", []rune{'a', 0xD800}, ""},
		{"beyond max", []rune{0x110000}, ""},
		{"negative", []rune{-5}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNative(tt.in); got != tt.want {
				t.Errorf("ToNative = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvList(t *testing.T) {
	env := EnvList([]string{"A=1", "B=x=y", "junk", "A=2", "E="})

	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"A", "2", true},
		{"B", "x=y", true},
		{"E", "", true},
		{"junk", "", false},
	}

	for _, tt := range tests {
		v, ok := env.LookupEnv(tt.name)
		if v != tt.value || ok != tt.ok {
			t.Errorf("LookupEnv(%q) = %q, %v", tt.name, v, ok)
		}
	}
}

func TestCharName(t *testing.T) {
	tests := []struct {
		in   rune
		want string
	}{
		{0, `"Null"`},
		{'\n', `"LF"`},
		{'\r', `"CR"`},
		{'\t', `"TAB"`},
		{0x1B, "0x1B"},
		{0x7F, "0x7F"},
		{'é', "0xE9"},
		{'}', "'}'"},
		{' ', "' '"},
	}

	for _, tt := range tests {
		if got := charName(tt.in); got != tt.want {
			t.Errorf("charName(%U) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

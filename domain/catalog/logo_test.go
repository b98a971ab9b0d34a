package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogoInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "Echo", "E"},
		{"two words", "Mistral Chat", "MC"},
		{"more than two words uses first two", "Open Source Helper", "OS"},
		{"lowercase input upper-cased", "claude", "C"},
		{"empty name", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLogo(tt.in).Initials)
		})
	}
}

func TestNewLogoDeterministic(t *testing.T) {
	// The logo is a pure function of the name: repeated derivations agree
	// regardless of when they happen.
	a := NewLogo("Echo")
	b := NewLogo("Echo")

	assert.Equal(t, a, b)
	assert.Regexp(t, `^hsl\(\d+, 70%, 45%\)$`, a.BackgroundColor)
}

func TestNewLogoColorsSpread(t *testing.T) {
	// Not a strong guarantee, just a sanity check that the hash is not
	// collapsing everything onto one hue.
	seen := map[string]bool{}
	for _, name := range []string{"Echo", "Mistral Chat", "AutoGPT", "LangChain"} {
		seen[NewLogo(name).BackgroundColor] = true
	}
	assert.Greater(t, len(seen), 1)
}

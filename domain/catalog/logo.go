package catalog

import (
	"fmt"
	"strings"
)

// Logo is the derived display asset for an agent. It is computed once at
// creation time from the name and is never user-editable.
type Logo struct {
	BackgroundColor string `json:"backgroundColor"`
	Initials        string `json:"initials"`
}

// NewLogo derives a logo from the agent name. The derivation is a pure
// function of the name: the same name always yields the same color and
// initials, regardless of when or where it is computed.
func NewLogo(name string) Logo {
	return Logo{
		BackgroundColor: logoColor(name),
		Initials:        logoInitials(name),
	}
}

// logoColor maps the name hash onto the hue wheel at fixed saturation and
// lightness, so adjacent names spread across visually distinct colors.
func logoColor(name string) string {
	var h uint32
	for _, r := range name {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("hsl(%d, 70%%, 45%%)", h%360)
}

// logoInitials takes the first letter of up to the first two space-separated
// words, upper-cased.
func logoInitials(name string) string {
	words := strings.Fields(name)
	if len(words) > 2 {
		words = words[:2]
	}
	var b strings.Builder
	for _, w := range words {
		first := []rune(w)[0]
		b.WriteString(strings.ToUpper(string(first)))
	}
	return b.String()
}

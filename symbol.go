package oledgen

import "strings"

// Used when a name has no usable characters at all
const placeholderSymbol = "unnamed"

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// Sanitize maps an arbitrary animation name to a lower case C identifier.
// Runs of characters outside [A-Za-z0-9] become a single underscore, leading
// and trailing underscores are dropped and a leading digit gets an underscore
// prefix.
func Sanitize(name string) string {
	var b strings.Builder
	pending := false
	for _, r := range name {
		if !isAlnum(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}

	s := strings.ToLower(b.String())
	switch {
	case s == "":
		return placeholderSymbol
	case s[0] >= '0' && s[0] <= '9':
		return "_" + s
	}
	return s
}

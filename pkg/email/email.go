package email

import (
	"strings"
	"unicode"
)

// DisplayName derives a human-friendly name from an email address, used when
// the identity provider supplies no display name. "ann.smith@x.com" → "Ann".
func DisplayName(address string) string {
	localPart := address
	if at := strings.IndexByte(address, '@'); at > 0 {
		localPart = address[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	if len(parts) == 0 {
		return "Friend"
	}
	return capitalize(parts[0])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

package shared

import (
	"strings"
	"unicode"
)

const maxSlugRunes = 80

// Slugify lowercases s and keeps letters and digits of any script; every
// other run of characters becomes a single '-'. The result is trimmed of
// dashes and capped at 80 runes.
func Slugify(s string) string {
	var b strings.Builder
	runes := 0
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if runes >= maxSlugRunes {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && runes > 0 {
				b.WriteByte('-')
				runes++
				if runes >= maxSlugRunes {
					break
				}
			}
			pendingDash = false
			b.WriteRune(r)
			runes++
			continue
		}
		pendingDash = true
	}
	return strings.TrimRight(b.String(), "-")
}

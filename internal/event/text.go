package event

import "unicode/utf8"

// SplitText breaks s into Text events of at most TextMaxLength bytes each,
// cutting only on rune boundaries. An empty string yields no events.
func SplitText(s string) []Text {
	var out []Text
	for len(s) > TextMaxLength {
		cut := TextMaxLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		if cut == 0 {
			// not valid UTF-8; fall back to a byte cut
			cut = TextMaxLength
		}
		out = append(out, Text{Text: s[:cut]})
		s = s[cut:]
	}
	if s != "" {
		out = append(out, Text{Text: s})
	}
	return out
}

package domain

import (
	"strings"
)

// NormalizeReading prepares an analyzer reading for storage:
//   - trims leading/trailing whitespace
//   - treats the "*" placeholder used by IPA-style dictionaries as empty
func NormalizeReading(reading string) string {
	reading = strings.TrimSpace(reading)
	if reading == "*" {
		return ""
	}
	return reading
}

// ToHiragana converts katakana letters (ァ..ヶ) to their hiragana
// counterparts. The prolonged sound mark and any non-katakana characters are
// left untouched.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'ァ' && r <= 'ヶ' {
			return r - ('ァ' - 'ぁ')
		}
		return r
	}, s)
}

package tokenize

import "unicode"

// Script classification helpers.
//
// There is exactly one canonical character-level script table. A script is
// "character-level" (scriptio continua) when it carries no word boundaries
// and is tokenized one code point at a time: CJK ideographs, Japanese kana,
// Thai, Lao, Myanmar, Khmer. Hangul is deliberately absent — Korean is
// space-delimited and tokenizes as whole words, never as syllables.
var charLevelRanges = [...][2]rune{
	{0x4E00, 0x9FFF},  // CJK Unified Ideographs
	{0x3400, 0x4DBF},  // CJK Extension A
	{0x3040, 0x309F},  // Hiragana
	{0x30A0, 0x30FF},  // Katakana
	{0x0E00, 0x0E7F},  // Thai
	{0x0E80, 0x0EFF},  // Lao
	{0x1000, 0x109F},  // Myanmar
	{0x1780, 0x17FF},  // Khmer
}

// isCharLevelScript reports whether r belongs to a script tokenized one code
// point at a time.
func isCharLevelScript(r rune) bool {
	for _, rg := range charLevelRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// isCJKIdeograph reports whether r is a Han ideograph (incl. Extension A).
// Used by the mixed Latin+CJK token exception; kana and Thai do not qualify.
func isCJKIdeograph(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF)
}

// isLatinLetter reports whether r is a Latin-script letter.
func isLatinLetter(r rune) bool {
	return unicode.Is(unicode.Latin, r)
}

// emojiRanges covers the common emoji blocks across the basic multilingual
// and supplementary planes.
var emojiRanges = [...][2]rune{
	{0x1F600, 0x1F64F}, // Emoticons
	{0x1F300, 0x1F5FF}, // Misc Symbols & Pictographs
	{0x1F680, 0x1F6FF}, // Transport & Map
	{0x1F1E6, 0x1F1FF}, // Regional Indicators (flags)
	{0x2600, 0x26FF},   // Misc Symbols
	{0x2700, 0x27BF},   // Dingbats
	{0x1F900, 0x1F9FF}, // Supplemental Symbols & Pictographs
	{0x1FA70, 0x1FAFF}, // Symbols & Pictographs Extended-A
}

func isEmojiRune(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// isEmojiModifier reports whether r joins or modifies an emoji sequence:
// ZWJ, variation selectors, skin-tone modifiers, and tag characters.
func isEmojiModifier(r rune) bool {
	switch r {
	case 0x200D, 0xFE0E, 0xFE0F:
		return true
	}
	return (r >= 0x1F3FB && r <= 0x1F3FF) || (r >= 0xE0020 && r <= 0xE007F)
}

// isEmojiSequence reports whether every code point of s is an emoji or a
// known modifier. An empty string is not an emoji sequence.
func isEmojiSequence(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isEmojiRune(r) && !isEmojiModifier(r) {
			return false
		}
	}
	return true
}

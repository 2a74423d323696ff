package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCharLevelScript(t *testing.T) {
	assert.True(t, isCharLevelScript('中'))  // Han
	assert.True(t, isCharLevelScript('あ'))  // Hiragana
	assert.True(t, isCharLevelScript('カ'))  // Katakana
	assert.True(t, isCharLevelScript('ท'))  // Thai
	assert.True(t, isCharLevelScript('ြ'))  // Myanmar
	assert.True(t, isCharLevelScript('ក'))  // Khmer

	// Hangul is word-level, never character-level.
	assert.False(t, isCharLevelScript('한'))
	assert.False(t, isCharLevelScript('a'))
	assert.False(t, isCharLevelScript('م')) // Arabic is space-delimited
}

func TestIsCJKIdeograph(t *testing.T) {
	assert.True(t, isCJKIdeograph('中'))
	assert.False(t, isCJKIdeograph('あ')) // kana are not ideographs
	assert.False(t, isCJKIdeograph('한'))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, CaseLowercase, cfg.CaseHandling)
	assert.True(t, cfg.NormalizeUnicode)
	assert.True(t, cfg.ExtractHashtags)
	assert.True(t, cfg.ExtractMentions)
	assert.False(t, cfg.ExtractCashtags)
	assert.True(t, cfg.IncludeURLs)
	assert.True(t, cfg.IncludeEmails)
	assert.False(t, cfg.IncludeEmoji)
	assert.True(t, cfg.IncludeNumeric)
	assert.False(t, cfg.IncludePunctuation)
	assert.Equal(t, 1, cfg.MinTokenLength)
	assert.Equal(t, 0, cfg.MaxTokenLength)
	assert.True(t, cfg.StripWhitespace)
	assert.Equal(t, FamilyMixed, cfg.FallbackFamily)
}

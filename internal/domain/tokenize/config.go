// Package tokenize implements Unicode-aware tokenization of social-media text.
// It segments noisy, multi-script input into an ordered token sequence while
// preserving social-media entities (hashtags, mentions, URLs, emails, cashtags,
// emoji) as atomic tokens, routing script families correctly (space-delimited
// Latin/Arabic/Korean vs. character-segmented CJK/Thai), and applying
// configurable case folding, normalization, and length filtering.
package tokenize

import (
	"fmt"
	"strings"
)

// CaseHandling selects the case transform applied before extraction.
type CaseHandling string

const (
	CasePreserve  CaseHandling = "preserve"
	CaseLowercase CaseHandling = "lowercase"
	CaseUppercase CaseHandling = "uppercase"
	// CaseNormalize is reserved for smart casing. It currently behaves as
	// lowercase; kept as a distinct value so configs round-trip.
	CaseNormalize CaseHandling = "normalize"
)

// LanguageFamily routes tokenization strategy when script detection is
// inconclusive. Mixed applies every strategy in a single pass.
type LanguageFamily string

const (
	FamilyLatin   LanguageFamily = "latin"
	FamilyCJK     LanguageFamily = "cjk"
	FamilyArabic  LanguageFamily = "arabic"
	FamilyMixed   LanguageFamily = "mixed"
	FamilyUnknown LanguageFamily = "unknown"
)

// Config enumerates every tokenization option. It is pure data: construct it
// once, never mutate it during a Tokenize call, reuse it across calls.
//
// Entity semantics:
//   - ExtractHashtags/ExtractMentions/ExtractCashtags: when false the symbol
//     is dropped and the remainder tokenizes as plain words.
//   - IncludeURLs/IncludeEmails/IncludeNumeric: when false the whole entity is
//     blanked out before extraction — it never fragments into component words.
type Config struct {
	// Preprocessing
	CaseHandling     CaseHandling
	NormalizeUnicode bool // NFKC normalization before extraction

	// Social-media entities
	ExtractHashtags bool
	ExtractMentions bool
	ExtractCashtags bool
	IncludeURLs     bool
	IncludeEmails   bool

	// Token type filtering
	IncludeEmoji       bool
	IncludeNumeric     bool
	IncludePunctuation bool

	// Output shaping
	MinTokenLength  int // in runes; tokens shorter than this are dropped
	MaxTokenLength  int // in runes; 0 means no upper bound
	StripWhitespace bool

	// Strategy when script detection is inconclusive
	FallbackFamily LanguageFamily
}

// DefaultConfig returns the standard social-media tokenization settings:
// lowercase, NFKC-normalized, hashtags and mentions preserved, URLs and
// emails kept atomic, emoji and punctuation dropped.
func DefaultConfig() Config {
	return Config{
		CaseHandling:       CaseLowercase,
		NormalizeUnicode:   true,
		ExtractHashtags:    true,
		ExtractMentions:    true,
		ExtractCashtags:    false,
		IncludeURLs:        true,
		IncludeEmails:      true,
		IncludeEmoji:       false,
		IncludeNumeric:     true,
		IncludePunctuation: false,
		MinTokenLength:     1,
		MaxTokenLength:     0,
		StripWhitespace:    true,
		FallbackFamily:     FamilyMixed,
	}
}

// Fingerprint returns a stable key identifying every option that affects
// compiled patterns. Two configs with equal fingerprints produce equivalent
// matchers, so the pattern cache keys on it.
func (c Config) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "case=%s;nfkc=%t;", c.CaseHandling, c.NormalizeUnicode)
	fmt.Fprintf(&b, "ht=%t;mn=%t;ct=%t;", c.ExtractHashtags, c.ExtractMentions, c.ExtractCashtags)
	fmt.Fprintf(&b, "url=%t;em=%t;", c.IncludeURLs, c.IncludeEmails)
	fmt.Fprintf(&b, "ej=%t;num=%t;punct=%t;", c.IncludeEmoji, c.IncludeNumeric, c.IncludePunctuation)
	fmt.Fprintf(&b, "fam=%s", c.FallbackFamily)
	return b.String()
}

package tokenize

import (
	"regexp"
	"strings"
	"sync"
)

// Base pattern fragments. These are combined into per-configuration composite
// matchers by Library; the fragments themselves never change at runtime.
//
// Alternation order inside each fragment matters: Go's regexp engine prefers
// earlier alternatives at the same position, so more specific shapes come
// first.
const (
	// latinClass covers basic Latin plus Latin-1 Supplement, Extended-A/B,
	// and Latin Extended Additional letters.
	latinClass = `[a-zA-Z\x{00C0}-\x{024F}\x{1E00}-\x{1EFF}]`

	// patternURL matches scheme URLs, www-prefixed hosts, and bare
	// domain-like tokens with a ≥2-letter TLD and optional path.
	patternURL = `(?:` +
		`https?://\S+|` +
		`www\.\S+|` +
		`[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}(?:/\S*)?` +
		`)`

	patternEmail = `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`

	// Mentions and hashtags use the Unicode word class so non-Latin handles
	// (Korean, Arabic, Cyrillic) are captured whole.
	patternMention = `@[\p{L}\p{N}_]+`
	patternHashtag = `#[\p{L}\p{N}_]+`

	// Cashtags are 1–5 uppercase letters and stay case-sensitive inside the
	// otherwise case-insensitive composite. RE2 has no lookahead; the word
	// boundary stands in for "not followed by a word character".
	patternCashtag = `(?-i:\$[A-Z]{1,5})\b`

	// patternNumeric: ordinals, currency-prefixed amounts, separator-grouped
	// numbers (200,000 and 1,234,567), then plain integers/decimals with an
	// optional trailing percent sign.
	patternNumeric = `(?:` +
		`\d+(?:st|nd|rd|th)\b|` +
		`[$€£¥₹₽¢]\d+(?:[.,]\d+)*|` +
		`\d{1,3}(?:,\d{3})+(?:\.\d+)?%?|` +
		`\d+\.\d+%?|` +
		`\d+[.,]\d+|` +
		`\d+%?` +
		`)`

	patternEmoji = `[` +
		`\x{1F600}-\x{1F64F}` + // Emoticons
		`\x{1F300}-\x{1F5FF}` + // Misc Symbols & Pictographs
		`\x{1F680}-\x{1F6FF}` + // Transport & Map
		`\x{1F1E6}-\x{1F1FF}` + // Regional Indicators
		`\x{2600}-\x{26FF}` + // Misc Symbols
		`\x{2700}-\x{27BF}` + // Dingbats
		`\x{1F900}-\x{1F9FF}` + // Supplemental Symbols & Pictographs
		`\x{1FA70}-\x{1FAFF}` + // Symbols & Pictographs Extended-A
		`]`

	// patternLatinWord permits internal abbreviation dots (U.S., c.e.o.s),
	// hyphens and straight/curly apostrophes (self-aware, don't, John’s),
	// and at most one trailing dot.
	patternLatinWord = latinClass + `+(?:['’.\-]` + latinClass + `+)*\.?`

	// Korean tokenizes as whole space-delimited words — a run of Hangul
	// syllables is one token, never split per syllable.
	patternKoreanWord = `[\x{AC00}-\x{D7AF}]+`

	// Character-level script runs. These match as a single span and are
	// decomposed into per-character tokens after extraction.
	patternCJKRun = `[\x{4E00}-\x{9FFF}\x{3400}-\x{4DBF}\x{3040}-\x{309F}\x{30A0}-\x{30FF}]+`

	patternArabicRun = `[\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}]+`
	patternThaiRun   = `[\x{0E00}-\x{0E7F}]+`
	// Khmer, Myanmar, Buginese, Balinese
	patternSEARun = `[\x{1780}-\x{17FF}\x{1000}-\x{109F}\x{1A00}-\x{1A1F}\x{1B00}-\x{1B7F}]+`

	patternPunctuation = `[.!?;:,\-()\[\]{}"']`

	// catchAll is the degraded matcher substituted when a composite fails
	// to compile: any non-space run.
	catchAll = `\S+`
)

// patternWord is the full multilingual word alternation.
var patternWord = `(?:` + strings.Join([]string{
	patternLatinWord,
	patternKoreanWord,
	patternCJKRun,
	patternArabicRun,
	patternThaiRun,
	patternSEARun,
}, `|`) + `)`

// Compiler turns a pattern string into a matcher. The stdlib RE2 engine is
// the primary implementation; alternates can be swapped in for tests or for
// engines with different guarantees.
type Compiler interface {
	Compile(expr string) (*regexp.Regexp, error)
}

// StdCompiler compiles with the standard library's linear-time RE2 engine.
type StdCompiler struct{}

func (StdCompiler) Compile(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(expr)
}

// PatternSet holds the compiled matchers for one configuration.
type PatternSet struct {
	// Comprehensive matches every enabled token type in priority order:
	// URL, email, mention, hashtag, cashtag, emoji, numeric, word,
	// punctuation. A single find-all pass yields tokens in document order.
	Comprehensive *regexp.Regexp

	// Exclusion matches entities that are disabled outright (URLs, emails,
	// numerics) so they can be blanked before extraction. Nil when nothing
	// is excluded.
	Exclusion *regexp.Regexp
}

// Library compiles and caches PatternSets keyed by configuration
// fingerprint. Construction is idempotent — recompiling for the same key
// yields an equivalent set — so the cache is a plain mutex-guarded map with
// no double-build protection beyond the lock.
//
// A Library is an explicit value passed to each Tokenizer; there is no
// package-level singleton.
type Library struct {
	compiler Compiler

	mu    sync.Mutex
	cache map[string]*PatternSet
}

// NewLibrary returns a Library backed by the stdlib regexp engine.
func NewLibrary() *Library {
	return NewLibraryWith(StdCompiler{})
}

// NewLibraryWith returns a Library using the given compiler strategy.
func NewLibraryWith(c Compiler) *Library {
	return &Library{
		compiler: c,
		cache:    make(map[string]*PatternSet),
	}
}

// For returns the PatternSet for cfg, building and caching it on first use.
// It never fails: compile errors degrade to the catch-all matcher.
func (l *Library) For(cfg Config) *PatternSet {
	key := cfg.Fingerprint()

	l.mu.Lock()
	defer l.mu.Unlock()
	if ps, ok := l.cache[key]; ok {
		return ps
	}
	ps := &PatternSet{
		Comprehensive: l.compileComprehensive(cfg),
		Exclusion:     l.compileExclusion(cfg),
	}
	l.cache[key] = ps
	return ps
}

// compileComprehensive builds the single alternation of all enabled token
// types, in priority order. Entities precede the generic word pattern so the
// word pattern cannot consume their content.
func (l *Library) compileComprehensive(cfg Config) *regexp.Regexp {
	var parts []string
	if cfg.IncludeURLs {
		parts = append(parts, patternURL)
	}
	if cfg.IncludeEmails {
		parts = append(parts, patternEmail)
	}
	if cfg.ExtractMentions {
		parts = append(parts, patternMention)
	}
	if cfg.ExtractHashtags {
		parts = append(parts, patternHashtag)
	}
	if cfg.ExtractCashtags {
		parts = append(parts, patternCashtag)
	}
	if cfg.IncludeEmoji {
		parts = append(parts, patternEmoji)
	}
	if cfg.IncludeNumeric {
		parts = append(parts, patternNumeric)
	}
	// The word pattern is the core tokenization and is always present.
	parts = append(parts, patternWord)
	if cfg.IncludePunctuation {
		parts = append(parts, patternPunctuation)
	}

	expr := `(?i)(?:` + strings.Join(parts, `|`) + `)`
	re, err := l.compiler.Compile(expr)
	if err != nil {
		return regexp.MustCompile(catchAll)
	}
	return re
}

// compileExclusion builds the matcher for entities whose extraction is
// disabled. Returns nil when nothing is excluded, so the tokenizer can skip
// the blanking pass entirely.
func (l *Library) compileExclusion(cfg Config) *regexp.Regexp {
	var parts []string
	if !cfg.IncludeURLs {
		parts = append(parts, patternURL)
	}
	if !cfg.IncludeEmails {
		parts = append(parts, patternEmail)
	}
	if !cfg.IncludeNumeric {
		parts = append(parts, patternNumeric)
	}
	if len(parts) == 0 {
		return nil
	}

	expr := `(?i)(?:` + strings.Join(parts, `|`) + `)`
	re, err := l.compiler.Compile(expr)
	if err != nil {
		return nil
	}
	return re
}

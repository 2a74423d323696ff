package tokenize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer turns free-form social-media text into an ordered token
// sequence. It is cheap to construct and stateless beyond its config and
// pattern handle; a single Tokenizer may be used from multiple goroutines.
type Tokenizer struct {
	cfg      Config
	patterns *PatternSet
}

// New builds a Tokenizer for cfg using lib's compiled patterns.
// A nil lib gets a private Library.
func New(cfg Config, lib *Library) *Tokenizer {
	if lib == nil {
		lib = NewLibrary()
	}
	return &Tokenizer{cfg: cfg, patterns: lib.For(cfg)}
}

// Config returns the tokenizer's configuration.
func (t *Tokenizer) Config() Config { return t.cfg }

// Tokenize extracts tokens from text in document order.
//
// The pipeline is a single left-to-right pass: preprocess (NFKC + case
// folding), blank out excluded entities, find-all with the comprehensive
// pattern, then per-token cleanup (URL trailing punctuation, character-level
// script splitting) and the postprocess filter (whitespace, emoji, length
// bounds). Empty input yields nil; the result is deterministic for a given
// (text, config) pair.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	text = t.preprocess(text)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := t.extract(text)
	return t.postprocess(tokens)
}

// preprocess applies Unicode normalization and case folding.
func (t *Tokenizer) preprocess(text string) string {
	if t.cfg.NormalizeUnicode {
		text = norm.NFKC.String(text)
	}
	switch t.cfg.CaseHandling {
	case CaseLowercase:
		text = strings.ToLower(text)
	case CaseUppercase:
		text = strings.ToUpper(text)
	case CaseNormalize:
		// Smart casing is not implemented; behaves as lowercase.
		text = strings.ToLower(text)
	}
	return text
}

// extract runs the exclusion blanking and the comprehensive find-all pass,
// then applies per-token cleanup in document order.
func (t *Tokenizer) extract(text string) []string {
	// Blank out disabled entities so they vanish whole instead of being
	// fragmented into component words.
	if t.patterns.Exclusion != nil {
		text = t.patterns.Exclusion.ReplaceAllString(text, " ")
		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			return nil
		}
	}

	raw := t.patterns.Comprehensive.FindAllString(text, -1)
	if len(raw) == 0 {
		// Pure emoji or pure punctuation content the patterns missed:
		// surface the trimmed input as a single token rather than nothing.
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	var tokens []string
	for _, tok := range raw {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		if isURLLike(tok) {
			tok = trimURLPunct(tok)
		}

		switch t.cfg.FallbackFamily {
		case FamilyCJK:
			if containsCharLevel(tok) && isPureCharLevel(tok) {
				tokens = append(tokens, explodeRunes(tok)...)
				continue
			}
			tokens = append(tokens, tok)
		case FamilyMixed:
			tokens = append(tokens, splitMixedScript(tok)...)
		default:
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// postprocess applies the configured output filters in order: whitespace
// stripping, emoji exclusion, and rune-length bounds.
func (t *Tokenizer) postprocess(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := tokens[:0]
	for _, tok := range tokens {
		if t.cfg.StripWhitespace {
			tok = strings.TrimSpace(tok)
		}
		if tok == "" {
			continue
		}
		if !t.cfg.IncludeEmoji && isEmojiSequence(tok) {
			continue
		}
		n := utf8.RuneCountInString(tok)
		if n < t.cfg.MinTokenLength {
			continue
		}
		if t.cfg.MaxTokenLength > 0 && n > t.cfg.MaxTokenLength {
			continue
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// splitMixedScript decomposes a token containing character-level script code
// points. Character-level runs longer than one rune flush as individual
// single-character tokens; everything else flushes whole.
//
// Exception: a non-entity token mixing Latin letters with CJK ideographs is
// kept intact ("iPhone用户" stays one token). Hangul never participates —
// it is not character-level, so Korean words pass through untouched.
func splitMixedScript(tok string) []string {
	if !containsCharLevel(tok) {
		return []string{tok}
	}

	entity := strings.HasPrefix(tok, "@") || strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, "$")
	if !entity && containsLatin(tok) && containsIdeograph(tok) {
		return []string{tok}
	}

	var out []string
	var run []rune
	runCharLevel := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		if runCharLevel && len(run) > 1 {
			for _, r := range run {
				out = append(out, string(r))
			}
		} else {
			out = append(out, string(run))
		}
		run = run[:0]
	}

	for _, r := range tok {
		cl := isCharLevelScript(r)
		if len(run) > 0 && cl != runCharLevel {
			flush()
		}
		runCharLevel = cl
		run = append(run, r)
	}
	flush()
	return out
}

func containsCharLevel(s string) bool {
	for _, r := range s {
		if isCharLevelScript(r) {
			return true
		}
	}
	return false
}

func isPureCharLevel(s string) bool {
	for _, r := range s {
		if !isCharLevelScript(r) && !isSpace(r) {
			return false
		}
	}
	return true
}

func containsLatin(s string) bool {
	for _, r := range s {
		if isLatinLetter(r) {
			return true
		}
	}
	return false
}

func containsIdeograph(s string) bool {
	for _, r := range s {
		if isCJKIdeograph(r) {
			return true
		}
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func explodeRunes(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// abbreviationRE matches dotted abbreviations like "u.s." and "c.e.o.s":
// short alphabetic runs separated by dots, optional trailing dot. These are
// words, not domains, and must not get URL cleanup.
var abbreviationRE = regexp.MustCompile(`^(?i)[a-z]{1,3}(?:\.[a-z]{1,3})+\.?$`)

// isURLLike reports whether tok should receive URL cleanup: an explicit
// scheme or www prefix, or a domain-shaped token that is not an
// abbreviation. Emails are excluded.
func isURLLike(tok string) bool {
	if isEmailLike(tok) {
		return false
	}
	if strings.HasPrefix(tok, "http://") || strings.HasPrefix(tok, "https://") ||
		strings.HasPrefix(tok, "www.") || strings.Contains(tok, "://") {
		return true
	}
	if strings.Contains(tok, ".") && !strings.Contains(tok, "@") && containsAlpha(tok) {
		return !abbreviationRE.MatchString(tok)
	}
	return false
}

func isEmailLike(tok string) bool {
	return strings.Contains(tok, "@") && strings.Contains(tok, ".") && !strings.HasPrefix(tok, "@")
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return true
		}
	}
	return false
}

// trimURLPunct strips sentence punctuation trailing a URL ("see x.com." →
// "x.com").
func trimURLPunct(tok string) string {
	return strings.TrimRight(tok, `.!?;:,)]}"'`)
}

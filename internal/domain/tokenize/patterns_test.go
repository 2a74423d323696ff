package tokenize

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_CachesByFingerprint(t *testing.T) {
	lib := NewLibrary()
	a := lib.For(DefaultConfig())
	b := lib.For(DefaultConfig())
	assert.Same(t, a, b)

	cfg := DefaultConfig()
	cfg.IncludePunctuation = true
	c := lib.For(cfg)
	assert.NotSame(t, a, c)
}

func TestLibrary_NoExclusionByDefault(t *testing.T) {
	ps := NewLibrary().For(DefaultConfig())
	assert.Nil(t, ps.Exclusion)
	require.NotNil(t, ps.Comprehensive)
}

func TestLibrary_ExclusionBuiltWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeURLs = false
	ps := NewLibrary().For(cfg)
	require.NotNil(t, ps.Exclusion)
	assert.True(t, ps.Exclusion.MatchString("https://example.com"))
	assert.False(t, ps.Exclusion.MatchString("plain words"))
}

// failingCompiler simulates an engine that rejects every pattern.
type failingCompiler struct{}

func (failingCompiler) Compile(string) (*regexp.Regexp, error) {
	return nil, errors.New("compile failure")
}

func TestLibrary_CompileFailureDegradesToCatchAll(t *testing.T) {
	lib := NewLibraryWith(failingCompiler{})
	ps := lib.For(DefaultConfig())
	require.NotNil(t, ps.Comprehensive)

	// Catch-all semantics: non-space runs still tokenize, nothing panics.
	got := ps.Comprehensive.FindAllString("hello world", -1)
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestLibrary_CompileFailureExclusionNil(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeURLs = false
	ps := NewLibraryWith(failingCompiler{}).For(cfg)
	assert.Nil(t, ps.Exclusion)
}

func TestLibrary_ConcurrentFirstAccess(t *testing.T) {
	lib := NewLibrary()
	var wg sync.WaitGroup
	sets := make([]*PatternSet, 16)
	for i := range sets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sets[i] = lib.For(DefaultConfig())
		}(i)
	}
	wg.Wait()
	for _, ps := range sets {
		assert.Same(t, sets[0], ps)
	}
}

func TestFingerprint_DistinguishesOptions(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.ExtractHashtags = false
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestComprehensive_PriorityOrder(t *testing.T) {
	ps := NewLibrary().For(DefaultConfig())

	// The URL pattern must win over the word pattern at the same position.
	assert.Equal(t, []string{"example.com"}, ps.Comprehensive.FindAllString("example.com", -1))
	// The mention pattern must win over the word pattern.
	assert.Equal(t, []string{"@user"}, ps.Comprehensive.FindAllString("@user", -1))
}

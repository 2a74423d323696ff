package importer

import (
	"strings"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/magpielabs/magpie/internal/domain/semantic"
	"github.com/magpielabs/magpie/internal/ports"
)

// Mapper suggests which source column fills each analyzer input. Name hints
// are matched against lowercased headers with an Aho-Corasick automaton so
// one scan per header covers every hint; semantic type inference breaks ties
// and vetoes obviously wrong matches (a free-text column mapped to a
// datetime input).
type Mapper struct {
	inputs    []ports.InputColumn
	automaton aho.AhoCorasick
	// hintInput[i] is the index into inputs that hint pattern i belongs to.
	hintInput []int
	hints     []string
}

// NewMapper builds the hint automaton for the given analyzer inputs.
func NewMapper(inputs []ports.InputColumn) *Mapper {
	m := &Mapper{inputs: inputs}
	for i, in := range inputs {
		for _, h := range in.NameHints {
			m.hints = append(m.hints, strings.ToLower(h))
			m.hintInput = append(m.hintInput, i)
		}
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		MatchKind: aho.LeftMostLongestMatch,
		DFA:       true,
	})
	m.automaton = builder.Build(m.hints)
	return m
}

// Suggest maps input column names to source headers. Columns are sampled
// for type inference; a header only maps to an input whose declared type it
// can satisfy. Each source header serves at most one input.
func (m *Mapper) Suggest(headers []string, sample map[string][]string) map[string]string {
	types := make(map[string]ports.DataType, len(headers))
	for _, h := range headers {
		types[h] = semantic.Infer(sample[h])
	}

	result := make(map[string]string)
	taken := make(map[string]bool)

	// Longest hint match per header wins. Headers are visited in file
	// order, so earlier columns claim contested inputs.
	for _, header := range headers {
		lower := strings.ToLower(header)
		bestInput, bestLen := -1, 0
		for _, match := range m.automaton.FindAll(lower) {
			inputIdx := m.hintInput[match.Pattern()]
			in := m.inputs[inputIdx]
			if _, done := result[in.Name]; done {
				continue
			}
			if !typeCompatible(in.Type, types[header]) {
				continue
			}
			if n := match.End() - match.Start(); n > bestLen {
				bestInput, bestLen = inputIdx, n
			}
		}
		if bestInput >= 0 && !taken[header] {
			result[m.inputs[bestInput].Name] = header
			taken[header] = true
		}
	}

	// Fill remaining inputs by type alone.
	for _, in := range m.inputs {
		if _, done := result[in.Name]; done {
			continue
		}
		for _, header := range headers {
			if taken[header] {
				continue
			}
			if typeCompatible(in.Type, types[header]) {
				result[in.Name] = header
				taken[header] = true
				break
			}
		}
	}
	return result
}

// typeCompatible reports whether a column inferred as got can serve an
// input declared as want. Identifier and text are interchangeable in both
// directions: handles read as identifiers, ids sometimes read as text.
func typeCompatible(want, got ports.DataType) bool {
	if want == got {
		return true
	}
	switch want {
	case ports.TypeIdentifier:
		return got == ports.TypeText || got == ports.TypeInteger
	case ports.TypeText:
		return got == ports.TypeIdentifier || got == ports.TypeURL
	case ports.TypeDatetime:
		return got == ports.TypeInteger // epoch columns
	}
	return false
}

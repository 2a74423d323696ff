package analyzers

import (
	"fmt"
	"sort"

	"github.com/magpielabs/magpie/internal/domain/tokenize"
	"github.com/magpielabs/magpie/internal/ports"
)

// Registry resolves analyzers by ID and answers dependency queries.
type Registry struct {
	byID map[string]ports.Analyzer
}

// NewRegistry builds the default registry with every shipped analyzer,
// sharing one pattern library across them.
func NewRegistry() *Registry {
	lib := tokenize.NewLibrary()
	r := &Registry{byID: make(map[string]ports.Analyzer)}
	r.register(&Ngrams{Lib: lib})
	r.register(&NgramStats{})
	r.register(&Hashtags{})
	return r
}

func (r *Registry) register(a ports.Analyzer) {
	r.byID[a.Spec().ID] = a
}

// Get returns the analyzer with the given ID.
func (r *Registry) Get(id string) (ports.Analyzer, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown analyzer %q", id)
	}
	return a, nil
}

// All returns every analyzer sorted by ID.
func (r *Registry) All() []ports.Analyzer {
	out := make([]ports.Analyzer, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Spec().ID < out[j].Spec().ID })
	return out
}

// Primaries returns the primary analyzers sorted by ID.
func (r *Registry) Primaries() []ports.Analyzer {
	var out []ports.Analyzer
	for _, a := range r.All() {
		if a.Spec().Kind == ports.KindPrimary {
			out = append(out, a)
		}
	}
	return out
}

// Secondaries returns the secondary analyzers based on the given primary.
func (r *Registry) Secondaries(primaryID string) []ports.Analyzer {
	var out []ports.Analyzer
	for _, a := range r.All() {
		spec := a.Spec()
		if spec.Kind == ports.KindSecondary && spec.BasedOn == primaryID {
			out = append(out, a)
		}
	}
	return out
}

// Package ngrams extracts word n-grams from tokenized messages and computes
// corpus-level repetition statistics. It consumes the tokenizer's output
// contract: an ordered sequence of already-folded token strings per message.
package ngrams

import (
	"strings"

	"github.com/magpielabs/magpie/internal/domain/tokenize"
	"github.com/magpielabs/magpie/internal/ports"
)

// Instance links a message to one distinct n-gram it contains.
type Instance struct {
	MessageSurrogateID int64
	NgramID            int64
}

// Definition is the identity of one distinct n-gram: its space-joined
// serialized form, assigned a corpus-wide integer ID.
type Definition struct {
	ID     int64
	Words  string
	Length int
}

// Result is the output of one extraction pass.
type Result struct {
	Instances   []Instance
	Definitions []Definition
}

// Extractor slides windows of sizes [minN, maxN] over each message's token
// sequence. N-grams repeated within one message count once; IDs are assigned
// by first-seen order across the whole corpus.
//
// First-seen ID order is an artifact of sequential processing, not a
// contract: reordering the input messages reorders the IDs.
type Extractor struct {
	tok  *tokenize.Tokenizer
	minN int
	maxN int
}

// NewExtractor builds an Extractor. Degenerate bounds are clamped: minN
// rises to 1, maxN rises to minN.
func NewExtractor(tok *tokenize.Tokenizer, minN, maxN int) *Extractor {
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}
	return &Extractor{tok: tok, minN: minN, maxN: maxN}
}

// Extract tokenizes every message and collects its distinct n-grams.
// Messages with empty text or author are skipped. progress, when non-nil,
// receives the completed fraction every 100 messages.
func (e *Extractor) Extract(msgs []ports.MessageRow, progress func(float64)) Result {
	ids := make(map[string]int64)
	var res Result

	for i, msg := range msgs {
		if msg.Text == "" || msg.AuthorID == "" {
			continue
		}
		tokens := e.tok.Tokenize(msg.Text)

		// Within-message dedup: a repeated n-gram counts once per message.
		seen := make(map[string]struct{})
		for start := 0; start+e.minN <= len(tokens); start++ {
			for n := e.minN; n <= e.maxN && start+n <= len(tokens); n++ {
				key := Serialize(tokens[start : start+n])
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				id, ok := ids[key]
				if !ok {
					id = int64(len(ids))
					ids[key] = id
					res.Definitions = append(res.Definitions, Definition{
						ID:     id,
						Words:  key,
						Length: n,
					})
				}
				res.Instances = append(res.Instances, Instance{
					MessageSurrogateID: msg.SurrogateID,
					NgramID:            id,
				})
			}
		}

		if progress != nil && (i+1)%100 == 0 {
			progress(float64(i+1) / float64(len(msgs)))
		}
	}
	if progress != nil {
		progress(1)
	}
	return res
}

// Serialize returns the string that uniquely identifies an n-gram: its
// tokens joined by a single space.
func Serialize(tokens []string) string {
	return strings.Join(tokens, " ")
}

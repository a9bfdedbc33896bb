// Package index holds the read-only semantic index the chat service answers
// from. The corpus is built offline by the indexer, loaded once at startup,
// and never mutated afterwards, so concurrent lookups need no locking.
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/rajazohaibsaqib/Restaurant-Project-backend/models"
)

// ErrNoAnswer is returned when the index is empty or a lookup produced no
// usable entry. Callers fall back to a canned message instead of failing.
var ErrNoAnswer = errors.New("no answer found")

// Embedder turns text into a fixed-dimension vector. Queries must be
// embedded by the same model that embedded the corpus.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type Entry struct {
	Question string
	Answer   string
	Vector   []float32
}

type Match struct {
	Question string
	Answer   string
	Distance float32
}

type Index struct {
	embedder Embedder
	entries  []Entry
	dim      int
}

// CorpusSource is the slice of the store the loader needs.
type CorpusSource interface {
	LoadCorpus(ctx context.Context) ([]models.QAEntry, *models.QACorpusMeta, error)
}

// New builds an index over the given entries. Every vector must share one
// dimension; a mismatch means the corpus artifact is corrupt.
func New(embedder Embedder, entries []Entry) (*Index, error) {
	idx := &Index{embedder: embedder, entries: entries}

	for i, entry := range entries {
		if len(entry.Vector) == 0 {
			return nil, fmt.Errorf("corpus entry %d (%q) has no embedding", i, entry.Question)
		}
		if idx.dim == 0 {
			idx.dim = len(entry.Vector)
		}
		if len(entry.Vector) != idx.dim {
			return nil, fmt.Errorf("corpus entry %d (%q) has dimension %d, want %d", i, entry.Question, len(entry.Vector), idx.dim)
		}
	}

	return idx, nil
}

// Load reads the corpus from the store and validates it against its build
// stamp. Any disagreement between the stamp and the rows, or between the
// stamp and the configured embedding model, is a startup error rather than
// a silent quality degradation at query time.
func Load(ctx context.Context, src CorpusSource, embedder Embedder, model string) (*Index, error) {
	rows, meta, err := src.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 && meta == nil {
		return nil, fmt.Errorf("qa corpus has %d rows but no build stamp", len(rows))
	}

	if meta != nil {
		if meta.Rows != len(rows) {
			return nil, fmt.Errorf("corpus stamp records %d rows, store has %d", meta.Rows, len(rows))
		}
		if meta.Model != model {
			return nil, fmt.Errorf("corpus was embedded with %q, configured model is %q", meta.Model, model)
		}
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		vec := row.Embedding.Slice()
		if meta != nil && len(vec) != meta.Dim {
			return nil, fmt.Errorf("corpus row %d has dimension %d, stamp records %d", row.ID, len(vec), meta.Dim)
		}
		entries[i] = Entry{
			Question: row.Question,
			Answer:   row.Answer,
			Vector:   vec,
		}
	}

	return New(embedder, entries)
}

func (i *Index) Size() int {
	return len(i.entries)
}

// Answer embeds the query and returns the answer paired with the nearest
// corpus question by L2 distance (k=1). Equal distances keep the earliest
// row, so duplicate corpus questions resolve deterministically.
func (i *Index) Answer(ctx context.Context, query string) (Match, error) {
	if len(i.entries) == 0 {
		return Match{}, ErrNoAnswer
	}

	vec, err := i.embedder.Embed(ctx, query)
	if err != nil {
		return Match{}, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vec) != i.dim {
		return Match{}, fmt.Errorf("query embedding has dimension %d, index has %d", len(vec), i.dim)
	}

	best := 0
	bestDist := sqDist(vec, i.entries[0].Vector)
	for j := 1; j < len(i.entries); j++ {
		if d := sqDist(vec, i.entries[j].Vector); d < bestDist {
			best, bestDist = j, d
		}
	}

	matched := i.entries[best]

	return Match{
		Question: matched.Question,
		Answer:   matched.Answer,
		Distance: bestDist,
	}, nil
}

func sqDist(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

// Package embedding trains word embedding spaces from tokenized documents
// and exposes them for read-only lookup.
package embedding

// Space maps vocabulary tokens to dense vectors of a fixed dimension.
// It is built once by Train and queried read-only afterward. A token absent
// from the vocabulary has no vector and contributes nothing to any average.
type Space struct {
	dim     int
	vectors map[string][]float64
}

// NewSpace builds a space from an existing token-to-vector mapping, for
// callers that already have vectors (fixtures, precomputed tables). Every
// vector must have length dim.
func NewSpace(dim int, vectors map[string][]float64) *Space {
	return &Space{dim: dim, vectors: vectors}
}

// Dim returns the dimensionality of every vector in the space.
func (s *Space) Dim() int {
	return s.dim
}

// Vector returns the embedding for token and whether the token is in the
// vocabulary. The returned slice is owned by the space; callers must not
// modify it.
func (s *Space) Vector(token string) ([]float64, bool) {
	vector, ok := s.vectors[token]
	return vector, ok
}

// Contains reports whether token is in the vocabulary.
func (s *Space) Contains(token string) bool {
	_, ok := s.vectors[token]
	return ok
}

// VocabularySize returns the number of tokens in the space.
func (s *Space) VocabularySize() int {
	return len(s.vectors)
}

// Vocabulary returns the set of tokens in the space. The map is a copy and
// safe to modify.
func (s *Space) Vocabulary() map[string]bool {
	vocabulary := make(map[string]bool, len(s.vectors))
	for token := range s.vectors {
		vocabulary[token] = true
	}
	return vocabulary
}

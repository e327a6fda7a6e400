// Package feature turns tokenized reviews into fixed-length numeric
// vectors by averaging word embeddings.
package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Avik9/Sentimental-Analysis/corpus"
	"github.com/Avik9/Sentimental-Analysis/embedding"
)

// ErrDegenerateInput reports an input the pipeline cannot meaningfully
// process, such as a review with no tokens.
var ErrDegenerateInput = errors.New("degenerate input")

// Extract maps a tokenized review to a vector of the space's dimension: the
// coordinate-wise sum of the vectors of all in-vocabulary tokens, divided
// by the total token count of the review.
//
// The denominator deliberately counts out-of-vocabulary tokens too, so a
// review full of rare words yields a vector pulled toward zero. A review
// with zero tokens has no defined average and returns ErrDegenerateInput
// rather than a NaN vector.
func Extract(space *embedding.Space, tokens []string) ([]float64, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: review has no tokens", ErrDegenerateInput)
	}

	vector := make([]float64, space.Dim())
	for _, token := range tokens {
		if tokenVector, ok := space.Vector(token); ok {
			floats.Add(vector, tokenVector)
		}
	}

	floats.Scale(1/float64(len(tokens)), vector)
	return vector, nil
}

// Matrix extracts one feature vector per record and stacks them into a
// (records x dim) matrix, the shape the rating predictor consumes. Any
// record that fails extraction fails the whole call.
func Matrix(space *embedding.Space, records corpus.Corpus) (*mat.Dense, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: corpus has no records", ErrDegenerateInput)
	}

	matrix := mat.NewDense(len(records), space.Dim(), nil)
	for i, record := range records {
		vector, err := Extract(space, record.Tokens)
		if err != nil {
			return nil, fmt.Errorf("record %d (item %d): %w", i, record.ItemID, err)
		}
		matrix.SetRow(i, vector)
	}

	return matrix, nil
}

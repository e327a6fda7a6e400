// Package userfactor derives low-dimensional per-user factors from review
// text: each user's review feature vectors are averaged into a single
// "language representation", and a principal-component transform over all
// users reduces those representations to a handful of factors.
//
// The transform is fit exactly once, over training-derived user averages,
// and the fitted Transform is reused for any later projection. Refitting
// when projecting new users would put them in a different coordinate
// system than the one the factors were learned in.
package userfactor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Avik9/Sentimental-Analysis/corpus"
	"github.com/Avik9/Sentimental-Analysis/embedding"
	"github.com/Avik9/Sentimental-Analysis/feature"
)

// Components is the number of principal-component factors kept per user.
const Components = 3

// Profiles groups records by user id while remembering first-seen user
// order, so every derived matrix has a stable, reproducible row order.
type Profiles struct {
	Order  []string
	ByUser map[string]corpus.Corpus
}

// GroupByUser merges one or more corpora into per-user profiles. Row order
// within each user follows the input order, corpora processed in the order
// given.
func GroupByUser(corpora ...corpus.Corpus) *Profiles {
	profiles := &Profiles{ByUser: make(map[string]corpus.Corpus)}
	for _, records := range corpora {
		for _, record := range records {
			if _, seen := profiles.ByUser[record.UserID]; !seen {
				profiles.Order = append(profiles.Order, record.UserID)
			}
			profiles.ByUser[record.UserID] = append(profiles.ByUser[record.UserID], record)
		}
	}
	return profiles
}

// UserVector pairs a user id with a derived vector.
type UserVector struct {
	UserID string
	Vector []float64
}

// LanguageRepresentations averages each user's review feature vectors into
// one vector per user: the sum of the user's extracted features divided by
// the user's review count. Results follow the profiles' user order.
func LanguageRepresentations(space *embedding.Space, profiles *Profiles) ([]UserVector, error) {
	representations := make([]UserVector, 0, len(profiles.Order))

	for _, userID := range profiles.Order {
		records := profiles.ByUser[userID]
		sum := make([]float64, space.Dim())
		for _, record := range records {
			vector, err := feature.Extract(space, record.Tokens)
			if err != nil {
				return nil, fmt.Errorf("user %s item %d: %w", userID, record.ItemID, err)
			}
			for i, value := range vector {
				sum[i] += value
			}
		}
		for i := range sum {
			sum[i] /= float64(len(records))
		}
		representations = append(representations, UserVector{UserID: userID, Vector: sum})
	}

	return representations, nil
}

// Transform is a fitted principal-component projection. It captures the
// column means and leading components of the data it was fit on, so
// projecting the same vector twice (or projecting held-out users later)
// always lands in the same factor space.
type Transform struct {
	means      []float64
	components *mat.Dense // (dim x Components), columns are principal axes
}

// FitTransform fits a Components-dimensional principal-component transform
// over the users' averaged vectors and returns the fitted transform along
// with each user's projection, in input order.
//
// The fit centers the data, decomposes it with SVD, and keeps the leading
// right singular vectors as the projection axes. Fewer samples or
// dimensions than Components is a degenerate input.
func FitTransform(representations []UserVector) (*Transform, []UserVector, error) {
	if len(representations) < Components {
		return nil, nil, fmt.Errorf("%w: need at least %d users to fit %d factors, have %d",
			feature.ErrDegenerateInput, Components, Components, len(representations))
	}
	dim := len(representations[0].Vector)
	if dim < Components {
		return nil, nil, fmt.Errorf("%w: vector dimension %d is below %d factors",
			feature.ErrDegenerateInput, dim, Components)
	}

	rows := len(representations)
	data := mat.NewDense(rows, dim, nil)
	for i, representation := range representations {
		data.SetRow(i, representation.Vector)
	}

	// Center each dimension; PCA measures variance around the mean.
	means := make([]float64, dim)
	for col := 0; col < dim; col++ {
		means[col] = stat.Mean(mat.Col(nil, col, data), nil)
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < dim; col++ {
			data.Set(row, col, data.At(row, col)-means[col])
		}
	}

	var svd mat.SVD
	if !svd.Factorize(data, mat.SVDThin) {
		return nil, nil, fmt.Errorf("%w: SVD of user representations failed to converge",
			feature.ErrDegenerateInput)
	}

	var rightVectors mat.Dense
	svd.VTo(&rightVectors)
	vRows, vCols := rightVectors.Dims()
	if vRows < dim || vCols < Components {
		return nil, nil, fmt.Errorf("%w: decomposition yielded %d components, need %d",
			feature.ErrDegenerateInput, vCols, Components)
	}

	components := mat.NewDense(dim, Components, nil)
	for row := 0; row < dim; row++ {
		for col := 0; col < Components; col++ {
			components.Set(row, col, rightVectors.At(row, col))
		}
	}

	transform := &Transform{means: means, components: components}

	projections := make([]UserVector, rows)
	for i, representation := range representations {
		projections[i] = UserVector{
			UserID: representation.UserID,
			Vector: transform.Project(representation.Vector),
		}
	}

	return transform, projections, nil
}

// Project maps one averaged user vector into the fitted factor space.
// Projection is a pure function of the fitted transform: the same input
// always yields the same factors.
func (t *Transform) Project(vector []float64) []float64 {
	centered := mat.NewVecDense(len(vector), nil)
	for i, value := range vector {
		centered.SetVec(i, value-t.means[i])
	}

	projected := mat.NewVecDense(Components, nil)
	projected.MulVec(t.components.T(), centered)

	factors := make([]float64, Components)
	for i := range factors {
		factors[i] = projected.AtVec(i)
	}
	return factors
}

// Dim returns the input dimension the transform was fit on.
func (t *Transform) Dim() int {
	return len(t.means)
}

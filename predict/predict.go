// Package predict fits L2-regularized linear regressors over review
// feature vectors and selects the best regularization strength on a
// held-out set.
package predict

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Avik9/Sentimental-Analysis/feature"
)

// ErrNoEligibleModel reports that no regularization candidate produced a
// held-out mean absolute error under the eligibility threshold.
var ErrNoEligibleModel = errors.New("no regularization candidate met the error threshold")

// Alphas is the regularization-strength grid the sweep tries, in order.
var Alphas = []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 100, 1000, 10000}

// eligibleMAE is the sanity ceiling a candidate's held-out MAE must stay
// strictly under to be selectable. A model that is off by a full star on
// average is treated as not having learned anything usable.
const eligibleMAE = 1.0

// RidgeModel is a fitted L2-regularized linear regressor.
type RidgeModel struct {
	Alpha     float64
	Weights   *mat.VecDense
	Intercept float64
}

// FitRidge fits a ridge regression of y onto the rows of x with the given
// regularization strength. The intercept is handled by centering, so the
// penalty applies to the slope coefficients only.
//
// Returns ErrDegenerateInput (wrapped) when the regularized normal
// equations are not positive definite, which happens only for degenerate
// feature matrices.
func FitRidge(x *mat.Dense, y []float64, alpha float64) (*RidgeModel, error) {
	rows, cols := x.Dims()
	if rows != len(y) {
		return nil, fmt.Errorf("feature matrix has %d rows but %d targets", rows, len(y))
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: empty feature matrix", feature.ErrDegenerateInput)
	}

	columnMeans := make([]float64, cols)
	for col := 0; col < cols; col++ {
		columnMeans[col] = stat.Mean(mat.Col(nil, col, x), nil)
	}
	targetMean := stat.Mean(y, nil)

	centered := mat.NewDense(rows, cols, nil)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			centered.Set(row, col, x.At(row, col)-columnMeans[col])
		}
	}
	centeredTargets := mat.NewVecDense(rows, nil)
	for row := 0; row < rows; row++ {
		centeredTargets.SetVec(row, y[row]-targetMean)
	}

	// Normal equations (X'X + alpha*I) w = X'y on the centered data.
	var gram mat.Dense
	gram.Mul(centered.T(), centered)
	for col := 0; col < cols; col++ {
		gram.Set(col, col, gram.At(col, col)+alpha)
	}

	symmetric := mat.NewSymDense(cols, nil)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			symmetric.SetSym(i, j, gram.At(i, j))
		}
	}

	var cholesky mat.Cholesky
	if !cholesky.Factorize(symmetric) {
		return nil, fmt.Errorf("%w: regularized normal equations are not positive definite",
			feature.ErrDegenerateInput)
	}

	rhs := mat.NewVecDense(cols, nil)
	rhs.MulVec(centered.T(), centeredTargets)

	weights := mat.NewVecDense(cols, nil)
	if err := cholesky.SolveVecTo(weights, rhs); err != nil {
		return nil, fmt.Errorf("solving ridge system: %w", err)
	}

	intercept := targetMean
	for col := 0; col < cols; col++ {
		intercept -= columnMeans[col] * weights.AtVec(col)
	}

	return &RidgeModel{Alpha: alpha, Weights: weights, Intercept: intercept}, nil
}

// Predict returns the model's prediction for every row of x.
func (m *RidgeModel) Predict(x *mat.Dense) []float64 {
	rows, _ := x.Dims()
	result := mat.NewVecDense(rows, nil)
	result.MulVec(x, m.Weights)

	predictions := make([]float64, rows)
	for row := 0; row < rows; row++ {
		predictions[row] = result.AtVec(row) + m.Intercept
	}
	return predictions
}

// Sweep is the outcome of one regularization candidate.
type Sweep struct {
	Alpha float64
	MAE   float64
}

// BuildRatingPredictor fits one ridge model per candidate strength,
// evaluates each on the held-out set, and returns the eligible model with
// the lowest mean absolute error together with the per-candidate sweep
// results.
//
// When every candidate's MAE is at or above the eligibility ceiling, the
// returned model is nil and the error wraps ErrNoEligibleModel; the sweep
// results are still returned so callers can report what was tried.
func BuildRatingPredictor(trainX *mat.Dense, trainY []float64, testX *mat.Dense, testY []float64) (*RidgeModel, []Sweep, error) {
	var best *RidgeModel
	bestMAE := eligibleMAE
	sweeps := make([]Sweep, 0, len(Alphas))

	for _, alpha := range Alphas {
		model, err := FitRidge(trainX, trainY, alpha)
		if err != nil {
			return nil, nil, fmt.Errorf("alpha %g: %w", alpha, err)
		}

		mae := MeanAbsoluteError(testY, model.Predict(testX))
		sweeps = append(sweeps, Sweep{Alpha: alpha, MAE: mae})

		if mae < eligibleMAE && mae <= bestMAE {
			bestMAE = mae
			best = model
		}
	}

	if best == nil {
		return nil, sweeps, fmt.Errorf("%w (best MAE %.4f)", ErrNoEligibleModel, lowestMAE(sweeps))
	}
	return best, sweeps, nil
}

func lowestMAE(sweeps []Sweep) float64 {
	lowest := math.Inf(1)
	for _, sweep := range sweeps {
		if sweep.MAE < lowest {
			lowest = sweep.MAE
		}
	}
	return lowest
}

// MeanAbsoluteError returns the mean of |truth[i] - predicted[i]|.
func MeanAbsoluteError(truth, predicted []float64) float64 {
	total := 0.0
	for i := range truth {
		total += math.Abs(truth[i] - predicted[i])
	}
	return total / float64(len(truth))
}

// PearsonR returns the Pearson correlation coefficient between truth and
// predicted along with the two-sided p-value for the null hypothesis of no
// correlation, computed from the t-distribution with n-2 degrees of
// freedom.
func PearsonR(truth, predicted []float64) (r, p float64) {
	r = stat.Correlation(truth, predicted, nil)

	n := len(truth)
	if n < 3 || math.IsNaN(r) {
		return r, math.NaN()
	}
	if r >= 1 || r <= -1 {
		return r, 0
	}

	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	studentT := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p = 2 * studentT.CDF(-math.Abs(t))
	return r, p
}

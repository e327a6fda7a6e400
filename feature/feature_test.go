package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/Avik9/Sentimental-Analysis/corpus"
	"github.com/Avik9/Sentimental-Analysis/embedding"
)

// fixtureSpace returns a tiny hand-built space for exact-value assertions.
func fixtureSpace() *embedding.Space {
	return embedding.NewSpace(2, map[string][]float64{
		"good": {1, 3},
		"bad":  {-1, 1},
	})
}

func TestExtractDimension(t *testing.T) {
	vector, err := Extract(fixtureSpace(), []string{"good", "bad"})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(vector) != 2 {
		t.Fatalf("vector length = %d, want 2", len(vector))
	}
}

func TestExtractAveragesOverTotalTokenCount(t *testing.T) {
	// Two known tokens and two unknown ones: the sum covers the known
	// tokens only, the denominator counts all four.
	vector, err := Extract(fixtureSpace(), []string{"good", "zzz", "bad", "qqq"})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	want := []float64{0.0, 1.0} // (1-1)/4, (3+1)/4
	for i := range want {
		if math.Abs(vector[i]-want[i]) > 1e-12 {
			t.Errorf("vector[%d] = %g, want %g", i, vector[i], want[i])
		}
	}
}

func TestExtractAllUnknownTokens(t *testing.T) {
	vector, err := Extract(fixtureSpace(), []string{"xxx", "yyy"})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	for i, value := range vector {
		if value != 0 {
			t.Errorf("vector[%d] = %g, want 0 for all-unknown review", i, value)
		}
	}
}

func TestExtractEmptyReview(t *testing.T) {
	_, err := Extract(fixtureSpace(), nil)
	if err == nil {
		t.Fatal("expected error for review with no tokens")
	}
	if !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("error should wrap ErrDegenerateInput, got %v", err)
	}
}

func TestMatrixShapeAndValues(t *testing.T) {
	records := corpus.Corpus{
		{ItemID: 1, Rating: 5, Tokens: []string{"good", "good"}},
		{ItemID: 2, Rating: 1, Tokens: []string{"bad"}},
	}

	matrix, err := Matrix(fixtureSpace(), records)
	if err != nil {
		t.Fatalf("Matrix returned error: %v", err)
	}

	rows, cols := matrix.Dims()
	if rows != 2 || cols != 2 {
		t.Fatalf("Dims() = (%d, %d), want (2, 2)", rows, cols)
	}
	if got := matrix.At(0, 0); math.Abs(got-1) > 1e-12 {
		t.Errorf("matrix[0][0] = %g, want 1", got)
	}
	if got := matrix.At(1, 1); math.Abs(got-1) > 1e-12 {
		t.Errorf("matrix[1][1] = %g, want 1", got)
	}
}

func TestMatrixPropagatesDegenerateRecord(t *testing.T) {
	records := corpus.Corpus{
		{ItemID: 1, Rating: 5, Tokens: []string{"good"}},
		{ItemID: 2, Rating: 1, Tokens: nil},
	}

	_, err := Matrix(fixtureSpace(), records)
	if !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("expected ErrDegenerateInput, got %v", err)
	}
}

func TestMatrixEmptyCorpus(t *testing.T) {
	if _, err := Matrix(fixtureSpace(), nil); !errors.Is(err, ErrDegenerateInput) {
		t.Fatalf("expected ErrDegenerateInput for empty corpus, got %v", err)
	}
}

package knn

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func threeClusters() (*mat.Dense, []int) {
	X := mat.NewDense(9, 2, []float64{
		0, 0, 0.2, 0.1, 0.1, 0.3,
		5, 5, 5.2, 4.9, 4.8, 5.1,
		0, 5, 0.1, 5.2, -0.2, 4.9,
	})
	return X, []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
}

func TestKNNPredict(t *testing.T) {
	X, y := threeClusters()
	m := New(3)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	query := mat.NewDense(4, 2, []float64{
		0.1, 0.1,
		4.9, 5.0,
		0.0, 5.1,
		4.0, 4.0,
	})
	got, err := m.Predict(query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestKNNManyRows(t *testing.T) {
	X, y := threeClusters()
	m := New(1)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// more rows than workers, every row must be filled
	n := 1001
	data := make([]float64, 0, 2*n)
	for range n {
		data = append(data, 5, 5)
	}
	got, err := m.Predict(mat.NewDense(n, 2, data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != n {
		t.Fatalf("got %d labels, want %d", len(got), n)
	}
	for i, l := range got {
		if l != 1 {
			t.Fatalf("row %d: got %d, want 1", i, l)
		}
	}
}

func TestKNNTieGoesToSmallerLabel(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{-1, 0, 1, 0})
	m := New(2)
	if err := m.Fit(X, []int{2, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.Predict(mat.NewDense(1, 2, []float64{0, 0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1 {
		t.Errorf("got %d, want 1", got[0])
	}
}

func TestKNNKLargerThanTrainingSet(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})
	m := New(10)
	if err := m.Fit(X, []int{1, 1, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.Predict(mat.NewDense(1, 2, []float64{2, 2}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1 {
		t.Errorf("got %d, want majority label 1", got[0])
	}
}

func TestKNNErrors(t *testing.T) {
	X, y := threeClusters()

	if _, err := New(3).Predict(X); !errors.Is(err, ErrNotFitted) {
		t.Errorf("unfitted: got %v", err)
	}
	if err := New(0).Fit(X, y); !errors.Is(err, ErrK) {
		t.Errorf("k=0: got %v", err)
	}
	if err := New(1).Fit(X, y[:3]); !errors.Is(err, ErrMismatch) {
		t.Errorf("mismatch: got %v", err)
	}
	if err := New(1).Fit(&mat.Dense{}, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("empty: got %v", err)
	}

	m := New(1)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Predict(mat.NewDense(1, 3, []float64{0, 0, 0})); !errors.Is(err, ErrDims) {
		t.Errorf("dims: got %v", err)
	}

	m.K = 0
	if _, err := m.Predict(mat.NewDense(1, 2, []float64{0, 0})); !errors.Is(err, ErrK) {
		t.Errorf("k reset to 0 after fit: got %v", err)
	}
}

func TestFitCopiesInput(t *testing.T) {
	X, y := threeClusters()
	m := New(1)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	X.Set(0, 0, 100)
	y[0] = 2
	got, err := m.Predict(mat.NewDense(1, 2, []float64{0, 0}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 0 {
		t.Errorf("got %d, want 0", got[0])
	}
}

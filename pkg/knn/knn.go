// Package knn implements a k-nearest-neighbours classifier over gonum
// matrices.
package knn

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotFitted = errors.New("knn: model is not fitted")
	ErrMismatch  = errors.New("knn: number of samples and labels differ")
	ErrEmpty     = errors.New("knn: no training samples")
	ErrK         = errors.New("knn: k must be positive")
	ErrDims      = errors.New("knn: feature count differs from training data")
)

// KNN is a lazy classifier: Fit stores the training set, Predict votes
// among the K closest stored samples.
type KNN struct {
	K int
	x *mat.Dense
	y []int
}

func New(k int) *KNN {
	return &KNN{K: k}
}

// Fit keeps a copy of X and y.
func (m *KNN) Fit(X mat.Matrix, y []int) error {
	if m.K < 1 {
		return fmt.Errorf("%w: %d", ErrK, m.K)
	}
	r, _ := X.Dims()
	if r == 0 {
		return ErrEmpty
	}
	if r != len(y) {
		return fmt.Errorf("%w: %d samples, %d labels", ErrMismatch, r, len(y))
	}
	m.x = mat.DenseCopyOf(X)
	m.y = slices.Clone(y)
	return nil
}

// Predict labels every row of X. Rows are split evenly across
// runtime.GOMAXPROCS(0) workers.
func (m *KNN) Predict(X mat.Matrix) ([]int, error) {
	if m.x == nil {
		return nil, ErrNotFitted
	}
	if m.K < 1 {
		return nil, fmt.Errorf("%w: %d", ErrK, m.K)
	}
	rows, cols := X.Dims()
	if _, c := m.x.Dims(); c != cols {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDims, cols, c)
	}
	if rows == 0 {
		return nil, nil
	}

	out := make([]int, rows)
	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for w := range workers {
		start := w * rowsPerWorker
		end := min(start+rowsPerWorker, rows)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			buf := make([]float64, cols)
			nbrs := make([]neighbour, 0, m.K+1)
			for i := s; i < e; i++ {
				mat.Row(buf, i, X)
				out[i] = m.predictSingle(buf, nbrs[:0])
			}
		}(start, end)
	}
	wg.Wait()
	return out, nil
}

type neighbour struct {
	d     float64
	label int
}

// predictSingle keeps the K closest samples in a slice sorted by distance
// and returns the most frequent label among them. Ties go to the smaller
// label.
func (m *KNN) predictSingle(x []float64, nbrs []neighbour) int {
	k := m.K
	for j, label := range m.y {
		d := floats.Distance(x, m.x.RawRowView(j), 2)
		if len(nbrs) == k && d >= nbrs[k-1].d {
			continue
		}
		// insert after equal distances so earlier samples win
		pos, _ := slices.BinarySearchFunc(nbrs, d, func(n neighbour, d float64) int {
			if n.d <= d {
				return -1
			}
			return 1
		})
		nbrs = slices.Insert(nbrs, pos, neighbour{d: d, label: label})
		if len(nbrs) > k {
			nbrs = nbrs[:k]
		}
	}

	votes := make(map[int]int, len(nbrs))
	for _, n := range nbrs {
		votes[n.label]++
	}
	best, bestVotes := 0, -1
	for label, v := range votes {
		if v > bestVotes || (v == bestVotes && label < best) {
			best, bestVotes = label, v
		}
	}
	return best
}

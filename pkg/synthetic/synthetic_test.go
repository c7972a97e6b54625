package synthetic

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestTruncNormalBounds(t *testing.T) {
	g := NewGenerator(1)
	vals := g.TruncNormal(3e-3, 5e-4, 5000)
	if floats.Min(vals) < 3e-3-3*5e-4 || floats.Max(vals) > 3e-3+3*5e-4 {
		t.Errorf("samples outside [%v, %v]: min %v max %v", 3e-3-1.5e-3, 3e-3+1.5e-3, floats.Min(vals), floats.Max(vals))
	}
	if mean := stat.Mean(vals, nil); mean < 2.9e-3 || mean > 3.1e-3 {
		t.Errorf("mean = %v, want about 3e-3", mean)
	}
}

func TestTruncNormalZeroSpread(t *testing.T) {
	for _, v := range NewGenerator(1).TruncNormal(2, 0, 4) {
		if v != 2 {
			t.Fatalf("got %v, want 2", v)
		}
	}
}

func TestBlobs(t *testing.T) {
	centers := IrisLikeCenters()
	X, y := NewGenerator(7).Blobs(centers, 0.1, 50)
	r, c := X.Dims()
	if r != 150 || c != 2 || len(y) != 150 {
		t.Fatalf("dims = %dx%d with %d labels, want 150x2 with 150", r, c, len(y))
	}
	for k, ctr := range centers {
		rows := X.Slice(k*50, (k+1)*50, 0, 2)
		mx := stat.Mean(mat.Col(nil, 0, rows), nil)
		my := stat.Mean(mat.Col(nil, 1, rows), nil)
		if !scalar.EqualWithinAbs(mx, ctr[0], 0.05) || !scalar.EqualWithinAbs(my, ctr[1], 0.05) {
			t.Errorf("class %d mean = (%v, %v), want near %v", k, mx, my, ctr)
		}
		for i := k * 50; i < (k+1)*50; i++ {
			if y[i] != k {
				t.Fatalf("label %d = %d, want %d", i, y[i], k)
			}
		}
	}
}

func TestBlobsReproducible(t *testing.T) {
	a, _ := NewGenerator(42).Blobs(IrisLikeCenters(), 0.2, 10)
	b, _ := NewGenerator(42).Blobs(IrisLikeCenters(), 0.2, 10)
	if !mat.Equal(a, b) {
		t.Error("same seed produced different data")
	}
}

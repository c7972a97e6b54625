package presenter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"boundary-go/pkg/boundary"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
)

func testGrid(t *testing.T) *boundary.LabelGrid {
	t.Helper()
	X := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	r := boundary.NewRenderer()
	r.Step = 0.5
	g, err := r.Evaluate(X, boundary.PredictFunc(func(X mat.Matrix) ([]int, error) {
		n, _ := X.Dims()
		out := make([]int, n)
		for i := range out {
			if X.At(i, 0)+X.At(i, 1) > 1 {
				out[i] = 1
			}
		}
		return out, nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return g
}

func TestSavePlotFormats(t *testing.T) {
	g := testGrid(t)
	X := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
	p, err := boundary.NewRenderer().PlotGrid(g, X, []int{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.pdf", "out.svg"} {
		path := filepath.Join(dir, name)
		if err := SavePlot(p, 3*vg.Inch, 3*vg.Inch, path); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("out.png is not a PNG file")
	}

	if err := SavePlot(p, vg.Inch, vg.Inch, filepath.Join(dir, "noext")); err == nil {
		t.Error("missing extension accepted")
	}
	if err := SavePlot(p, vg.Inch, vg.Inch, filepath.Join(dir, "out.xyz")); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestSaveGridCSV(t *testing.T) {
	g := testGrid(t)
	path := filepath.Join(t.TempDir(), "grid.csv")
	if err := SaveGridCSV(g, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	cols, rows := g.Dims()
	if len(records) != cols*rows+1 {
		t.Fatalf("got %d records, want %d", len(records), cols*rows+1)
	}
	if records[0][2] != "label" {
		t.Errorf("header = %v", records[0])
	}
	// first cell is the bottom-left corner
	if records[1][0] != "-0.5" || records[1][1] != "-0.5" || records[1][2] != "0" {
		t.Errorf("first record = %v", records[1])
	}
	if last := records[len(records)-1]; last[2] != "1" {
		t.Errorf("last record = %v", last)
	}
}

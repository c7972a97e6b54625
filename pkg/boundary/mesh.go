package boundary

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MaxGridPoints bounds the number of cells a mesh may have.
const MaxGridPoints = 1 << 23

// Mesh is a regular grid over the bounding box of a 2-column feature
// matrix, expanded by a margin on every side.
type Mesh struct {
	XMin, XMax float64
	YMin, YMax float64
	Step       float64
	Cols, Rows int
}

// NewMesh computes the mesh for X. X must have exactly two columns and at
// least one row.
func NewMesh(X mat.Matrix, margin, step float64) (*Mesh, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, ErrEmpty
	}
	if c != 2 {
		return nil, fmt.Errorf("%w: got %d columns", ErrDims, c)
	}
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("%w: step %v", ErrStep, step)
	}

	xs := mat.Col(nil, 0, X)
	ys := mat.Col(nil, 1, X)

	m := &Mesh{
		XMin: floats.Min(xs) - margin,
		XMax: floats.Max(xs) + margin,
		YMin: floats.Min(ys) - margin,
		YMax: floats.Max(ys) + margin,
		Step: step,
	}
	cols := math.Ceil((m.XMax - m.XMin) / step)
	rows := math.Ceil((m.YMax - m.YMin) / step)
	if !(cols*rows <= MaxGridPoints) {
		return nil, fmt.Errorf("%w: step %v gives %g grid points, limit %d", ErrStep, step, cols*rows, MaxGridPoints)
	}
	m.Cols = arangeLen(m.XMin, m.XMax, step)
	m.Rows = arangeLen(m.YMin, m.YMax, step)
	if m.Cols == 0 || m.Rows == 0 {
		return nil, fmt.Errorf("%w: margin %v leaves no grid points", ErrStep, margin)
	}
	return m, nil
}

// arangeLen is the number of samples start, start+step, ... below stop.
func arangeLen(start, stop, step float64) int {
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		return 0
	}
	return n
}

func (m *Mesh) Len() int { return m.Cols * m.Rows }

func (m *Mesh) X(c int) float64 { return m.XMin + float64(c)*m.Step }
func (m *Mesh) Y(r int) float64 { return m.YMin + float64(r)*m.Step }

// Index maps grid cell (r, c) to its position in the flattened point list.
func (m *Mesh) Index(r, c int) int { return r*m.Cols + c }

// XLast and YLast are the largest sampled coordinates, i.e. the maximum
// of the grid rather than of the half-open range.
func (m *Mesh) XLast() float64 { return m.X(m.Cols - 1) }
func (m *Mesh) YLast() float64 { return m.Y(m.Rows - 1) }

// Points flattens the mesh into a Len()x2 matrix, row-major with x varying
// fastest.
func (m *Mesh) Points() *mat.Dense {
	data := make([]float64, 0, 2*m.Len())
	for r := range m.Rows {
		y := m.Y(r)
		for c := range m.Cols {
			data = append(data, m.X(c), y)
		}
	}
	return mat.NewDense(m.Len(), 2, data)
}

// Reshape wraps labels predicted for Points() into a LabelGrid.
func (m *Mesh) Reshape(labels []int) (*LabelGrid, error) {
	if len(labels) != m.Len() {
		return nil, fmt.Errorf("%w: got %d labels for %d grid points", ErrPredictLength, len(labels), m.Len())
	}
	return &LabelGrid{Mesh: m, Labels: labels}, nil
}

// LabelGrid holds one predicted class per mesh cell. It implements
// plotter.GridXYZ.
type LabelGrid struct {
	Mesh   *Mesh
	Labels []int
}

func (g *LabelGrid) Dims() (c, r int)   { return g.Mesh.Cols, g.Mesh.Rows }
func (g *LabelGrid) Z(c, r int) float64 { return float64(g.At(r, c)) }
func (g *LabelGrid) X(c int) float64    { return g.Mesh.X(c) }
func (g *LabelGrid) Y(r int) float64    { return g.Mesh.Y(r) }

// At returns the label of row r, column c.
func (g *LabelGrid) At(r, c int) int { return g.Labels[g.Mesh.Index(r, c)] }

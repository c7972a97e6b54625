// Package boundary draws the decision regions of a 2-D classifier together
// with the labeled points it was trained on.
package boundary

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	DefaultMargin = 0.5
	DefaultStep   = 0.02
)

var (
	ErrEmpty          = errors.New("boundary: empty feature matrix")
	ErrDims           = errors.New("boundary: feature matrix must have 2 columns")
	ErrLengthMismatch = errors.New("boundary: feature and label counts differ")
	ErrClassRange     = errors.New("boundary: class index outside palette")
	ErrPredictLength  = errors.New("boundary: classifier returned wrong number of labels")
	ErrStep           = errors.New("boundary: invalid grid step")
)

// Classifier predicts one class index per row of an Mx2 matrix.
type Classifier interface {
	Predict(X mat.Matrix) ([]int, error)
}

// PredictFunc adapts a plain function to Classifier.
type PredictFunc func(X mat.Matrix) ([]int, error)

func (f PredictFunc) Predict(X mat.Matrix) ([]int, error) { return f(X) }

// Renderer holds the fixed parameters of a decision-boundary figure.
// The zero value is not usable; start from NewRenderer.
type Renderer struct {
	Margin float64
	Step   float64

	Title          string
	XLabel, YLabel string

	// Light colors the predicted regions, Bold the training points. Class k
	// uses entry k of each.
	Light, Bold Listed
	Outline     color.Color
	PointRadius vg.Length

	Legend     bool
	ClassNames []string

	Width, Height vg.Length
}

func NewRenderer() *Renderer {
	return &Renderer{
		Margin:      DefaultMargin,
		Step:        DefaultStep,
		XLabel:      "Sepal length",
		YLabel:      "Sepal width",
		Light:       LightPalette(),
		Bold:        BoldPalette(),
		Outline:     outlineGray,
		PointRadius: vg.Points(3),
		Width:       10 * vg.Inch,
		Height:      10 * vg.Inch,
	}
}

// Render draws the decision boundary of clf over X onto c using the
// default renderer.
func Render(c draw.Canvas, X mat.Matrix, y []int, clf Classifier) error {
	return NewRenderer().Render(c, X, y, clf)
}

func (r *Renderer) Render(c draw.Canvas, X mat.Matrix, y []int, clf Classifier) error {
	p, err := r.Plot(X, y, clf)
	if err != nil {
		return err
	}
	p.Draw(c)
	return nil
}

// Plot evaluates clf on the mesh around X and assembles the figure.
func (r *Renderer) Plot(X mat.Matrix, y []int, clf Classifier) (*plot.Plot, error) {
	if err := r.checkPoints(X, y); err != nil {
		return nil, err
	}
	grid, err := r.Evaluate(X, clf)
	if err != nil {
		return nil, err
	}
	return r.PlotGrid(grid, X, y)
}

// Evaluate builds the mesh around X and classifies all of its points with a
// single Predict call.
func (r *Renderer) Evaluate(X mat.Matrix, clf Classifier) (*LabelGrid, error) {
	mesh, err := NewMesh(X, r.Margin, r.Step)
	if err != nil {
		return nil, err
	}
	labels, err := clf.Predict(mesh.Points())
	if err != nil {
		return nil, fmt.Errorf("boundary: predict: %w", err)
	}
	grid, err := mesh.Reshape(labels)
	if err != nil {
		return nil, err
	}
	if err := checkClasses(labels, len(r.Light), "predicted"); err != nil {
		return nil, err
	}
	return grid, nil
}

// PlotGrid draws an already evaluated grid with the points of X on top.
func (r *Renderer) PlotGrid(grid *LabelGrid, X mat.Matrix, y []int) (*plot.Plot, error) {
	if err := r.checkPoints(X, y); err != nil {
		return nil, err
	}
	mesh := grid.Mesh

	p := plot.New()
	p.Title.Text = r.Title
	p.X.Label.Text = r.XLabel
	p.Y.Label.Text = r.YLabel

	heatmap := plotter.NewHeatMap(grid, r.Light)
	// Pin the value range to the palette so class k always gets entry k,
	// even when fewer classes are predicted. A single-color palette still
	// needs a non-empty range.
	heatmap.Min = 0
	heatmap.Max = max(float64(len(r.Light)-1), heatmap.Min+1)
	heatmap.Rasterized = true
	p.Add(heatmap)

	pts := make(plotter.XYs, len(y))
	for i := range pts {
		pts[i].X = X.At(i, 0)
		pts[i].Y = X.At(i, 1)
	}

	points, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	points.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  r.Bold[y[i]],
			Radius: r.PointRadius,
			Shape:  draw.CircleGlyph{},
		}
	}

	outline, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	outline.GlyphStyle = draw.GlyphStyle{
		Color:  r.Outline,
		Radius: r.PointRadius,
		Shape:  draw.RingGlyph{},
	}
	p.Add(points, outline)

	if r.Legend {
		for k := range r.Bold {
			p.Legend.Add(r.className(k), classThumb{draw.GlyphStyle{
				Color:  r.Bold[k],
				Radius: r.PointRadius,
				Shape:  draw.CircleGlyph{},
			}})
		}
		p.Legend.Top = true
	}

	p.X.Padding = 0
	p.Y.Padding = 0
	p.X.Min, p.X.Max = mesh.XMin, mesh.XLast()
	p.Y.Min, p.Y.Max = mesh.YMin, mesh.YLast()
	return p, nil
}

func (r *Renderer) checkPoints(X mat.Matrix, y []int) error {
	n, c := X.Dims()
	if n == 0 {
		return ErrEmpty
	}
	if c != 2 {
		return fmt.Errorf("%w: got %d columns", ErrDims, c)
	}
	if n != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrLengthMismatch, n, len(y))
	}
	return checkClasses(y, min(len(r.Light), len(r.Bold)), "training")
}

func checkClasses(labels []int, n int, what string) error {
	for i, l := range labels {
		if l < 0 || l >= n {
			return fmt.Errorf("%w: %s label %d at %d, palette has %d colors", ErrClassRange, what, l, i, n)
		}
	}
	return nil
}

func (r *Renderer) className(k int) string {
	if k < len(r.ClassNames) {
		return r.ClassNames[k]
	}
	return fmt.Sprintf("class %d", k)
}

// classThumb draws a single glyph as a legend entry.
type classThumb struct {
	style draw.GlyphStyle
}

func (t classThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(t.style, c.Center())
}

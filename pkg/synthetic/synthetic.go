// Package synthetic generates labeled 2-D point clouds.
package synthetic

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// truncation of the normal distribution in standard deviations
const sigmaCut = 3

// Generator draws reproducible samples from a seeded source.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// TruncNormal returns samples of N(mean, stdDev) restricted to
// mean ± 3·stdDev by rejection.
func (g *Generator) TruncNormal(mean, stdDev float64, n int) []float64 {
	res := make([]float64, n)
	if stdDev <= 0 {
		for i := range res {
			res[i] = mean
		}
		return res
	}
	dist := distuv.Normal{Mu: mean, Sigma: stdDev, Src: g.rnd}
	low, high := mean-sigmaCut*stdDev, mean+sigmaCut*stdDev
	for i := range res {
		for {
			v := dist.Rand()
			if v >= low && v <= high {
				res[i] = v
				break
			}
		}
	}
	return res
}

// Blobs draws perClass points around every center. Rows are grouped by
// class, and the label of a point is the index of its center.
func (g *Generator) Blobs(centers [][2]float64, stdDev float64, perClass int) (*mat.Dense, []int) {
	n := len(centers) * perClass
	labels := make([]int, 0, n)
	data := make([]float64, 0, 2*n)
	for k, c := range centers {
		xs := g.TruncNormal(c[0], stdDev, perClass)
		ys := g.TruncNormal(c[1], stdDev, perClass)
		for i := range perClass {
			data = append(data, xs[i], ys[i])
			labels = append(labels, k)
		}
	}
	if n == 0 {
		return &mat.Dense{}, labels
	}
	return mat.NewDense(n, 2, data), labels
}

// IrisLikeCenters are the per-species means of sepal length and sepal
// width in Fisher's iris data.
func IrisLikeCenters() [][2]float64 {
	return [][2]float64{
		{5.006, 3.428}, // setosa
		{5.936, 2.770}, // versicolor
		{6.588, 2.974}, // virginica
	}
}

func IrisClassNames() []string {
	return []string{"setosa", "versicolor", "virginica"}
}

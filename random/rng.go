// Package random provides the seeded random number facility behind the
// spectral field generators: normal deviates, uniform directions on the
// (d-1)-sphere and samples from one dimensional distributions given as
// cdf/ppf pairs or as an unnormalized log density.
//
// All draws come from a single PCG stream per RNG, so a fixed seed yields
// a reproducible sequence across every operation.
package random

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
	"github.com/joshua-benabou/gstools-go/pkg/numeric"
)

// RNG is a seeded random number generator.
type RNG struct {
	seed    uint64
	src     rand.Source
	normal  distuv.Normal
	uniform distuv.Uniform
}

// New returns a generator seeded with the given value.
func New(seed uint64) *RNG {
	src := rand.NewPCG(seed, seed)
	return &RNG{
		seed:    seed,
		src:     src,
		normal:  distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() uint64 { return r.seed }

// Normal draws n standard normal deviates.
func (r *RNG) Normal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = r.normal.Rand()
	}
	return out
}

// NormalMat draws a rows x cols matrix whose rows are independent
// standard normal vectors.
func (r *RNG) NormalMat(rows, cols int) *mat.Dense {
	mu := make([]float64, cols)
	sigma := mat.NewSymDense(cols, nil)
	for i := 0; i < cols; i++ {
		sigma.SetSym(i, i, 1)
	}
	dist, ok := distmv.NewNormal(mu, sigma, r.src)
	if !ok {
		// identity covariance is always positive definite
		panic("random: identity normal rejected")
	}
	out := mat.NewDense(rows, cols, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		out.SetRow(i, dist.Rand(row))
	}
	return out
}

// Sphere draws n points uniformly distributed on the unit (dim-1)-sphere,
// one per column. In one dimension the points are +-1, in higher
// dimensions normalized normal vectors.
func (r *RNG) Sphere(dim, n int) *mat.Dense {
	out := mat.NewDense(dim, n, nil)
	if dim == 1 {
		for j := 0; j < n; j++ {
			if r.uniform.Rand() < 0.5 {
				out.Set(0, j, -1)
			} else {
				out.Set(0, j, 1)
			}
		}
		return out
	}
	vec := make([]float64, dim)
	for j := 0; j < n; j++ {
		nrm := 0.0
		for nrm < 1e-12 {
			for i := range vec {
				vec[i] = r.normal.Rand()
			}
			nrm = floats.Norm(vec, 2)
		}
		for i := range vec {
			out.Set(i, j, vec[i]/nrm)
		}
	}
	return out
}

// SampleDist draws n samples from the distribution described by the given
// cdf and/or ppf with lower support bound a. A ppf inverts uniform draws
// directly; with only a cdf the quantiles are inverted numerically.
func (r *RNG) SampleDist(cdf, ppf func(float64) float64, n int, a float64) ([]float64, error) {
	if cdf == nil && ppf == nil {
		return nil, gserrors.NewConfigurationError("random.SampleDist",
			"sampling needs a cdf or a ppf")
	}
	out := make([]float64, n)
	for i := range out {
		u := r.uniform.Rand()
		if ppf != nil {
			out[i] = ppf(u)
			continue
		}
		x, err := r.invertCDF(cdf, u, a)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// invertCDF solves cdf(x) = u for x >= a, expanding the upper bracket
// until the quantile is enclosed.
func (r *RNG) invertCDF(cdf func(float64) float64, u, a float64) (float64, error) {
	width := 1.0
	hi := a + width
	for i := 0; cdf(hi) < u; i++ {
		if i == 128 {
			return 0, gserrors.NewNumericalError("random.SampleDist",
				"cdf never reaches the requested quantile", []float64{u, hi}, i)
		}
		width *= 2
		hi = a + width
	}
	return numeric.Brent(func(x float64) float64 { return cdf(x) - u }, a, hi, 1e-12)
}

// Metropolis sampler tuning.
const (
	lnPDFBurnIn  = 256 // adaptation steps before any sample is kept
	lnPDFThin    = 8   // walker steps per returned sample
	lnPDFAdaptIn = 32  // acceptance window for step adaptation
)

// SampleLnPDF draws n samples from the unnormalized log density with a
// Metropolis random walk started at sampleAround, which must lie inside
// the support. The proposal step adapts toward an acceptance rate of
// about one half during burn-in and the chain is thinned afterwards, so
// the draws are approximately independent.
func (r *RNG) SampleLnPDF(lnPDF func(float64) float64, n int, sampleAround float64) []float64 {
	x := sampleAround
	lx := lnPDF(x)
	step := math.Abs(sampleAround)
	if step == 0 {
		step = 1
	}

	advance := func() bool {
		cand := x + step*r.normal.Rand()
		lc := lnPDF(cand)
		if lc >= lx || math.Log(r.uniform.Rand()) < lc-lx {
			x, lx = cand, lc
			return true
		}
		return false
	}

	accepted := 0
	for i := 1; i <= lnPDFBurnIn; i++ {
		if advance() {
			accepted++
		}
		if i%lnPDFAdaptIn == 0 {
			rate := float64(accepted) / lnPDFAdaptIn
			switch {
			case rate > 0.55:
				step *= 1.2
			case rate < 0.45:
				step *= 0.8
			}
			accepted = 0
		}
	}

	out := make([]float64, n)
	for i := range out {
		for k := 0; k < lnPDFThin; k++ {
			advance()
		}
		out[i] = x
	}
	return out
}

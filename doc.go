// Package gstools provides covariance models, spectral random field
// generation and variogram estimation for geostatistical applications
// in Go.
//
// The library follows the GSTools way of describing spatial correlation:
// a covariance model fixes variance, length scale, nugget, anisotropy
// and rotation, and a randomization-method generator turns that model
// into stationary Gaussian random fields on arbitrary point sets.
//
// # Features
//
// - Covariance models: Gaussian, Exponential, Matern, Stable, Rational,
// Spherical, Linear and truncated power law variants
// - Random fields: scalar, incompressible vector and periodic vector
// fields via the spectral randomization method
// - Variogram estimation: Matheron estimator for unstructured point
// clouds and structured grids
// - Field normalizers: Box-Cox style power transforms with maximum
// likelihood fitting
// - CPU-parallel summation kernels with automatic chunking
// - Typed errors with full cause chains
//
// # Installation
//
// Install using go get:
//
//	go get github.com/joshua-benabou/gstools-go
//
// # Quick Start
//
// Generate a two dimensional Gaussian random field:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/joshua-benabou/gstools-go/covmodel"
//	    "github.com/joshua-benabou/gstools-go/field"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    model, err := covmodel.New(covmodel.Gaussian, covmodel.Config{
//	        Dim:      2,
//	        Var:      1.5,
//	        LenScale: 10,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    gen, err := field.NewRandMeth(model, field.Config{Seed: 19970221})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // three points, one per column
//	    pos := mat.NewDense(2, 3, []float64{0, 1, 2, 0, 0, 0})
//	    out, err := gen.Generate(pos, true)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("field values:", out.RawRowView(0))
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - covmodel: covariance model families, anisotropy and rotation,
//     spectral densities and integral scales
//   - field: spectral random field generators (scalar, incompressible,
//     zero-velocity periodic and generic vector variants)
//   - variogram: empirical variogram estimation
//   - normalize: power transforms and likelihood fitting
//   - random: seeded random number generation and distribution sampling
//   - hankel: radial Fourier transforms
//   - core/parallel: parallel processing utilities
//
// # Performance
//
// The summation kernels parallelize over query points and fall back to
// a sequential loop for small inputs, so single-point evaluations stay
// allocation-friendly while large grids use all CPU cores.
//
// # License
//
// Released under the MIT License.
package gstools

// Package numeric provides shared numerical routines: scalar root finding,
// semi-infinite quadrature and the special functions needed by the
// covariance model families.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/joshua-benabou/gstools-go/pkg/errors"
)

const (
	quadMinNodes = 16
	quadMaxNodes = 8192
)

// QuadInf integrates f over [0, inf). The half line is compactified with
// r = t/(1-t) and integrated with Gauss-Legendre panels, doubling the node
// count until two successive estimates agree to rtol. Integrands are
// expected to decay; values where the transformed integrand is not finite
// count as zero.
func QuadInf(f func(float64) float64, rtol float64) (float64, error) {
	g := func(t float64) float64 {
		u := 1 - t
		if u <= 0 {
			return 0
		}
		r := t / u
		v := f(r) / (u * u)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	}

	prev := quad.Fixed(g, 0, 1, quadMinNodes, quad.Legendre{}, 0)
	for n := 2 * quadMinNodes; n <= quadMaxNodes; n *= 2 {
		cur := quad.Fixed(g, 0, 1, n, quad.Legendre{}, 0)
		if math.Abs(cur-prev) <= rtol*math.Abs(cur)+1e-300 {
			return cur, nil
		}
		prev = cur
	}

	cur := quad.Fixed(g, 0, 1, 2*quadMaxNodes, quad.Legendre{}, 0)
	if math.Abs(cur-prev) <= rtol*math.Abs(cur)+1e-300 {
		return cur, nil
	}
	return cur, errors.NewNumericalError(
		"numeric.QuadInf", "integral did not converge",
		[]float64{prev, cur}, 2*quadMaxNodes,
	)
}

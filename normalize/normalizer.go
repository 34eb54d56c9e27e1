// Package normalize provides parametric power transforms that map skewed
// field data to an approximately normal distribution and back. Every
// normalizer is a strictly monotone bijection on its domain with a
// closed-form derivative, so the normal log likelihood of transformed
// data can be corrected by the Jacobian and maximized to fit the
// transform parameters from data.
package normalize

import (
	"fmt"
	"math"
	"strings"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// Normalizer is a parametric bijection between field values and a
// normally distributed surrogate. Normalize and Denormalize are inverse
// to each other on the valid domain, and Derivative is the pointwise
// derivative of Normalize, which enters the likelihood as the Jacobian
// correction.
type Normalizer interface {
	// Name returns the family name.
	Name() string
	// ParamNames lists the tunable parameters in the order used by
	// Params and SetParams.
	ParamNames() []string
	Params() []float64
	SetParams(params []float64) error

	Normalize(data []float64) ([]float64, error)
	Denormalize(data []float64) ([]float64, error)
	Derivative(data []float64) ([]float64, error)

	fmt.Stringer
}

// Exponents this close to zero are evaluated in their logarithmic limit
// to keep the power branches numerically stable.
const lmbdaTol = 1e-8

func nearZero(v float64) bool { return math.Abs(v) <= lmbdaTol }

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// transformSlice applies f to every element, stopping at the first
// domain violation.
func transformSlice(data []float64, f func(float64) (float64, error)) ([]float64, error) {
	out := make([]float64, len(data))
	for i, x := range data {
		v, err := f(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// formatNormalizer renders the canonical one-line representation,
// e.g. "BoxCox(lmbda=1.5)".
func formatNormalizer(n Normalizer) string {
	names := n.ParamNames()
	vals := n.Params()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%.3g", name, vals[i])
	}
	return n.Name() + "(" + strings.Join(parts, ", ") + ")"
}

func checkParamCount(op string, want, got int) error {
	if want != got {
		return gserrors.NewValueError(op,
			fmt.Sprintf("expected parameter vector of length %d, got %d", want, got))
	}
	return nil
}

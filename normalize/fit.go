package normalize

import (
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
	gslog "github.com/joshua-benabou/gstools-go/pkg/log"
)

// derivativeFloor keeps vanishing Jacobian terms from collapsing the
// log likelihood to -Inf.
const derivativeFloor = 1e-16

// Loglik evaluates the log likelihood of the data under the assumption
// that the normalized data is normally distributed with unknown mean and
// variance. Both are profiled out analytically, and the Jacobian of the
// transform enters through the sum of the log derivatives.
func Loglik(n Normalizer, data []float64) (float64, error) {
	if len(data) == 0 {
		return 0, gserrors.NewValueError("normalize.Loglik", "data must not be empty")
	}
	norm, err := n.Normalize(data)
	if err != nil {
		return 0, err
	}
	deriv, err := n.Derivative(data)
	if err != nil {
		return 0, err
	}
	size := float64(len(data))
	variance := stat.MomentAbout(2, norm, stat.Mean(norm, nil), nil)
	loglik := -0.5 * size * math.Log(variance)
	for _, d := range deriv {
		loglik += math.Log(math.Max(derivativeFloor, d))
	}
	return loglik - 0.5*size*(math.Log(2*math.Pi)+1), nil
}

// Fit maximizes Loglik over the normalizer's parameter vector with
// Nelder-Mead, starting from the current parameters. The fitted vector
// is stored on the normalizer and returned. Normalizers without
// parameters are left untouched.
//
// Parameter vectors that put the data outside the transform domain are
// treated as infinitely unlikely, so the search cannot leave the valid
// region once started inside it. An optimizer failure is reported
// through the warning handler and the best parameters found so far are
// kept.
func Fit(n Normalizer, data []float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, gserrors.NewValueError("normalize.Fit", "data must not be empty")
	}
	start := n.Params()
	if len(start) == 0 {
		return nil, nil
	}

	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			if err := n.SetParams(params); err != nil {
				return math.Inf(1)
			}
			loglik, err := Loglik(n, data)
			if err != nil || math.IsNaN(loglik) || math.IsInf(loglik, 0) {
				return math.Inf(1)
			}
			return -loglik
		},
	}

	result, err := optimize.Minimize(problem, start, nil, &optimize.NelderMead{})
	if err != nil {
		iters := 0
		if result != nil {
			iters = result.Stats.MajorIterations
		}
		gserrors.Warn(gserrors.NewConvergenceWarning("normalize.Fit", iters, err.Error()))
	}
	best, bestVal := start, math.Inf(1)
	if result != nil {
		best, bestVal = result.X, result.F
	}
	if math.IsInf(bestVal, 1) || math.IsNaN(bestVal) {
		// nothing along the search was evaluable; keep the caller's
		// parameters instead of a meaningless simplex vertex
		if restoreErr := n.SetParams(start); restoreErr != nil {
			return nil, restoreErr
		}
		return nil, gserrors.NewValueError("normalize.Fit",
			"log likelihood is not finite anywhere along the search; check the data against the transform domain")
	}
	if err := n.SetParams(best); err != nil {
		return nil, err
	}
	gslog.GetLoggerWithName("normalize").Debug("normalizer fitted",
		gslog.OperationKey, gslog.OperationFit,
		"normalizer", n.Name(),
		"params", best,
		"loglik", -bestVal,
		gslog.EvaluationsKey, result.Stats.FuncEvaluations,
	)
	return best, nil
}

package hankel

import "math"

// The transform needs Bessel functions of the first kind at orders
// nu = dim/2 - 1 for dim in 1..3, so only nu in {-1/2, 0, +1/2} ever
// occurs. The half-integer orders reduce to trigonometric closed forms
// and order zero is covered by the standard library.

// besselJ evaluates J_nu(x) for the supported orders.
func besselJ(nu, x float64) float64 {
	switch nu {
	case -0.5:
		return math.Sqrt(2/(math.Pi*x)) * math.Cos(x)
	case 0.5:
		return math.Sqrt(2/(math.Pi*x)) * math.Sin(x)
	default:
		return math.J0(x)
	}
}

// besselZeros returns the first n positive zeros of J_nu.
func besselZeros(nu float64, n int) []float64 {
	zeros := make([]float64, n)
	switch nu {
	case -0.5:
		// J_{-1/2} is proportional to cos.
		for j := range zeros {
			zeros[j] = (float64(j) + 0.5) * math.Pi
		}
	case 0.5:
		// J_{1/2} is proportional to sin.
		for j := range zeros {
			zeros[j] = float64(j+1) * math.Pi
		}
	default:
		for j := range zeros {
			zeros[j] = besselJ0Zero(j + 1)
		}
	}
	return zeros
}

// besselJ0Zero computes the j-th positive zero of J_0 from the McMahon
// expansion refined by Newton iterations.
func besselJ0Zero(j int) float64 {
	beta := (float64(j) - 0.25) * math.Pi
	b8 := 8 * beta
	x := beta + 1/b8 - 124/(3*b8*b8*b8) + 120928/(15*math.Pow(b8, 5))
	for i := 0; i < 3; i++ {
		// J_0' = -J_1
		x += math.J0(x) / math.J1(x)
	}
	return x
}

// besselWeight returns the Ogata quadrature weight Y_nu(xi)/J_{nu+1}(xi)
// at the zero xi of J_nu. For the half-integer orders the ratio is exactly
// one.
func besselWeight(nu, xi float64) float64 {
	switch nu {
	case -0.5, 0.5:
		return 1
	default:
		return math.Y0(xi) / math.J1(xi)
	}
}

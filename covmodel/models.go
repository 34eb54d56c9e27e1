package covmodel

import (
	"math"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
	"github.com/joshua-benabou/gstools-go/pkg/numeric"
)

// The standard isotropic families. Each supplies the non-dimensional
// correlation cor(h) with h = r / len_rescaled; analytic hooks for the
// spectral density, the radial spectral cdf/ppf and the integral scale are
// given where closed forms exist, everything else falls back to the
// numerical machinery in the model core.

var gaussianSpec = familySpec{
	name:      "Gaussian",
	primitive: primitiveCor,
	cor: func(_ *CovModel, h float64) float64 {
		return math.Exp(-math.Pi / 4 * h * h)
	},
	// The scaling pi/4 makes the integral scale coincide with the
	// length scale.
	integralScale: func(m *CovModel) float64 { return m.LenRescaled() },
	spectralDensity: func(m *CovModel, k float64) float64 {
		l := m.LenRescaled()
		return math.Pow(l/math.Pi, float64(m.dim)) * math.Exp(-(k*l)*(k*l)/math.Pi)
	},
	radialCDF: func(m *CovModel, r float64) float64 {
		l := m.LenRescaled()
		switch m.dim {
		case 1:
			return math.Erf(l * r / math.Sqrt(math.Pi))
		case 2:
			return 1 - math.Exp(-(r*l)*(r*l)/math.Pi)
		default:
			return math.Erf(l*r/math.Sqrt(math.Pi)) -
				2*r*l/math.Pi*math.Exp(-(r*l)*(r*l)/math.Pi)
		}
	},
	radialPPF: func(m *CovModel, u float64) float64 {
		l := m.LenRescaled()
		switch m.dim {
		case 1:
			return math.Sqrt(math.Pi) / l * math.Erfinv(u)
		case 2:
			return math.Sqrt(math.Pi) / l * math.Sqrt(-math.Log1p(-u))
		default:
			// no closed form in 3D
			return math.NaN()
		}
	},
	hasPPF: func(m *CovModel) bool { return m.dim <= 2 },
}

var exponentialSpec = familySpec{
	name:      "Exponential",
	primitive: primitiveCor,
	cor: func(_ *CovModel, h float64) float64 {
		return math.Exp(-h)
	},
	integralScale: func(m *CovModel) float64 { return m.LenRescaled() },
	spectralDensity: func(m *CovModel, k float64) float64 {
		l := m.LenRescaled()
		d := float64(m.dim)
		return math.Pow(l, d) * math.Gamma((d+1)/2) /
			math.Pow(math.Pi*(1+(k*l)*(k*l)), (d+1)/2)
	},
	radialCDF: func(m *CovModel, r float64) float64 {
		x := r * m.LenRescaled()
		switch m.dim {
		case 1:
			return 2 / math.Pi * math.Atan(x)
		case 2:
			return 1 - 1/math.Sqrt(1+x*x)
		default:
			return 2 / math.Pi * (math.Atan(x) - x/(1+x*x))
		}
	},
	radialPPF: func(m *CovModel, u float64) float64 {
		l := m.LenRescaled()
		switch m.dim {
		case 1:
			return math.Tan(math.Pi/2*u) / l
		case 2:
			return math.Sqrt(1/((1-u)*(1-u))-1) / l
		default:
			return math.NaN()
		}
	},
	hasPPF: func(m *CovModel) bool { return m.dim <= 2 },
}

var maternSpec = familySpec{
	name:      "Matern",
	primitive: primitiveCor,
	optArgs: []optArg{
		{name: "nu", def: 1.0, bounds: Bounds{Min: 0.2, Max: 30, Type: BoundClosedClosed}},
	},
	cor: func(m *CovModel, h float64) float64 {
		nu := m.opt("nu")
		q := math.Sqrt(nu) * math.Abs(h)
		if q < 1e-8 {
			return 1
		}
		// evaluate in log space to survive large nu at small lags
		lg, _ := math.Lgamma(nu)
		res := math.Exp((1-nu)*math.Ln2 - lg + nu*math.Log(q) +
			numeric.LogBesselK(nu, q))
		if math.IsNaN(res) || math.IsInf(res, 0) {
			return 0
		}
		return math.Max(res, 0)
	},
	spectralDensity: func(m *CovModel, k float64) float64 {
		nu := m.opt("nu")
		l := m.LenRescaled()
		d := float64(m.dim)
		lgNuD, _ := math.Lgamma(nu + d/2)
		lgNu, _ := math.Lgamma(nu)
		return math.Pow(l/math.Sqrt(math.Pi), d) * math.Exp(
			-(nu+d/2)*math.Log(1+(k*l)*(k*l)/nu)+
				lgNuD-lgNu-d/2*math.Log(nu))
	},
}

var stableSpec = familySpec{
	name:      "Stable",
	primitive: primitiveCor,
	optArgs: []optArg{
		{name: "alpha", def: 1.5, bounds: Bounds{Min: 0, Max: 2, Type: BoundOpenClosed}},
	},
	cor: func(m *CovModel, h float64) float64 {
		return math.Exp(-math.Pow(math.Abs(h), m.opt("alpha")))
	},
	checkOptArgs: func(m *CovModel) {
		if a := m.opt("alpha"); a < 0.3 {
			gserrors.Warn(gserrors.Newf(
				"Stable: parameter 'alpha' = %g is below 0.3, "+
					"expect unstable numerics", a))
		}
	},
}

var rationalSpec = familySpec{
	name:      "Rational",
	primitive: primitiveCor,
	optArgs: []optArg{
		{name: "alpha", def: 1.0, bounds: Bounds{Min: 0.5, Max: 50, Type: BoundClosedClosed}},
	},
	cor: func(m *CovModel, h float64) float64 {
		a := m.opt("alpha")
		return math.Pow(1+h*h/a, -a)
	},
}

var sphericalSpec = familySpec{
	name:      "Spherical",
	primitive: primitiveCor,
	cor: func(_ *CovModel, h float64) float64 {
		h = math.Min(math.Abs(h), 1)
		return 1 - 1.5*h + 0.5*h*h*h
	},
	integralScale: func(m *CovModel) float64 { return 3.0 / 8.0 * m.LenRescaled() },
}

var linearSpec = familySpec{
	name:      "Linear",
	primitive: primitiveCor,
	cor: func(_ *CovModel, h float64) float64 {
		h = math.Min(math.Abs(h), 1)
		return 1 - h
	},
	integralScale: func(m *CovModel) float64 { return m.LenRescaled() / 2 },
}

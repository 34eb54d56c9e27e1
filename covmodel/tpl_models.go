package covmodel

import (
	"math"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
	"github.com/joshua-benabou/gstools-go/pkg/numeric"
)

// Truncated power law families. A TPL model superposes modes of a base
// family with length scales between a lower cutoff len_low and an upper
// cutoff len_low + len_scale, weighted by a power law with Hurst exponent.
// They supply the correlation over absolute distance since the cutoff pair
// breaks the single-length-scale shape the cor primitive assumes.

// lenUpTrunc is the rescaled upper truncation (len_low + len_scale) / rescale.
func lenUpTrunc(m *CovModel) float64 {
	return (m.opt("len_low") + m.lenScale) / m.rescale
}

// lenLowTrunc is the rescaled lower truncation len_low / rescale.
func lenLowTrunc(m *CovModel) float64 {
	return m.opt("len_low") / m.rescale
}

// tplVarFactor converts the raw mode variance into the variance of the
// superposed field: (up^2H - low^2H) / 2H.
func tplVarFactor(m *CovModel) float64 {
	h2 := 2 * m.opt("hurst")
	return (math.Pow(lenUpTrunc(m), h2) - math.Pow(lenLowTrunc(m), h2)) / h2
}

// tplCorrelation combines the single-cutoff correlation base into the
// two-cutoff superposition. base takes the distance scaled by the cutoff.
func tplCorrelation(m *CovModel, r float64, base func(h float64) float64) float64 {
	r = math.Abs(r)
	low, up := lenLowTrunc(m), lenUpTrunc(m)
	if isclose(low, 0) {
		return base(r / m.LenRescaled())
	}
	h2 := 2 * m.opt("hurst")
	pu, pl := math.Pow(up, h2), math.Pow(low, h2)
	return (pu*base(r/up) - pl*base(r/low)) / (pu - pl)
}

// tplGaussCor is the correlation of power law superposed Gaussian modes
// truncated at scale 1: exp(-z) - z^H * Gamma(1-H, z) with z = pi/4 h^2.
func tplGaussCor(h, hurst float64) float64 {
	h = math.Abs(h)
	if isclose(h, 0) {
		return 1
	}
	z := math.Pi / 4 * h * h
	res := math.Exp(-z) - math.Pow(z, hurst)*numeric.UpperIncGamma(1-hurst, z)
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0
	}
	return res
}

// tplStableCor is the correlation of power law superposed stable modes
// truncated at scale 1: 2H/alpha * h^2H * Gamma(-2H/alpha, h^alpha).
// Exponential modes are the special case alpha = 1.
func tplStableCor(h, hurst, alpha float64) float64 {
	h = math.Abs(h)
	if isclose(h, 0) {
		return 1
	}
	h2 := 2 * hurst
	res := h2 / alpha * math.Pow(h, h2) *
		numeric.UpperIncGamma(-h2/alpha, math.Pow(h, alpha))
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return 0
	}
	return res
}

var tplGaussianSpec = familySpec{
	name:      "TPLGaussian",
	primitive: primitiveCorrelation,
	optArgs: []optArg{
		{name: "hurst", def: 0.5, bounds: Bounds{Min: 0, Max: 1, Type: BoundOpenOpen}},
		{name: "len_low", def: 0, bounds: Bounds{Min: 0, Max: math.Inf(1), Type: BoundClosedOpen}},
	},
	correlation: func(m *CovModel, r float64) float64 {
		hurst := m.opt("hurst")
		return tplCorrelation(m, r, func(h float64) float64 {
			return tplGaussCor(h, hurst)
		})
	},
	varFactor: tplVarFactor,
}

var tplExponentialSpec = familySpec{
	name:      "TPLExponential",
	primitive: primitiveCorrelation,
	optArgs: []optArg{
		{name: "hurst", def: 0.5, bounds: Bounds{Min: 0, Max: 1, Type: BoundOpenOpen}},
		{name: "len_low", def: 0, bounds: Bounds{Min: 0, Max: math.Inf(1), Type: BoundClosedOpen}},
	},
	correlation: func(m *CovModel, r float64) float64 {
		hurst := m.opt("hurst")
		return tplCorrelation(m, r, func(h float64) float64 {
			return tplStableCor(h, hurst, 1)
		})
	},
	varFactor: tplVarFactor,
}

var tplStableSpec = familySpec{
	name:      "TPLStable",
	primitive: primitiveCorrelation,
	optArgs: []optArg{
		{name: "hurst", def: 0.5, bounds: Bounds{Min: 0, Max: 1, Type: BoundOpenOpen}},
		{name: "alpha", def: 1.5, bounds: Bounds{Min: 0, Max: 2, Type: BoundOpenClosed}},
		{name: "len_low", def: 0, bounds: Bounds{Min: 0, Max: math.Inf(1), Type: BoundClosedOpen}},
	},
	correlation: func(m *CovModel, r float64) float64 {
		hurst, alpha := m.opt("hurst"), m.opt("alpha")
		return tplCorrelation(m, r, func(h float64) float64 {
			return tplStableCor(h, hurst, alpha)
		})
	},
	varFactor: tplVarFactor,
	checkOptArgs: func(m *CovModel) {
		if a := m.opt("alpha"); a < 0.3 {
			gserrors.Warn(gserrors.Newf(
				"TPLStable: parameter 'alpha' = %g is below 0.3, "+
					"expect unstable numerics", a))
		}
	},
}

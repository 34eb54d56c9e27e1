package normalize

import (
	"fmt"
	"math"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// The standard normalizer families. Parameters are plain exported
// fields, so a literal like &BoxCox{Lmbda: 0.5} is ready to use; the
// zero value of each family is a valid starting point for fitting.

// LogNormal maps log-normally distributed data to a normal surrogate by
// taking logarithms. It has no tunable parameters.
type LogNormal struct{}

func (n *LogNormal) Name() string         { return "LogNormal" }
func (n *LogNormal) ParamNames() []string { return nil }
func (n *LogNormal) Params() []float64    { return nil }
func (n *LogNormal) String() string       { return formatNormalizer(n) }

func (n *LogNormal) SetParams(params []float64) error {
	return checkParamCount("LogNormal.SetParams", 0, len(params))
}

func (n *LogNormal) Normalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x <= 0 {
			return 0, gserrors.NewValueError("LogNormal.Normalize",
				fmt.Sprintf("data must be positive, got %g", x))
		}
		return math.Log(x), nil
	})
}

func (n *LogNormal) Denormalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		return math.Exp(x), nil
	})
}

func (n *LogNormal) Derivative(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x <= 0 {
			return 0, gserrors.NewValueError("LogNormal.Derivative",
				fmt.Sprintf("data must be positive, got %g", x))
		}
		return 1 / x, nil
	})
}

// BoxCox is the classic power transform for strictly positive data,
//
//	y = (x^lmbda - 1) / lmbda    for lmbda != 0
//	y = ln(x)                    for lmbda == 0
//
// The zero value is the pure logarithmic transform.
type BoxCox struct {
	Lmbda float64
}

func (n *BoxCox) Name() string         { return "BoxCox" }
func (n *BoxCox) ParamNames() []string { return []string{"lmbda"} }
func (n *BoxCox) Params() []float64    { return []float64{n.Lmbda} }
func (n *BoxCox) String() string       { return formatNormalizer(n) }

func (n *BoxCox) SetParams(params []float64) error {
	if err := checkParamCount("BoxCox.SetParams", 1, len(params)); err != nil {
		return err
	}
	n.Lmbda = params[0]
	return nil
}

func (n *BoxCox) Normalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x <= 0 {
			return 0, gserrors.NewValueError("BoxCox.Normalize",
				fmt.Sprintf("data must be positive, got %g", x))
		}
		if nearZero(n.Lmbda) {
			return math.Log(x), nil
		}
		return (math.Pow(x, n.Lmbda) - 1) / n.Lmbda, nil
	})
}

func (n *BoxCox) Denormalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if nearZero(n.Lmbda) {
			return math.Exp(x), nil
		}
		base := 1 + n.Lmbda*x
		if base <= 0 {
			return 0, gserrors.NewValueError("BoxCox.Denormalize",
				fmt.Sprintf("value %g is outside the transform range for lmbda=%g", x, n.Lmbda))
		}
		return math.Pow(base, 1/n.Lmbda), nil
	})
}

func (n *BoxCox) Derivative(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x <= 0 {
			return 0, gserrors.NewValueError("BoxCox.Derivative",
				fmt.Sprintf("data must be positive, got %g", x))
		}
		return math.Pow(x, n.Lmbda-1), nil
	})
}

// BoxCoxShift extends BoxCox with an additive shift so data that is
// merely bounded below can be moved onto the positive half axis,
//
//	y = ((x + shift)^lmbda - 1) / lmbda
//
// Fitting adjusts lmbda and shift together.
type BoxCoxShift struct {
	Lmbda float64
	Shift float64
}

func (n *BoxCoxShift) Name() string         { return "BoxCoxShift" }
func (n *BoxCoxShift) ParamNames() []string { return []string{"lmbda", "shift"} }
func (n *BoxCoxShift) Params() []float64    { return []float64{n.Lmbda, n.Shift} }
func (n *BoxCoxShift) String() string       { return formatNormalizer(n) }

func (n *BoxCoxShift) SetParams(params []float64) error {
	if err := checkParamCount("BoxCoxShift.SetParams", 2, len(params)); err != nil {
		return err
	}
	n.Lmbda, n.Shift = params[0], params[1]
	return nil
}

func (n *BoxCoxShift) Normalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		s := x + n.Shift
		if s <= 0 {
			return 0, gserrors.NewValueError("BoxCoxShift.Normalize",
				fmt.Sprintf("shifted data must be positive, got %g with shift=%g", x, n.Shift))
		}
		if nearZero(n.Lmbda) {
			return math.Log(s), nil
		}
		return (math.Pow(s, n.Lmbda) - 1) / n.Lmbda, nil
	})
}

func (n *BoxCoxShift) Denormalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if nearZero(n.Lmbda) {
			return math.Exp(x) - n.Shift, nil
		}
		base := 1 + n.Lmbda*x
		if base <= 0 {
			return 0, gserrors.NewValueError("BoxCoxShift.Denormalize",
				fmt.Sprintf("value %g is outside the transform range for lmbda=%g", x, n.Lmbda))
		}
		return math.Pow(base, 1/n.Lmbda) - n.Shift, nil
	})
}

func (n *BoxCoxShift) Derivative(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		s := x + n.Shift
		if s <= 0 {
			return 0, gserrors.NewValueError("BoxCoxShift.Derivative",
				fmt.Sprintf("shifted data must be positive, got %g with shift=%g", x, n.Shift))
		}
		return math.Pow(s, n.Lmbda-1), nil
	})
}

// YeoJohnson generalizes BoxCox to the whole real line by gluing a
// power transform for non-negative values to a mirrored one for
// negative values,
//
//	y = ((x+1)^lmbda - 1) / lmbda               for x >= 0, lmbda != 0
//	y = ln(x+1)                                 for x >= 0, lmbda == 0
//	y = -((1-x)^(2-lmbda) - 1) / (2-lmbda)      for x < 0,  lmbda != 2
//	y = -ln(1-x)                                for x < 0,  lmbda == 2
//
// The transform preserves the sign of its argument.
type YeoJohnson struct {
	Lmbda float64
}

func (n *YeoJohnson) Name() string         { return "YeoJohnson" }
func (n *YeoJohnson) ParamNames() []string { return []string{"lmbda"} }
func (n *YeoJohnson) Params() []float64    { return []float64{n.Lmbda} }
func (n *YeoJohnson) String() string       { return formatNormalizer(n) }

func (n *YeoJohnson) SetParams(params []float64) error {
	if err := checkParamCount("YeoJohnson.SetParams", 1, len(params)); err != nil {
		return err
	}
	n.Lmbda = params[0]
	return nil
}

func (n *YeoJohnson) Normalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x >= 0 {
			if nearZero(n.Lmbda) {
				return math.Log1p(x), nil
			}
			return (math.Pow(x+1, n.Lmbda) - 1) / n.Lmbda, nil
		}
		if nearZero(n.Lmbda - 2) {
			return -math.Log1p(-x), nil
		}
		return -(math.Pow(1-x, 2-n.Lmbda) - 1) / (2 - n.Lmbda), nil
	})
}

func (n *YeoJohnson) Denormalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x >= 0 {
			if nearZero(n.Lmbda) {
				return math.Expm1(x), nil
			}
			base := 1 + n.Lmbda*x
			if base <= 0 {
				return 0, gserrors.NewValueError("YeoJohnson.Denormalize",
					fmt.Sprintf("value %g is outside the transform range for lmbda=%g", x, n.Lmbda))
			}
			return math.Pow(base, 1/n.Lmbda) - 1, nil
		}
		if nearZero(n.Lmbda - 2) {
			return 1 - math.Exp(-x), nil
		}
		base := 1 - (2-n.Lmbda)*x
		if base <= 0 {
			return 0, gserrors.NewValueError("YeoJohnson.Denormalize",
				fmt.Sprintf("value %g is outside the transform range for lmbda=%g", x, n.Lmbda))
		}
		return 1 - math.Pow(base, 1/(2-n.Lmbda)), nil
	})
}

func (n *YeoJohnson) Derivative(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if x >= 0 {
			return math.Pow(x+1, n.Lmbda-1), nil
		}
		return math.Pow(1-x, 1-n.Lmbda), nil
	})
}

// Modulus applies a BoxCox style power transform to the magnitude of
// the data while keeping its sign, which preserves symmetry around
// zero,
//
//	y = sign(x) ((|x|+1)^lmbda - 1) / lmbda    for lmbda != 0
//	y = sign(x) ln(|x|+1)                      for lmbda == 0
type Modulus struct {
	Lmbda float64
}

func (n *Modulus) Name() string         { return "Modulus" }
func (n *Modulus) ParamNames() []string { return []string{"lmbda"} }
func (n *Modulus) Params() []float64    { return []float64{n.Lmbda} }
func (n *Modulus) String() string       { return formatNormalizer(n) }

func (n *Modulus) SetParams(params []float64) error {
	if err := checkParamCount("Modulus.SetParams", 1, len(params)); err != nil {
		return err
	}
	n.Lmbda = params[0]
	return nil
}

func (n *Modulus) Normalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if nearZero(n.Lmbda) {
			return sign(x) * math.Log1p(math.Abs(x)), nil
		}
		return sign(x) * (math.Pow(math.Abs(x)+1, n.Lmbda) - 1) / n.Lmbda, nil
	})
}

func (n *Modulus) Denormalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if nearZero(n.Lmbda) {
			return sign(x) * math.Expm1(math.Abs(x)), nil
		}
		base := 1 + n.Lmbda*math.Abs(x)
		if base <= 0 {
			return 0, gserrors.NewValueError("Modulus.Denormalize",
				fmt.Sprintf("value %g is outside the transform range for lmbda=%g", x, n.Lmbda))
		}
		return sign(x) * (math.Pow(base, 1/n.Lmbda) - 1), nil
	})
}

func (n *Modulus) Derivative(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		return math.Pow(math.Abs(x)+1, n.Lmbda-1), nil
	})
}

// Manly is an exponential transform for data with one-sided skewness,
// defined on the whole real line,
//
//	y = (exp(lmbda x) - 1) / lmbda    for lmbda != 0
//	y = x                             for lmbda == 0
type Manly struct {
	Lmbda float64
}

func (n *Manly) Name() string         { return "Manly" }
func (n *Manly) ParamNames() []string { return []string{"lmbda"} }
func (n *Manly) Params() []float64    { return []float64{n.Lmbda} }
func (n *Manly) String() string       { return formatNormalizer(n) }

func (n *Manly) SetParams(params []float64) error {
	if err := checkParamCount("Manly.SetParams", 1, len(params)); err != nil {
		return err
	}
	n.Lmbda = params[0]
	return nil
}

func (n *Manly) Normalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if nearZero(n.Lmbda) {
			return x, nil
		}
		return math.Expm1(n.Lmbda*x) / n.Lmbda, nil
	})
}

func (n *Manly) Denormalize(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		if nearZero(n.Lmbda) {
			return x, nil
		}
		if 1+n.Lmbda*x <= 0 {
			return 0, gserrors.NewValueError("Manly.Denormalize",
				fmt.Sprintf("value %g is outside the transform range for lmbda=%g", x, n.Lmbda))
		}
		return math.Log1p(n.Lmbda*x) / n.Lmbda, nil
	})
}

func (n *Manly) Derivative(data []float64) ([]float64, error) {
	return transformSlice(data, func(x float64) (float64, error) {
		return math.Exp(n.Lmbda * x), nil
	})
}

package covmodel

import (
	"math"

	"gonum.org/v1/gonum/mat"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// anglesCount returns the number of rotation angles of a dim-dimensional
// coordinate system: 0 in 1D, 1 in 2D, 3 in 3D (Tait-Bryan convention).
func anglesCount(dim int) int {
	return dim * (dim - 1) / 2
}

// normalizeAngles pads or truncates the angle list to the dimension's
// convention and maps every angle into [0, 2*pi).
func normalizeAngles(dim int, angles []float64) []float64 {
	n := anglesCount(dim)
	out := make([]float64, n)
	for i := 0; i < n && i < len(angles); i++ {
		a := math.Mod(angles[i], 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
		out[i] = a
	}
	return out
}

// normalizeAnis brings the anisotropy ratios to length dim-1. Missing
// leading ratios are filled with 1, surplus ones are cut off. All ratios
// must be positive.
func normalizeAnis(dim int, anis []float64) ([]float64, error) {
	n := dim - 1
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0
	}
	if len(anis) > n {
		anis = anis[:n]
	}
	// align given ratios with the trailing directions
	copy(out[n-len(anis):], anis)
	for _, a := range out {
		if !(a > 0) {
			return nil, gserrors.NewValueError(
				"covmodel", "anisotropy ratios must be positive")
		}
	}
	return out, nil
}

func rot2d(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(2, 2, []float64{c, -s, s, c})
}

func rot3dX(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

func rot3dY(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	})
}

func rot3dZ(theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// rotationMatrix rotates points into the target coordinate system. In 3D
// the angles are applied as yaw (z), pitch (y), roll (x).
func rotationMatrix(dim int, angles []float64) *mat.Dense {
	switch dim {
	case 1:
		return mat.NewDense(1, 1, []float64{1})
	case 2:
		return rot2d(angles[0])
	default:
		var zy, zyx mat.Dense
		zy.Mul(rot3dZ(angles[0]), rot3dY(angles[1]))
		zyx.Mul(&zy, rot3dX(angles[2]))
		return &zyx
	}
}

// derotationMatrix rotates points back into the initial coordinate system.
// It is the inverse of rotationMatrix, built from negated angles applied in
// reverse order.
func derotationMatrix(dim int, angles []float64) *mat.Dense {
	switch dim {
	case 1:
		return mat.NewDense(1, 1, []float64{1})
	case 2:
		return rot2d(-angles[0])
	default:
		var xy, xyz mat.Dense
		xy.Mul(rot3dX(-angles[2]), rot3dY(-angles[1]))
		xyz.Mul(&xy, rot3dZ(-angles[0]))
		return &xyz
	}
}

// isotropifyMatrix stretches the transversal directions by the inverse
// anisotropy ratios, mapping anisotropic distances onto isotropic ones.
func isotropifyMatrix(dim int, anis []float64) *mat.Dense {
	d := mat.NewDense(dim, dim, nil)
	d.Set(0, 0, 1)
	for i := 1; i < dim; i++ {
		d.Set(i, i, 1/anis[i-1])
	}
	return d
}

// anisotropifyMatrix is the inverse of isotropifyMatrix.
func anisotropifyMatrix(dim int, anis []float64) *mat.Dense {
	d := mat.NewDense(dim, dim, nil)
	d.Set(0, 0, 1)
	for i := 1; i < dim; i++ {
		d.Set(i, i, anis[i-1])
	}
	return d
}

// isometrizeMatrix derotates points and strips the anisotropy, so that
// plain euclidean norms afterwards measure isotropic distance.
func isometrizeMatrix(dim int, angles, anis []float64) *mat.Dense {
	var m mat.Dense
	m.Mul(isotropifyMatrix(dim, anis), derotationMatrix(dim, angles))
	return &m
}

// anisometrizeMatrix maps isotropic coordinates back into the rotated,
// anisotropic system.
func anisometrizeMatrix(dim int, angles, anis []float64) *mat.Dense {
	var m mat.Dense
	m.Mul(rotationMatrix(dim, angles), anisotropifyMatrix(dim, anis))
	return &m
}

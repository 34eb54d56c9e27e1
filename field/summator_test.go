package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSummate_SingleMode(t *testing.T) {
	// One mode k=(2, -1) with amplitudes z1=0.5, z2=-1.5 against the
	// analytic cosine/sine sum.
	covSample := mat.NewDense(2, 1, []float64{2, -1})
	z1 := []float64{0.5}
	z2 := []float64{-1.5}
	pos := mat.NewDense(2, 3, []float64{
		0, 1, 0.3,
		0, 0.5, -0.2,
	})

	summed := summate(covSample, z1, z2, pos)
	require.Len(t, summed, 3)
	for j := 0; j < 3; j++ {
		phase := 2*pos.At(0, j) - pos.At(1, j)
		want := 0.5*math.Cos(phase) - 1.5*math.Sin(phase)
		assert.InDelta(t, want, summed[j], 1e-14)
	}
}

func TestProjectors(t *testing.T) {
	t.Run("hand computed", func(t *testing.T) {
		covSample := mat.NewDense(2, 1, []float64{3, 4})
		proj := projectors(2, covSample)
		assert.InDelta(t, 1-9.0/25.0, proj.At(0, 0), 1e-15)
		assert.InDelta(t, -12.0/25.0, proj.At(1, 0), 1e-15)
	})

	t.Run("orthogonal to the wavevector", func(t *testing.T) {
		covSample := mat.NewDense(3, 2, []float64{
			1.2, -0.7,
			0.4, 2.2,
			-2.0, 0.3,
		})
		proj := projectors(3, covSample)
		for i := 0; i < 2; i++ {
			var dot float64
			for c := 0; c < 3; c++ {
				dot += proj.At(c, i) * covSample.At(c, i)
			}
			assert.InDelta(t, 0, dot, 1e-14)
		}
	})

	t.Run("zero wavevector keeps the unit term", func(t *testing.T) {
		covSample := mat.NewDense(2, 1, nil)
		proj := projectors(2, covSample)
		assert.Equal(t, 1.0, proj.At(0, 0))
		assert.Equal(t, 0.0, proj.At(1, 0))
	})

	t.Run("components beyond the model dimension vanish", func(t *testing.T) {
		covSample := mat.NewDense(2, 1, []float64{1, 1})
		proj := projectors(3, covSample)
		assert.Equal(t, 0.0, proj.At(2, 0))
	})
}

func TestCrossCoeffs(t *testing.T) {
	t.Run("three dimensions", func(t *testing.T) {
		covSample := mat.NewDense(3, 1, []float64{0, 0, 2})
		z := mat.NewDense(1, 3, []float64{1, 0, 0})
		w := crossCoeffs(3, covSample, z)
		// (1,0,0) x (0,0,1) = (0,-1,0)
		assert.InDelta(t, 0, w.At(0, 0), 1e-15)
		assert.InDelta(t, -1, w.At(1, 0), 1e-15)
		assert.InDelta(t, 0, w.At(2, 0), 1e-15)
	})

	t.Run("two dimensions", func(t *testing.T) {
		covSample := mat.NewDense(2, 1, []float64{0, 3})
		z := mat.NewDense(1, 2, []float64{1, 2})
		w := crossCoeffs(2, covSample, z)
		// scalar cross 1*1 - 2*0 = 1 attached to the perpendicular (1, 0)
		assert.InDelta(t, 1, w.At(0, 0), 1e-15)
		assert.InDelta(t, 0, w.At(1, 0), 1e-15)
	})

	t.Run("orthogonal to the wavevector", func(t *testing.T) {
		covSample := mat.NewDense(3, 2, []float64{
			0.9, -1.1,
			-0.2, 0.8,
			1.7, 0.5,
		})
		z := mat.NewDense(2, 3, []float64{
			0.3, -0.6, 1.2,
			-1.4, 0.7, 0.2,
		})
		w := crossCoeffs(3, covSample, z)
		for i := 0; i < 2; i++ {
			var dot float64
			for c := 0; c < 3; c++ {
				dot += w.At(c, i) * covSample.At(c, i)
			}
			assert.InDelta(t, 0, dot, 1e-14)
		}
	})

	t.Run("zero wavevector gets zero weight", func(t *testing.T) {
		covSample := mat.NewDense(2, 1, nil)
		z := mat.NewDense(1, 2, []float64{1, 1})
		w := crossCoeffs(2, covSample, z)
		assert.Equal(t, 0.0, w.At(0, 0))
		assert.Equal(t, 0.0, w.At(1, 0))
	})
}

func TestSnapToLattice(t *testing.T) {
	fac := 2 * math.Pi / 4
	covSample := mat.NewDense(2, 3, []float64{
		1.3, -0.2, 2 * fac,
		0.9, 5.1, -1.1,
	})
	snapped := snapToLattice(covSample, []float64{4, 4})

	rows, cols := snapped.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 3, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			multiple := snapped.At(r, c) / fac
			assert.InDelta(t, math.Round(multiple), multiple, 1e-12,
				"entry (%d,%d) is not on the lattice", r, c)
			assert.LessOrEqual(t, math.Abs(snapped.At(r, c)-covSample.At(r, c)), fac/2+1e-12)
		}
	}
	// Exact multiples stay put.
	assert.InDelta(t, 2*fac, snapped.At(0, 2), 1e-15)

	// The original sample is untouched.
	assert.Equal(t, 1.3, covSample.At(0, 0))
	assert.Equal(t, 5.1, covSample.At(1, 1))
}

func TestSummateGenericVector_PerComponentCoefficients(t *testing.T) {
	// One mode, two components with distinct coefficients: each output
	// row must be its own cosine/sine combination.
	covSample := mat.NewDense(2, 1, []float64{1, 0})
	z1v := mat.NewDense(1, 2, []float64{1, 0})
	z2v := mat.NewDense(1, 2, []float64{0, 1})
	pos := mat.NewDense(2, 2, []float64{
		0, math.Pi / 2,
		0, 0,
	})

	out := summateGenericVector(2, covSample, z1v, z2v, pos)
	assert.InDelta(t, 1, out.At(0, 0), 1e-14) // cos(0)
	assert.InDelta(t, 0, out.At(1, 0), 1e-14) // sin(0)
	assert.InDelta(t, 0, out.At(0, 1), 1e-14) // cos(pi/2)
	assert.InDelta(t, 1, out.At(1, 1), 1e-14) // sin(pi/2)
}

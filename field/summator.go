package field

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/joshua-benabou/gstools-go/core/parallel"
)

// summateSeqThreshold is the number of query points below which the
// summation kernels run sequentially. Spawning workers for a handful of
// points costs more than the trigonometric sums themselves.
const summateSeqThreshold = 64

// summate evaluates the scalar randomization sum at every query point:
//
//	summed[j] = sum_i z1[i]*cos(<k_i, x_j>) + z2[i]*sin(<k_i, x_j>)
//
// covSample holds the wavevectors k_i column-wise (dim x modeNo) and pos
// the query points x_j column-wise (dim x n).
func summate(covSample *mat.Dense, z1, z2 []float64, pos mat.Matrix) []float64 {
	dim, n := pos.Dims()
	modeNo := len(z1)
	summed := make([]float64, n)

	parallel.ParallelizeWithThreshold(n, summateSeqThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			var sum float64
			for i := 0; i < modeNo; i++ {
				var phase float64
				for d := 0; d < dim; d++ {
					phase += covSample.At(d, i) * pos.At(d, j)
				}
				sin, cos := math.Sincos(phase)
				sum += z1[i]*cos + z2[i]*sin
			}
			summed[j] = sum
		}
	})

	return summed
}

// summateIncompr evaluates the vector randomization sum with the
// incompressibility projector applied per mode:
//
//	summed[c][j] = sum_i p_c(k_i) * (z1[i]*cos(<k_i, x_j>) + z2[i]*sin(<k_i, x_j>))
//
// The result has vecDim rows and one column per query point.
func summateIncompr(vecDim int, covSample *mat.Dense, z1, z2 []float64, pos mat.Matrix) *mat.Dense {
	dim, n := pos.Dims()
	modeNo := len(z1)
	proj := projectors(vecDim, covSample)
	summed := mat.NewDense(vecDim, n, nil)

	parallel.ParallelizeWithThreshold(n, summateSeqThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			for i := 0; i < modeNo; i++ {
				var phase float64
				for d := 0; d < dim; d++ {
					phase += covSample.At(d, i) * pos.At(d, j)
				}
				sin, cos := math.Sincos(phase)
				trig := z1[i]*cos + z2[i]*sin
				for c := 0; c < vecDim; c++ {
					summed.Set(c, j, summed.At(c, j)+proj.At(c, i)*trig)
				}
			}
		}
	})

	return summed
}

// summateIncomprZeroVel evaluates the Kraichnan cross-product sum: the
// per-mode normal vectors z1v, z2v (modeNo x vecDim) are crossed with the
// unit wavevector before the trigonometric summation, which keeps every
// mode contribution orthogonal to its wavevector.
func summateIncomprZeroVel(vecDim int, covSample, z1v, z2v *mat.Dense, pos mat.Matrix) *mat.Dense {
	w1 := crossCoeffs(vecDim, covSample, z1v)
	w2 := crossCoeffs(vecDim, covSample, z2v)
	return summateVectorCoeffs(covSample, w1, w2, pos)
}

// summateGenericVector evaluates the plain vector randomization sum: each
// component carries its own coefficient column from z1v, z2v
// (modeNo x vecDim) and no projector is applied, so the components are
// independent scalar fields sharing the sampled wavevectors.
func summateGenericVector(vecDim int, covSample, z1v, z2v *mat.Dense, pos mat.Matrix) *mat.Dense {
	_, modeNo := covSample.Dims()
	w1 := mat.NewDense(vecDim, modeNo, nil)
	w2 := mat.NewDense(vecDim, modeNo, nil)
	for i := 0; i < modeNo; i++ {
		for c := 0; c < vecDim; c++ {
			w1.Set(c, i, z1v.At(i, c))
			w2.Set(c, i, z2v.At(i, c))
		}
	}
	return summateVectorCoeffs(covSample, w1, w2, pos)
}

// summateVectorCoeffs is the shared vector kernel: w1, w2 hold one
// coefficient per component and mode (vecDim x modeNo).
func summateVectorCoeffs(covSample, w1, w2 *mat.Dense, pos mat.Matrix) *mat.Dense {
	dim, n := pos.Dims()
	vecDim, modeNo := w1.Dims()
	summed := mat.NewDense(vecDim, n, nil)

	parallel.ParallelizeWithThreshold(n, summateSeqThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			for i := 0; i < modeNo; i++ {
				var phase float64
				for d := 0; d < dim; d++ {
					phase += covSample.At(d, i) * pos.At(d, j)
				}
				sin, cos := math.Sincos(phase)
				for c := 0; c < vecDim; c++ {
					summed.Set(c, j, summed.At(c, j)+w1.At(c, i)*cos+w2.At(c, i)*sin)
				}
			}
		}
	})

	return summed
}

// projectors evaluates p_c(k) = delta_{c1} - k_c*k_1/|k|^2 for every
// sampled wavevector. The squared norm runs over the components that enter
// the output field, so sum_c p_c(k)*k_c = 0 holds and the synthesized
// field stays divergence free even when the vector dimension differs from
// the model dimension. Vanishing wavevectors keep the bare e_1 term.
func projectors(vecDim int, covSample *mat.Dense) *mat.Dense {
	dim, modeNo := covSample.Dims()
	comps := vecDim
	if dim < comps {
		comps = dim
	}
	proj := mat.NewDense(vecDim, modeNo, nil)
	for i := 0; i < modeNo; i++ {
		proj.Set(0, i, 1)
		var k2 float64
		for d := 0; d < comps; d++ {
			k2 += covSample.At(d, i) * covSample.At(d, i)
		}
		if k2 == 0 {
			continue
		}
		k1 := covSample.At(0, i)
		for c := 0; c < comps; c++ {
			proj.Set(c, i, proj.At(c, i)-covSample.At(c, i)*k1/k2)
		}
	}
	return proj
}

// crossCoeffs turns the per-mode normal vectors into Kraichnan weights
// w_i = z_i x khat_i with khat the unit wavevector. In two dimensions the
// cross product degenerates to the scalar z_1*khat_2 - z_2*khat_1 attached
// to the in-plane perpendicular of khat. Modes with a vanishing wavevector
// get zero weight.
func crossCoeffs(vecDim int, covSample, z *mat.Dense) *mat.Dense {
	dim, modeNo := covSample.Dims()
	comps := vecDim
	if dim < comps {
		comps = dim
	}
	w := mat.NewDense(vecDim, modeNo, nil)
	for i := 0; i < modeNo; i++ {
		var norm float64
		for d := 0; d < comps; d++ {
			norm += covSample.At(d, i) * covSample.At(d, i)
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		var khat [3]float64
		for d := 0; d < comps; d++ {
			khat[d] = covSample.At(d, i) / norm
		}
		if vecDim == 2 {
			s := z.At(i, 0)*khat[1] - z.At(i, 1)*khat[0]
			w.Set(0, i, s*khat[1])
			w.Set(1, i, -s*khat[0])
			continue
		}
		w.Set(0, i, z.At(i, 1)*khat[2]-z.At(i, 2)*khat[1])
		w.Set(1, i, z.At(i, 2)*khat[0]-z.At(i, 0)*khat[2])
		w.Set(2, i, z.At(i, 0)*khat[1]-z.At(i, 1)*khat[0])
	}
	return w
}

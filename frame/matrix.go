package frame

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// quatFromMatrix converts a proper rotation matrix to a unit quaternion
// using Shepperd's method, which picks the numerically best of four
// equivalent formulas based on the matrix trace.
func quatFromMatrix(m *mat.Dense) quat.Number {
	m00, m01, m02 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m10, m11, m12 := m.At(1, 0), m.At(1, 1), m.At(1, 2)
	m20, m21, m22 := m.At(2, 0), m.At(2, 1), m.At(2, 2)

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		return quat.Number{
			Real: 0.25 / s,
			Imag: (m21 - m12) * s,
			Jmag: (m02 - m20) * s,
			Kmag: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2.0 * math.Sqrt(1.0+m00-m11-m22)
		return quat.Number{
			Real: (m21 - m12) / s,
			Imag: 0.25 * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2.0 * math.Sqrt(1.0+m11-m00-m22)
		return quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: 0.25 * s,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := 2.0 * math.Sqrt(1.0+m22-m00-m11)
		return quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: 0.25 * s,
		}
	}
}

// matrixFromArray wraps a [3][3]float64 (row-major) as a gonum *mat.Dense,
// the representation this package's providers compose rotation matrices
// in before converting to the quaternion a Transform stores.
func matrixFromArray(a [3][3]float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	})
}

// quatFromArray converts a [3][3]float64 rotation matrix directly to a
// quaternion.
func quatFromArray(a [3][3]float64) quat.Number {
	return quatFromMatrix(matrixFromArray(a))
}

// matMul3 multiplies two row-major 3x3 rotation matrices using gonum's
// dense matrix product, returning the result back as a [3][3]float64.
func matMul3(a, b [3][3]float64) [3][3]float64 {
	var out mat.Dense
	out.Mul(matrixFromArray(a), matrixFromArray(b))
	return [3][3]float64{
		{out.At(0, 0), out.At(0, 1), out.At(0, 2)},
		{out.At(1, 0), out.At(1, 1), out.At(1, 2)},
		{out.At(2, 0), out.At(2, 1), out.At(2, 2)},
	}
}

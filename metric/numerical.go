package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/manifold/spatialmath"
)

// DefaultStep is the finite difference step used when checking Jacobians.
const DefaultStep = 1e-6

// JacobianDeviation is the largest absolute entrywise difference between the analytic and
// numerical Jacobians of one distance evaluation.
type JacobianDeviation struct {
	Convention spatialmath.Convention
	Lhs        float64
	Rhs        float64
}

// Max returns the larger of the two deviations.
func (d JacobianDeviation) Max() float64 {
	return math.Max(d.Lhs, d.Rhs)
}

// NumericalSE3Jacobians approximates the Jacobians of SE3Distance by central differences,
// perturbing each input along the tangent directions of conv.
func NumericalSE3Jacobians(lhs, rhs spatialmath.Pose, conv spatialmath.Convention, step float64) (jLhs, jRhs *mat.Dense) {
	distance := func(l, r spatialmath.Pose) spatialmath.Tangent {
		return SE3Distance(l, r, nil, nil, conv)
	}

	jLhs = spatialmath.NewJacobian()
	jRhs = spatialmath.NewJacobian()
	for i := 0; i < spatialmath.TangentSize; i++ {
		var delta spatialmath.Tangent
		delta[i] = step
		negDelta := delta.Scale(-1)

		lhsPlus := distance(spatialmath.PosePlus(lhs, delta, conv), rhs)
		lhsMinus := distance(spatialmath.PosePlus(lhs, negDelta, conv), rhs)
		rhsPlus := distance(lhs, spatialmath.PosePlus(rhs, delta, conv))
		rhsMinus := distance(lhs, spatialmath.PosePlus(rhs, negDelta, conv))
		for r := 0; r < spatialmath.TangentSize; r++ {
			jLhs.Set(r, i, (lhsPlus[r]-lhsMinus[r])/(2*step))
			jRhs.Set(r, i, (rhsPlus[r]-rhsMinus[r])/(2*step))
		}
	}
	return jLhs, jRhs
}

// CheckSE3Jacobians compares the analytic Jacobians of SE3Distance at (lhs, rhs) with
// NumericalSE3Jacobians.
func CheckSE3Jacobians(lhs, rhs spatialmath.Pose, conv spatialmath.Convention, step float64) JacobianDeviation {
	jLhs := spatialmath.NewJacobian()
	jRhs := spatialmath.NewJacobian()
	SE3Distance(lhs, rhs, jLhs, jRhs, conv)
	numLhs, numRhs := NumericalSE3Jacobians(lhs, rhs, conv, step)

	return JacobianDeviation{
		Convention: conv,
		Lhs:        floats.Distance(jLhs.RawMatrix().Data, numLhs.RawMatrix().Data, math.Inf(1)),
		Rhs:        floats.Distance(jRhs.RawMatrix().Data, numRhs.RawMatrix().Data, math.Inf(1)),
	}
}

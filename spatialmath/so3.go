package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Below these angles the closed-form coefficients lose precision to cancellation and their
// Taylor expansions are used instead.
const (
	smallAngle     = 1e-6
	seriesAngleSO3 = 1e-3
	seriesAngleSE3 = 1e-2
)

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// skew returns the cross product matrix of v, so that skew(v)*u = v×u.
func skew(v r3.Vector) mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{0, -v.Z, v.Y},
		mgl64.Vec3{v.Z, 0, -v.X},
		mgl64.Vec3{-v.Y, v.X, 0},
	)
}

func mulVec(m mgl64.Mat3, v r3.Vector) r3.Vector {
	return fromVec3(m.Mul3x1(toVec3(v)))
}

func mglQuat(q quat.Number) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

// rotationMatrix returns the 3x3 rotation matrix of a unit quaternion.
func rotationMatrix(q quat.Number) mgl64.Mat3 {
	return mglQuat(q).Mat4().Mat3()
}

// rotate applies the rotation q to v.
func rotate(q quat.Number, v r3.Vector) r3.Vector {
	return fromVec3(mglQuat(q).Rotate(toVec3(v)))
}

// expSO3 maps a rotation vector to a unit quaternion.
func expSO3(w r3.Vector) quat.Number {
	theta := w.Norm()
	var s float64
	if theta < smallAngle {
		s = 0.5 - theta*theta/48
	} else {
		s = math.Sin(theta/2) / theta
	}
	return quat.Number{Real: math.Cos(theta / 2), Imag: s * w.X, Jmag: s * w.Y, Kmag: s * w.Z}
}

// logSO3 maps a unit quaternion to its rotation vector, with angle in [0, π].
func logSO3(q quat.Number) r3.Vector {
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	v := r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	n := v.Norm()
	if n < smallAngle {
		return v.Mul(2 / q.Real)
	}
	return v.Mul(2 * math.Atan2(n, q.Real) / n)
}

// leftJacobianSO3 returns J_l(w) = I + (1-cos θ)/θ² [w]× + (θ-sin θ)/θ³ [w]×².
func leftJacobianSO3(w r3.Vector) mgl64.Mat3 {
	theta2 := w.Norm2()
	theta := math.Sqrt(theta2)
	var a, b float64
	if theta < seriesAngleSO3 {
		a = 0.5 - theta2/24
		b = 1.0/6 - theta2/120
	} else {
		a = (1 - math.Cos(theta)) / theta2
		b = (theta - math.Sin(theta)) / (theta2 * theta)
	}
	wx := skew(w)
	return mgl64.Ident3().Add(wx.Mul(a)).Add(wx.Mul3(wx).Mul(b))
}

// leftJacobianInverseSO3 returns J_l(w)⁻¹ = I - ½[w]× + (1/θ² - (1+cos θ)/(2θ sin θ)) [w]×².
// The right Jacobian inverse is leftJacobianInverseSO3(-w).
func leftJacobianInverseSO3(w r3.Vector) mgl64.Mat3 {
	theta2 := w.Norm2()
	theta := math.Sqrt(theta2)
	var c float64
	if theta < seriesAngleSO3 {
		c = 1.0/12 + theta2/720
	} else {
		c = 1/theta2 - (1+math.Cos(theta))/(2*theta*math.Sin(theta))
	}
	wx := skew(w)
	return mgl64.Ident3().Sub(wx.Mul(0.5)).Add(wx.Mul3(wx).Mul(c))
}

package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// DualQuaternion returns the unit dual quaternion r + ε½tr of the pose. Multiplying the dual
// quaternions of two poses gives the dual quaternion of their composition.
func (p Pose) DualQuaternion() dualquat.Number {
	t := quat.Number{Imag: p.point.X, Jmag: p.point.Y, Kmag: p.point.Z}
	return dualquat.Number{
		Real: p.orientation,
		Dual: quat.Scale(0.5, quat.Mul(t, p.orientation)),
	}
}

// NewPoseFromDualQuaternion converts a unit dual quaternion back to a pose.
func NewPoseFromDualQuaternion(dq dualquat.Number) Pose {
	// Translation is 2 * dual * conj(real).
	t := quat.Scale(2, quat.Mul(dq.Dual, quat.Conj(dq.Real)))
	return NewPose(r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}, dq.Real)
}

// Matrix returns the 4x4 homogeneous transform of the pose.
func (p Pose) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(p.point.X, p.point.Y, p.point.Z).Mul4(mglQuat(p.orientation).Mat4())
}

// Package spatialmath defines rigid body poses as elements of the SE3 Lie group together with
// the group primitives (inverse, composition, exponential and logarithmic maps) and their
// analytic Jacobians.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

const (
	// PoseParameters is the number of scalars in the raw layout of a pose:
	// translation (x, y, z) followed by a unit quaternion (real, i, j, k).
	PoseParameters = 7
	// TangentSize is the dimension of the SE3 tangent space.
	TangentSize = 6
	// JacobianSize is the number of scalars in a row-major TangentSize x TangentSize Jacobian.
	JacobianSize = TangentSize * TangentSize

	translationOffset = 0
	rotationOffset    = 3
)

// Pose is an element of SE3: a rotation followed by a translation. Poses are values; every
// operation returns a new pose and never mutates its inputs.
type Pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewZeroPose returns the identity pose.
func NewZeroPose() Pose {
	return Pose{orientation: quat.Number{Real: 1}}
}

// NewPose returns a pose at the given point with the given orientation. The quaternion is
// normalized; a zero quaternion yields the identity rotation.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	norm := quat.Abs(orientation)
	if norm == 0 {
		return Pose{point: point, orientation: quat.Number{Real: 1}}
	}
	return Pose{point: point, orientation: quat.Scale(1/norm, orientation)}
}

// NewPoseFromPoint returns a pose at the given point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{point: point, orientation: quat.Number{Real: 1}}
}

// NewPoseFromAxisAngle returns a pose at the given point rotated about an axis.
func NewPoseFromAxisAngle(point r3.Vector, aa *R4AA) Pose {
	return Pose{point: point, orientation: aa.ToQuat()}
}

// NewPoseFromParameters reads a pose out of the first PoseParameters entries of params.
// The quaternion is taken as-is; it must already be of unit norm.
func NewPoseFromParameters(params []float64) Pose {
	_ = params[PoseParameters-1]
	return Pose{
		point: r3.Vector{
			X: params[translationOffset],
			Y: params[translationOffset+1],
			Z: params[translationOffset+2],
		},
		orientation: quat.Number{
			Real: params[rotationOffset],
			Imag: params[rotationOffset+1],
			Jmag: params[rotationOffset+2],
			Kmag: params[rotationOffset+3],
		},
	}
}

// Point returns the translation of the pose.
func (p Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the rotation of the pose as a unit quaternion.
func (p Pose) Orientation() quat.Number {
	return p.orientation
}

// Parameters returns the raw parameter layout of the pose.
func (p Pose) Parameters() [PoseParameters]float64 {
	var params [PoseParameters]float64
	p.WriteParameters(params[:])
	return params
}

// WriteParameters writes the raw parameter layout of the pose into dst.
func (p Pose) WriteParameters(dst []float64) {
	_ = dst[PoseParameters-1]
	dst[translationOffset] = p.point.X
	dst[translationOffset+1] = p.point.Y
	dst[translationOffset+2] = p.point.Z
	dst[rotationOffset] = p.orientation.Real
	dst[rotationOffset+1] = p.orientation.Imag
	dst[rotationOffset+2] = p.orientation.Jmag
	dst[rotationOffset+3] = p.orientation.Kmag
}

func (p Pose) String() string {
	return fmt.Sprintf("{X:%.6f Y:%.6f Z:%.6f Q:[%.6f %.6f %.6f %.6f]}",
		p.point.X, p.point.Y, p.point.Z,
		p.orientation.Real, p.orientation.Imag, p.orientation.Jmag, p.orientation.Kmag)
}

// PoseAlmostEqual returns whether two poses are within tol of each other in both translation
// and rotation. q and -q describe the same rotation and are treated as equal.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	if a.point.Sub(b.point).Norm() > tol {
		return false
	}
	return QuaternionAlmostEqual(a.orientation, b.orientation, tol)
}

// QuaternionAlmostEqual is an equality test for rotations, allowing for the double cover of
// SO3 by unit quaternions.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	diff := quat.Abs(quat.Sub(a, b))
	sum := quat.Abs(quat.Add(a, b))
	return math.Min(diff, sum) <= tol
}

// Tangent is an element of the SE3 tangent space: three rotational components followed by
// three translational components.
type Tangent [TangentSize]float64

// NewTangent assembles a tangent vector from its rotational and translational halves.
func NewTangent(angular, linear r3.Vector) Tangent {
	return Tangent{angular.X, angular.Y, angular.Z, linear.X, linear.Y, linear.Z}
}

// Angular returns the rotational half of the tangent vector.
func (t Tangent) Angular() r3.Vector {
	return r3.Vector{X: t[0], Y: t[1], Z: t[2]}
}

// Linear returns the translational half of the tangent vector.
func (t Tangent) Linear() r3.Vector {
	return r3.Vector{X: t[3], Y: t[4], Z: t[5]}
}

// Scale returns the tangent vector multiplied by s.
func (t Tangent) Scale(s float64) Tangent {
	for i := range t {
		t[i] *= s
	}
	return t
}

// Norm returns the euclidean norm of the tangent vector.
func (t Tangent) Norm() float64 {
	var sum float64
	for _, v := range t {
		sum += v * v
	}
	return math.Sqrt(sum)
}

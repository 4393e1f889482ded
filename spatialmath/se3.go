package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// The primitives below take optional Jacobian destinations. A nil destination skips the
// derivative entirely; only the principal value is computed. Non-nil destinations must be
// TangentSize x TangentSize (or empty) and must not alias each other. The same Jacobians are
// available as values through InverseJacobian, ComposeJacobianLhs, ComposeJacobianRhs and
// LogJacobian.

// PoseInverse returns p⁻¹ and, if jac is not nil, writes d(p⁻¹)/dp into it.
func PoseInverse(p Pose, jac *mat.Dense, conv Convention) Pose {
	if jac != nil {
		InverseJacobian(p, conv).Write(jac)
	}
	return poseInverse(p)
}

func poseInverse(p Pose) Pose {
	conj := quat.Conj(p.orientation)
	return Pose{point: rotate(conj, p.point).Mul(-1), orientation: conj}
}

// InverseJacobian returns d(p⁻¹)/dp.
func InverseJacobian(p Pose, conv Convention) BlockJacobian {
	switch {
	case conv.Coupled && conv.Global:
		// -Ad(p⁻¹)
		return adjointJacobian(poseInverse(p)).Scale(-1)
	case conv.Coupled:
		// -Ad(p)
		return adjointJacobian(p).Scale(-1)
	case conv.Global:
		rotT := rotationMatrix(quat.Conj(p.orientation))
		return BlockJacobian{TL: rotT.Mul(-1), BL: rotT.Mul3(skew(p.point)).Mul(-1), BR: rotT.Mul(-1)}
	default:
		rot := rotationMatrix(p.orientation)
		// p⁻¹ has translation -Rᵀt, so -[Rᵀt]× = [-Rᵀt]×.
		return BlockJacobian{TL: rot.Mul(-1), BL: skew(poseInverse(p).point), BR: rot.Transpose().Mul(-1)}
	}
}

// Compose returns a∘b (b expressed in the frame of a, then a applied). If jacA or jacB are not
// nil, the derivatives of the result with respect to a and b are written into them.
func Compose(a, b Pose, jacA, jacB *mat.Dense, conv Convention) Pose {
	if jacA != nil {
		ComposeJacobianLhs(a, b, conv).Write(jacA)
	}
	if jacB != nil {
		ComposeJacobianRhs(a, conv).Write(jacB)
	}
	return Pose{
		point:       a.point.Add(rotate(a.orientation, b.point)),
		orientation: quat.Mul(a.orientation, b.orientation),
	}
}

// ComposeJacobianLhs returns d(a∘b)/da.
func ComposeJacobianLhs(a, b Pose, conv Convention) BlockJacobian {
	switch {
	case conv.Coupled && conv.Global:
		return IdentityJacobian()
	case conv.Coupled:
		// Ad(b⁻¹)
		return adjointJacobian(poseInverse(b))
	case conv.Global:
		return BlockJacobian{TL: mgl64.Ident3(), BL: skew(rotate(a.orientation, b.point)).Mul(-1), BR: mgl64.Ident3()}
	default:
		rotA := rotationMatrix(a.orientation)
		rotBT := rotationMatrix(quat.Conj(b.orientation))
		return BlockJacobian{TL: rotBT, BL: rotA.Mul3(skew(b.point)).Mul(-1), BR: mgl64.Ident3()}
	}
}

// ComposeJacobianRhs returns d(a∘b)/db, which depends on a only.
func ComposeJacobianRhs(a Pose, conv Convention) BlockJacobian {
	switch {
	case conv.Coupled && conv.Global:
		// Ad(a)
		return adjointJacobian(a)
	case conv.Coupled:
		return IdentityJacobian()
	case conv.Global:
		rotA := rotationMatrix(a.orientation)
		return BlockJacobian{TL: rotA, BR: rotA}
	default:
		return BlockJacobian{TL: mgl64.Ident3(), BR: rotationMatrix(a.orientation)}
	}
}

// PoseLog returns the tangent vector of p. Coupled, this is the SE3 logarithm whose linear part
// is J_l(w)⁻¹t; decoupled, the linear part is the translation itself. If jac is not nil, the
// derivative of the tangent vector with respect to p is written into it.
func PoseLog(p Pose, jac *mat.Dense, conv Convention) Tangent {
	w := logSO3(p.orientation)
	v := p.point
	if conv.Coupled {
		v = mulVec(leftJacobianInverseSO3(w), p.point)
	}
	t := NewTangent(w, v)
	if jac != nil {
		LogJacobian(t, conv).Write(jac)
	}
	return t
}

// LogJacobian returns the derivative of PoseLog at the pose whose tangent vector is t.
func LogJacobian(t Tangent, conv Convention) BlockJacobian {
	w, v := t.Angular(), t.Linear()
	switch {
	case conv.Coupled && conv.Global:
		return se3LeftJacobianInverse(w, v)
	case conv.Coupled:
		return se3LeftJacobianInverse(w.Mul(-1), v.Mul(-1))
	case conv.Global:
		return BlockJacobian{TL: leftJacobianInverseSO3(w), BR: mgl64.Ident3()}
	default:
		return BlockJacobian{TL: leftJacobianInverseSO3(w.Mul(-1)), BR: mgl64.Ident3()}
	}
}

// PoseExp is the inverse of PoseLog under the same convention.
func PoseExp(t Tangent, conv Convention) Pose {
	w := t.Angular()
	v := t.Linear()
	if conv.Coupled {
		v = mulVec(leftJacobianSO3(w), v)
	}
	return Pose{point: v, orientation: expSO3(w)}
}

// PosePlus perturbs p by delta the way the Jacobians of the convention are defined.
func PosePlus(p Pose, delta Tangent, conv Convention) Pose {
	if conv.Coupled {
		if conv.Global {
			return Compose(PoseExp(delta, conv), p, nil, nil, conv)
		}
		return Compose(p, PoseExp(delta, conv), nil, nil, conv)
	}

	dq := expSO3(delta.Angular())
	orientation := quat.Mul(p.orientation, dq)
	if conv.Global {
		orientation = quat.Mul(dq, p.orientation)
	}
	return Pose{point: p.point.Add(delta.Linear()), orientation: orientation}
}

// PoseMinus returns the tangent delta with PosePlus(b, delta, conv) = a.
func PoseMinus(a, b Pose, conv Convention) Tangent {
	if conv.Coupled {
		if conv.Global {
			return PoseLog(Compose(a, poseInverse(b), nil, nil, conv), nil, conv)
		}
		return PoseLog(Compose(poseInverse(b), a, nil, nil, conv), nil, conv)
	}

	dq := quat.Mul(quat.Conj(b.orientation), a.orientation)
	if conv.Global {
		dq = quat.Mul(a.orientation, quat.Conj(b.orientation))
	}
	return NewTangent(logSO3(dq), a.point.Sub(b.point))
}

// PoseBetween returns the pose taking from to to, to = from∘PoseBetween(from, to).
func PoseBetween(from, to Pose) Pose {
	return Compose(poseInverse(from), to, nil, nil, Convention{})
}

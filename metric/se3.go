package metric

import (
	"gonum.org/v1/gonum/mat"

	"go.viam.com/manifold/config"
	"go.viam.com/manifold/spatialmath"
)

// SE3Metric is the manifold distance between poses, log(lhs∘rhs⁻¹): the tangent displacement
// taking rhs to lhs. Its convention is fixed at construction, so one instance may be shared by
// any number of goroutines.
type SE3Metric struct {
	conv spatialmath.Convention
}

var _ Metric = (*SE3Metric)(nil)

// NewSE3Metric returns a metric differentiating under conv.
func NewSE3Metric(conv spatialmath.Convention) *SE3Metric {
	return &SE3Metric{conv: conv}
}

// NewDefaultSE3Metric returns a metric using the process wide default convention.
func NewDefaultSE3Metric() *SE3Metric {
	return NewSE3Metric(config.Defaults())
}

// Convention returns the convention the metric was built with.
func (m *SE3Metric) Convention() spatialmath.Convention {
	return m.conv
}

// InputSize is the number of raw parameters of a pose.
func (m *SE3Metric) InputSize() int {
	return spatialmath.PoseParameters
}

// OutputSize is the dimension of the SE3 tangent space.
func (m *SE3Metric) OutputSize() int {
	return spatialmath.TangentSize
}

// Distance evaluates the metric over raw buffers with the metric's convention.
func (m *SE3Metric) Distance(lhs, rhs, output, jLhs, jRhs []float64) {
	SE3DistanceRaw(lhs, rhs, output, jLhs, jRhs, m.conv)
}

// PoseDistance evaluates the metric on poses with the metric's convention.
func (m *SE3Metric) PoseDistance(lhs, rhs spatialmath.Pose, jLhs, jRhs *mat.Dense) spatialmath.Tangent {
	return SE3Distance(lhs, rhs, jLhs, jRhs, m.conv)
}

// SE3DistanceRaw is SE3Distance over raw buffers laid out as described by Metric. The poses are
// read without normalization.
func SE3DistanceRaw(lhs, rhs, output, jLhs, jRhs []float64, conv spatialmath.Convention) {
	request := NewRequest(jLhs != nil, jRhs != nil)
	tangent, dLhs, dRhs := se3Distance(
		spatialmath.NewPoseFromParameters(lhs),
		spatialmath.NewPoseFromParameters(rhs),
		request,
		conv,
	)
	copy(output[:spatialmath.TangentSize], tangent[:])
	if request.WantsLhs() {
		dLhs.WriteRaw(jLhs)
	}
	if request.WantsRhs() {
		dRhs.WriteRaw(jRhs)
	}
}

// SE3Distance returns log(lhs∘rhs⁻¹) under conv. When jLhs or jRhs are not nil, the Jacobians of
// the distance with respect to lhs and rhs are written into them; only the derivatives needed
// for the requested Jacobians are evaluated.
func SE3Distance(lhs, rhs spatialmath.Pose, jLhs, jRhs *mat.Dense, conv spatialmath.Convention) spatialmath.Tangent {
	request := requestOf(jLhs, jRhs)
	tangent, dLhs, dRhs := se3Distance(lhs, rhs, request, conv)
	if request.WantsLhs() {
		dLhs.Write(jLhs)
	}
	if request.WantsRhs() {
		dRhs.Write(jRhs)
	}
	return tangent
}

// se3Distance evaluates one of the four paths. Jacobians that were not requested are left
// zero. All intermediates are values, so a call never allocates.
func se3Distance(
	lhs, rhs spatialmath.Pose,
	request Request,
	conv spatialmath.Convention,
) (tangent spatialmath.Tangent, dLhs, dRhs spatialmath.BlockJacobian) {
	invRhs := spatialmath.PoseInverse(rhs, nil, conv)
	between := spatialmath.Compose(lhs, invRhs, nil, nil, conv)
	tangent = spatialmath.PoseLog(between, nil, conv)

	switch request {
	case RequestBoth:
		jLog := spatialmath.LogJacobian(tangent, conv)
		dLhs = jLog.Mul(spatialmath.ComposeJacobianLhs(lhs, invRhs, conv))
		dRhs = chainRhs(jLog, spatialmath.ComposeJacobianRhs(lhs, conv), spatialmath.InverseJacobian(rhs, conv))
	case RequestLhs:
		jLog := spatialmath.LogJacobian(tangent, conv)
		dLhs = jLog.Mul(spatialmath.ComposeJacobianLhs(lhs, invRhs, conv))
	case RequestRhs:
		jLog := spatialmath.LogJacobian(tangent, conv)
		dRhs = chainRhs(jLog, spatialmath.ComposeJacobianRhs(lhs, conv), spatialmath.InverseJacobian(rhs, conv))
	case RequestNone:
	}
	return tangent, dLhs, dRhs
}

// chainRhs returns jLog·(jComposeInv·jInv). Both paths producing the rhs Jacobian go through
// here so their results are identical.
func chainRhs(jLog, jComposeInv, jInv spatialmath.BlockJacobian) spatialmath.BlockJacobian {
	return jLog.Mul(jComposeInv.Mul(jInv))
}

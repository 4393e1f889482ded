// Package metric evaluates distances between manifold elements, and their Jacobians, for use as
// residuals in nonlinear least squares.
package metric

// Metric is the capability an optimizer needs to use a manifold distance as a residual. All
// buffers are caller owned and contiguous: lhs and rhs hold InputSize scalars, output holds
// OutputSize scalars, and jLhs and jRhs, when not nil, hold row-major OutputSize x OutputSize
// Jacobians with respect to the tangent perturbation of each input. A nil Jacobian buffer is
// not computed. Buffer sizes are not checked.
type Metric interface {
	InputSize() int
	OutputSize() int
	Distance(lhs, rhs, output, jLhs, jRhs []float64)
}

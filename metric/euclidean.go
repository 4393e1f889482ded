package metric

import "gonum.org/v1/gonum/floats"

// EuclideanMetric is the distance lhs-rhs between points of Rⁿ, such as the translation-only
// manifold. Its Jacobians are I and -I.
type EuclideanMetric struct {
	dim int
}

var _ Metric = (*EuclideanMetric)(nil)

// NewEuclideanMetric returns the metric of Rⁿ for n = dim.
func NewEuclideanMetric(dim int) *EuclideanMetric {
	return &EuclideanMetric{dim: dim}
}

// InputSize returns the dimension of the space.
func (m *EuclideanMetric) InputSize() int {
	return m.dim
}

// OutputSize returns the dimension of the space.
func (m *EuclideanMetric) OutputSize() int {
	return m.dim
}

// Distance writes lhs-rhs to output and, when requested, the identity and negated identity to
// jLhs and jRhs.
func (m *EuclideanMetric) Distance(lhs, rhs, output, jLhs, jRhs []float64) {
	n := m.dim
	floats.SubTo(output[:n], lhs[:n], rhs[:n])

	request := NewRequest(jLhs != nil, jRhs != nil)
	if request.WantsLhs() {
		writeScaledIdentity(jLhs[:n*n], n, 1)
	}
	if request.WantsRhs() {
		writeScaledIdentity(jRhs[:n*n], n, -1)
	}
}

func writeScaledIdentity(dst []float64, n int, s float64) {
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < n; i++ {
		dst[i*n+i] = s
	}
}

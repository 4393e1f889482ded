package metric

import (
	"testing"

	"go.viam.com/test"
)

func TestEuclideanMetric(t *testing.T) {
	var m Metric = NewEuclideanMetric(3)
	test.That(t, m.InputSize(), test.ShouldEqual, 3)
	test.That(t, m.OutputSize(), test.ShouldEqual, 3)

	output := make([]float64, 3)
	jLhs := make([]float64, 9)
	jRhs := make([]float64, 9)
	m.Distance([]float64{1, 2, 3}, []float64{3, 2, 1}, output, jLhs, jRhs)

	test.That(t, output, test.ShouldResemble, []float64{-2, 0, 2})
	test.That(t, jLhs, test.ShouldResemble, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	test.That(t, jRhs, test.ShouldResemble, []float64{-1, 0, 0, 0, -1, 0, 0, 0, -1})
}

func TestEuclideanMetricPartialRequest(t *testing.T) {
	m := NewEuclideanMetric(2)
	output := make([]float64, 2)
	jRhs := []float64{7, 7, 7, 7}
	m.Distance([]float64{1, 1}, []float64{0, 0}, output, nil, jRhs)
	test.That(t, output, test.ShouldResemble, []float64{1, 1})
	test.That(t, jRhs, test.ShouldResemble, []float64{-1, 0, 0, -1})
}

package metric

import (
	"context"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"go.viam.com/manifold/logging"
	"go.viam.com/manifold/spatialmath"
)

func newResidual(lhs, rhs spatialmath.Pose, withJacobians bool) Residual {
	l, r := lhs.Parameters(), rhs.Parameters()
	res := Residual{Lhs: l[:], Rhs: r[:], Output: make([]float64, spatialmath.TangentSize)}
	if withJacobians {
		res.JLhs = make([]float64, spatialmath.JacobianSize)
		res.JRhs = make([]float64, spatialmath.JacobianSize)
	}
	return res
}

func TestValidateResidual(t *testing.T) {
	m := NewSE3Metric(spatialmath.Convention{})
	good := newResidual(spatialmath.NewZeroPose(), spatialmath.NewZeroPose(), true)
	test.That(t, ValidateResidual(m, good), test.ShouldBeNil)

	good.JLhs = nil
	test.That(t, ValidateResidual(m, good), test.ShouldBeNil)

	bad := Residual{Lhs: make([]float64, 6), Output: make([]float64, 6), JRhs: make([]float64, 35)}
	err := ValidateResidual(m, bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "lhs: expected at least 7 values but got 6")
	test.That(t, err.Error(), test.ShouldContainSubstring, "rhs: expected at least 7 values but got 0")
	test.That(t, err.Error(), test.ShouldContainSubstring, "jacobian rhs: expected at least 36 values but got 35")
}

func TestBatchEvaluator(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	conv := spatialmath.Convention{Global: true}
	m := NewSE3Metric(conv)
	rng := rand.New(rand.NewSource(1))

	residuals := make([]Residual, 50)
	for i := range residuals {
		a, b := randomPair(rng)
		residuals[i] = newResidual(a, b, i%2 == 0)
	}

	err := NewBatchEvaluator(m, 4, logger).Evaluate(context.Background(), residuals)
	test.That(t, err, test.ShouldBeNil)

	for i, r := range residuals {
		output := make([]float64, spatialmath.TangentSize)
		if i%2 == 0 {
			jLhs := make([]float64, spatialmath.JacobianSize)
			jRhs := make([]float64, spatialmath.JacobianSize)
			SE3DistanceRaw(r.Lhs, r.Rhs, output, jLhs, jRhs, conv)
			test.That(t, r.JLhs, test.ShouldResemble, jLhs)
			test.That(t, r.JRhs, test.ShouldResemble, jRhs)
		} else {
			SE3DistanceRaw(r.Lhs, r.Rhs, output, nil, nil, conv)
		}
		test.That(t, r.Output, test.ShouldResemble, output)
	}
	test.That(t, logs.FilterMessage("evaluated residuals").Len(), test.ShouldEqual, 1)
}

func TestBatchEvaluatorRejectsInvalidResiduals(t *testing.T) {
	m := NewSE3Metric(spatialmath.Convention{})
	residuals := []Residual{
		newResidual(spatialmath.NewZeroPose(), spatialmath.NewZeroPose(), false),
		{Lhs: make([]float64, 7), Rhs: make([]float64, 7), Output: make([]float64, 5)},
	}
	residuals[0].Output[0] = 3

	err := NewBatchEvaluator(m, 0, logging.NewTestLogger(t)).Evaluate(context.Background(), residuals)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "residual 1: output")
	// nothing was evaluated
	test.That(t, residuals[0].Output[0], test.ShouldEqual, 3.)
}

func TestBatchEvaluatorCancelled(t *testing.T) {
	m := NewSE3Metric(spatialmath.Convention{})
	residuals := []Residual{newResidual(spatialmath.NewZeroPose(), spatialmath.NewZeroPose(), false)}
	residuals[0].Output[0] = 3

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewBatchEvaluator(m, 2, logging.NewTestLogger(t)).Evaluate(ctx, residuals)
	test.That(t, err, test.ShouldBeError, context.Canceled)
	test.That(t, residuals[0].Output[0], test.ShouldEqual, 3.)
}

func TestBatchEvaluatorEmpty(t *testing.T) {
	err := NewBatchEvaluator(NewEuclideanMetric(3), 2, logging.NewTestLogger(t)).Evaluate(context.Background(), nil)
	test.That(t, err, test.ShouldBeNil)
}

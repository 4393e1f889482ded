package metric

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"go.viam.com/manifold/logging"
)

// Residual is one distance evaluation over caller owned buffers. JLhs and JRhs may be nil.
type Residual struct {
	Lhs    []float64
	Rhs    []float64
	Output []float64
	JLhs   []float64
	JRhs   []float64
}

// ValidateResidual checks that the buffers of r are large enough for m. Metric itself does no
// checking; this is meant for the boundary where residual blocks enter an optimizer.
func ValidateResidual(m Metric, r Residual) error {
	jacobianSize := m.OutputSize() * m.OutputSize()
	check := func(name string, buf []float64, want int, optional bool) error {
		if buf == nil && optional {
			return nil
		}
		if len(buf) < want {
			return errors.Errorf("%s: expected at least %d values but got %d", name, want, len(buf))
		}
		return nil
	}
	return multierr.Combine(
		check("lhs", r.Lhs, m.InputSize(), false),
		check("rhs", r.Rhs, m.InputSize(), false),
		check("output", r.Output, m.OutputSize(), false),
		check("jacobian lhs", r.JLhs, jacobianSize, true),
		check("jacobian rhs", r.JRhs, jacobianSize, true),
	)
}

// BatchEvaluator evaluates many residuals concurrently against one shared metric.
type BatchEvaluator struct {
	metric  Metric
	workers int
	logger  logging.Logger
}

// NewBatchEvaluator returns an evaluator using up to workers goroutines; workers <= 0 uses
// GOMAXPROCS.
func NewBatchEvaluator(m Metric, workers int, logger logging.Logger) *BatchEvaluator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &BatchEvaluator{metric: m, workers: workers, logger: logger}
}

// Evaluate validates every residual and then evaluates them all. Nothing is evaluated if any
// residual is invalid. Evaluation stops early if ctx is cancelled.
func (b *BatchEvaluator) Evaluate(ctx context.Context, residuals []Residual) error {
	var err error
	for i, r := range residuals {
		if rErr := ValidateResidual(b.metric, r); rErr != nil {
			err = multierr.Append(err, errors.Wrapf(rErr, "residual %d", i))
		}
	}
	if err != nil {
		return err
	}

	start := time.Now()
	chunk := (len(residuals) + b.workers - 1) / b.workers
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(b.workers)
	for from := 0; from < len(residuals); from += chunk {
		to := from + chunk
		if to > len(residuals) {
			to = len(residuals)
		}
		block := residuals[from:to]
		group.Go(func() error {
			for _, r := range block {
				if err := ctx.Err(); err != nil {
					return err
				}
				b.metric.Distance(r.Lhs, r.Rhs, r.Output, r.JLhs, r.JRhs)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	b.logger.Debugw("evaluated residuals",
		"count", len(residuals),
		"workers", b.workers,
		"duration", time.Since(start))
	return nil
}

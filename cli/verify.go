package cli

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/manifold/logging"
	"go.viam.com/manifold/metric"
	"go.viam.com/manifold/spatialmath"
)

const (
	verifyMaxAngle       = 1.2
	verifyMaxTranslation = 3.0
)

// VerifyAction is the corresponding action for 'verify'.
func VerifyAction(c *cli.Context) error {
	logger := logging.Global()
	args := verifyArgs{
		Samples:   c.Int(verifyFlagSamples),
		Seed:      c.Int64(verifyFlagSeed),
		Tolerance: c.Float64(verifyFlagTolerance),
	}
	if args.Samples <= 0 {
		return errors.Errorf("--%s must be positive but got %d", verifyFlagSamples, args.Samples)
	}

	results, err := verifyConventions(args)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d samples, seed %d", args.Samples, args.Seed))
	t.AppendHeader(table.Row{"Convention", "Max lhs", "Max rhs", "Mean", "P99", "Status"})
	var failed []string
	for _, r := range results {
		d := r.worst
		status := "ok"
		if d.Max() > args.Tolerance {
			status = "FAIL"
			failed = append(failed, d.Convention.String())
		}
		t.AppendRow(table.Row{
			d.Convention.String(),
			fmt.Sprintf("%.3e", d.Lhs),
			fmt.Sprintf("%.3e", d.Rhs),
			fmt.Sprintf("%.3e", r.mean),
			fmt.Sprintf("%.3e", r.p99),
			status,
		})
		logger.Debugw("verified convention", "convention", d.Convention.String(), "lhs", d.Lhs, "rhs", d.Rhs, "mean", r.mean)
	}
	if _, err := fmt.Fprintln(c.App.Writer, t.Render()); err != nil {
		return err
	}

	if len(failed) != 0 {
		return errors.Errorf("jacobians exceed tolerance %g for %v", args.Tolerance, failed)
	}
	logger.Infow("all jacobians within tolerance", "tolerance", args.Tolerance)
	return nil
}

type verifyResult struct {
	worst     metric.JacobianDeviation
	mean, p99 float64
}

// verifyConventions checks every convention on the same pose pairs and summarizes the
// deviations seen.
func verifyConventions(args verifyArgs) ([]verifyResult, error) {
	conventions := spatialmath.AllConventions()
	results := make([]verifyResult, 0, len(conventions))
	for _, conv := range conventions {
		rng := rand.New(rand.NewSource(args.Seed))
		worst := metric.JacobianDeviation{Convention: conv}
		deviations := make([]float64, 0, args.Samples)
		for i := 0; i < args.Samples; i++ {
			lhs := spatialmath.RandomPose(rng, verifyMaxAngle, verifyMaxTranslation)
			rhs := spatialmath.RandomPose(rng, verifyMaxAngle, verifyMaxTranslation)
			d := metric.CheckSE3Jacobians(lhs, rhs, conv, metric.DefaultStep)
			worst.Lhs = math.Max(worst.Lhs, d.Lhs)
			worst.Rhs = math.Max(worst.Rhs, d.Rhs)
			deviations = append(deviations, d.Max())
		}

		mean, err := stats.Mean(deviations)
		if err != nil {
			return nil, errors.Wrapf(err, "summarizing %s", conv)
		}
		p99, err := stats.Percentile(deviations, 99)
		if err != nil {
			return nil, errors.Wrapf(err, "summarizing %s", conv)
		}
		results = append(results, verifyResult{worst: worst, mean: mean, p99: p99})
	}
	return results, nil
}

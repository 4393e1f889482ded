package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/manifold/config"
	"go.viam.com/manifold/logging"
	"go.viam.com/manifold/metric"
	"go.viam.com/manifold/spatialmath"
)

// DistanceAction is the corresponding action for 'distance'.
func DistanceAction(c *cli.Context) error {
	logger := logging.Global()
	args := distanceArgs{
		Config:    c.Path(distanceFlagConfig),
		Jacobians: c.Bool(distanceFlagJacobians),
	}

	job, err := config.ReadJobFile(args.Config)
	if err != nil {
		return err
	}
	conv := job.Convention.Resolve()
	if c.IsSet(distanceFlagGlobal) {
		conv.Global = c.Bool(distanceFlagGlobal)
	}
	if c.IsSet(distanceFlagCoupled) {
		conv.Coupled = c.Bool(distanceFlagCoupled)
	}
	logger.Debugw("evaluating job", "file", args.Config, "pairs", len(job.Pairs), "convention", conv.String())

	return writeDistances(c.App.Writer, job, metric.NewSE3Metric(conv), args.Jacobians)
}

func writeDistances(out io.Writer, job *config.Job, m *metric.SE3Metric, withJacobians bool) error {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("convention: %s", m.Convention()))
	t.AppendHeader(table.Row{"#", "Name", "Rotation", "Translation", "Norm"})

	type jacobians struct {
		name     string
		lhs, rhs *mat.Dense
	}
	var all []jacobians

	for i, pair := range job.Pairs {
		lhs, rhs := pair.Poses()
		var jLhs, jRhs *mat.Dense
		if withJacobians {
			jLhs, jRhs = spatialmath.NewJacobian(), spatialmath.NewJacobian()
		}
		d := m.PoseDistance(lhs, rhs, jLhs, jRhs)

		name := pair.Name
		if name == "" {
			name = fmt.Sprintf("pair %d", i)
		}
		w, v := d.Angular(), d.Linear()
		t.AppendRow(table.Row{
			i,
			name,
			fmt.Sprintf("%.6f, %.6f, %.6f", w.X, w.Y, w.Z),
			fmt.Sprintf("%.6f, %.6f, %.6f", v.X, v.Y, v.Z),
			fmt.Sprintf("%.6f", d.Norm()),
		})
		if withJacobians {
			all = append(all, jacobians{name, jLhs, jRhs})
		}
	}

	if _, err := fmt.Fprintln(out, t.Render()); err != nil {
		return err
	}
	for _, j := range all {
		if _, err := fmt.Fprintf(out, "\n%s d/dlhs:\n%.6f\n\n%s d/drhs:\n%.6f\n",
			j.name, mat.Formatted(j.lhs, mat.Squeeze()),
			j.name, mat.Formatted(j.rhs, mat.Squeeze())); err != nil {
			return err
		}
	}
	return nil
}

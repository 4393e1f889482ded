// Package cli contains all business logic needed by the posedist CLI command.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/manifold/logging"
)

const (
	// Flags.
	generalFlagDebug = "debug"

	distanceFlagConfig    = "config"
	distanceFlagGlobal    = "global"
	distanceFlagCoupled   = "coupled"
	distanceFlagJacobians = "jacobians"

	verifyFlagSamples   = "samples"
	verifyFlagSeed      = "seed"
	verifyFlagTolerance = "tolerance"
)

type distanceArgs struct {
	Config    string
	Jacobians bool
}

type verifyArgs struct {
	Samples   int
	Seed      int64
	Tolerance float64
}

// newLogger returns the logger for a command invocation. It is installed as the global logger
// before any command runs.
func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(generalFlagDebug) {
		return logging.NewDebugLogger("posedist")
	}
	return logging.NewLogger("posedist")
}

// NewApp returns the posedist application writing its results to out.
func NewApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "posedist",
		Usage:     "evaluate and check SE3 manifold distances between poses",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			logging.ReplaceGlobal(newLogger(c))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "distance",
				Usage:     "evaluate the distance between every pose pair of a job file",
				UsageText: "posedist distance --config job.json [--global] [--coupled] [--jacobians]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     distanceFlagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "job `FILE` holding the convention and pose pairs",
					},
					&cli.BoolFlag{
						Name:  distanceFlagGlobal,
						Usage: "differentiate in the global frame, overriding the job",
					},
					&cli.BoolFlag{
						Name:  distanceFlagCoupled,
						Usage: "use coupled SE3 tangents, overriding the job",
					},
					&cli.BoolFlag{
						Name:  distanceFlagJacobians,
						Usage: "also print the Jacobians with respect to both poses",
					},
				},
				Action: DistanceAction,
			},
			{
				Name:  "verify",
				Usage: "compare analytic Jacobians against finite differences on random poses",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  verifyFlagSamples,
						Value: 100,
						Usage: "number of random pose pairs per convention",
					},
					&cli.Int64Flag{
						Name:  verifyFlagSeed,
						Value: 1,
						Usage: "random seed",
					},
					&cli.Float64Flag{
						Name:  verifyFlagTolerance,
						Value: 1e-6,
						Usage: "largest allowed absolute deviation",
					},
				},
				Action: VerifyAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of job files",
				Action: SchemaAction,
			},
		},
	}
}

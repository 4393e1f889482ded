package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"

	"go.viam.com/manifold/logging"
)

func writeJob(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.json")
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func TestDistanceCommand(t *testing.T) {
	path := writeJob(t, `{"pairs": [
		{"name": "shift", "lhs": [0, 0, 0, 1, 0, 0, 0], "rhs": [1, 0, 0, 1, 0, 0, 0]}
	]}`)

	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"posedist", "distance", "--config", path})
	test.That(t, err, test.ShouldBeNil)
	lower := strings.ToLower(out.String())
	test.That(t, lower, test.ShouldContainSubstring, "local/coupled")
	test.That(t, lower, test.ShouldContainSubstring, "shift")
	test.That(t, lower, test.ShouldContainSubstring, "-1.000000, 0.000000, 0.000000")
	test.That(t, lower, test.ShouldNotContainSubstring, "d/dlhs")
}

func TestDistanceCommandOverrides(t *testing.T) {
	path := writeJob(t, `{"convention": {"global": false, "coupled": true}, "pairs": [
		{"lhs": [0, 0, 0, 1, 0, 0, 0], "rhs": [0, 0, 2, 1, 0, 0, 0]}
	]}`)

	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"posedist", "distance", "-c", path, "--global", "--coupled=false", "--jacobians"})
	test.That(t, err, test.ShouldBeNil)
	lower := strings.ToLower(out.String())
	test.That(t, lower, test.ShouldContainSubstring, "global/decoupled")
	test.That(t, lower, test.ShouldContainSubstring, "pair 0")
	test.That(t, lower, test.ShouldContainSubstring, "0.000000, 0.000000, -2.000000")
	test.That(t, lower, test.ShouldContainSubstring, "pair 0 d/dlhs")
	test.That(t, lower, test.ShouldContainSubstring, "pair 0 d/drhs")
}

func TestDistanceCommandErrors(t *testing.T) {
	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"posedist", "distance"})
	test.That(t, err, test.ShouldNotBeNil)

	path := writeJob(t, `{"pairs": [{"lhs": [0, 0, 0, 1, 0, 0, 0]}]}`)
	err = NewApp(&out).Run([]string{"posedist", "distance", "--config", path})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "job.pairs.0.rhs: field is required")
}

func TestVerifyCommand(t *testing.T) {
	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"posedist", "verify", "--samples", "5", "--seed", "3", "--tolerance", "1e-5"})
	test.That(t, err, test.ShouldBeNil)
	lower := strings.ToLower(out.String())
	for _, name := range []string{"local/decoupled", "local/coupled", "global/decoupled", "global/coupled"} {
		test.That(t, lower, test.ShouldContainSubstring, name)
	}
	test.That(t, lower, test.ShouldNotContainSubstring, "fail")

	out.Reset()
	err = NewApp(&out).Run([]string{"posedist", "verify", "--samples", "2", "--tolerance", "0"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exceed tolerance")

	err = NewApp(&out).Run([]string{"posedist", "verify", "--samples", "0"})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchemaCommand(t *testing.T) {
	var out bytes.Buffer
	err := NewApp(&out).Run([]string{"posedist", "schema"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, `"pairs"`)
	test.That(t, out.String(), test.ShouldContainSubstring, `"convention"`)
}

func TestDebugFlagInstallsGlobalLogger(t *testing.T) {
	original := logging.Global()
	defer logging.ReplaceGlobal(original)

	var out bytes.Buffer
	test.That(t, NewApp(&out).Run([]string{"posedist", "schema"}), test.ShouldBeNil)
	test.That(t, logging.Global().Desugar().Core().Enabled(zapcore.DebugLevel), test.ShouldBeFalse)
	test.That(t, logging.Global().Desugar().Core().Enabled(zapcore.InfoLevel), test.ShouldBeTrue)

	test.That(t, NewApp(&out).Run([]string{"posedist", "--debug", "schema"}), test.ShouldBeNil)
	test.That(t, logging.Global().Desugar().Core().Enabled(zapcore.DebugLevel), test.ShouldBeTrue)
}

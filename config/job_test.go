package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"

	"go.viam.com/manifold/spatialmath"
)

func TestDefaults(t *testing.T) {
	test.That(t, Defaults(), test.ShouldResemble, spatialmath.Convention{Global: false, Coupled: true})
}

func TestParseConvention(t *testing.T) {
	conv, err := ParseConvention("1", "false")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conv, test.ShouldResemble, spatialmath.Convention{Global: true, Coupled: false})

	_, err = ParseConvention("yes", "nope")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "global")
	test.That(t, err.Error(), test.ShouldContainSubstring, "coupled")
}

func TestConventionConfigResolve(t *testing.T) {
	test.That(t, ConventionConfig{}.Resolve(), test.ShouldResemble, Defaults())

	global := true
	coupled := false
	conv := ConventionConfig{Global: &global, Coupled: &coupled}.Resolve()
	test.That(t, conv, test.ShouldResemble, spatialmath.Convention{Global: true, Coupled: false})
}

func TestReadJob(t *testing.T) {
	job, err := ReadJob([]byte(`{
		"convention": {"global": "true"},
		"pairs": [
			{"name": "shift", "lhs": [0, 0, 0, 1, 0, 0, 0], "rhs": [1, 0, 0, 1, 0, 0, 0]}
		]
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, job.Convention.Resolve(), test.ShouldResemble, spatialmath.Convention{Global: true, Coupled: Defaults().Coupled})
	test.That(t, len(job.Pairs), test.ShouldEqual, 1)
	test.That(t, job.Pairs[0].Name, test.ShouldEqual, "shift")

	expected := []PosePair{{Name: "shift", Lhs: []float64{0, 0, 0, 1, 0, 0, 0}, Rhs: []float64{1, 0, 0, 1, 0, 0, 0}}}
	test.That(t, cmp.Equal(job.Pairs, expected), test.ShouldBeTrue)

	lhs, rhs := job.Pairs[0].Poses()
	test.That(t, lhs, test.ShouldResemble, spatialmath.NewZeroPose())
	test.That(t, rhs.Point().X, test.ShouldEqual, 1.)
}

func TestReadJobAllowsComments(t *testing.T) {
	job, err := ReadJob([]byte(`{
		// translation only
		"pairs": [
			{"lhs": [0, 0, 0, 1, 0, 0, 0], "rhs": [0, 2, 0, 1, 0, 0, 0],},
		],
	}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, job.Pairs[0].Rhs[1], test.ShouldEqual, 2.)
	test.That(t, job.Convention.Resolve(), test.ShouldResemble, Defaults())
}

func TestReadJobErrors(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		_, err := ReadJob([]byte(`{`))
		test.That(t, err, test.ShouldNotBeNil)
	})
	t.Run("unknown field", func(t *testing.T) {
		_, err := ReadJob([]byte(`{"pairs": [], "other": 1}`))
		test.That(t, err, test.ShouldNotBeNil)
	})
	t.Run("no pairs", func(t *testing.T) {
		_, err := ReadJob([]byte(`{"pairs": []}`))
		test.That(t, err, test.ShouldBeError, NewFieldRequiredError("job.pairs"))
	})
	t.Run("every invalid pose is reported", func(t *testing.T) {
		_, err := ReadJob([]byte(`{"pairs": [
			{"lhs": [0, 0, 0, 1, 0], "rhs": [0, 0, 0, 2, 0, 0, 0]},
			{"lhs": [0, 0, 0, 1, 0, 0, 0]}
		]}`))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "job.pairs.0.lhs: expected 7 parameters but got 5")
		test.That(t, err.Error(), test.ShouldContainSubstring, "job.pairs.0.rhs: quaternion must have unit norm")
		test.That(t, err.Error(), test.ShouldContainSubstring, "job.pairs.1.rhs: field is required")
	})
}

func TestReadJobFile(t *testing.T) {
	t.Setenv("MANIFOLD_TEST_X", "2.5")
	path := filepath.Join(t.TempDir(), "job.json")
	contents := `{"pairs": [{"lhs": [${MANIFOLD_TEST_X}, 0, 0, 1, 0, 0, 0], "rhs": [0, 0, 0, 1, 0, 0, 0]}]}`
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)

	job, err := ReadJobFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, job.Pairs[0].Lhs[0], test.ShouldEqual, 2.5)

	_, err = ReadJobFile(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestJobSchema(t *testing.T) {
	data, err := json.Marshal(JobSchema())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, `"pairs"`)
	test.That(t, string(data), test.ShouldContainSubstring, `"lhs"`)
	test.That(t, string(data), test.ShouldContainSubstring, `"minItems":7`)
}

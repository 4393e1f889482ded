package config

import (
	"fmt"
	"math"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/manifold/spatialmath"
)

// unitNormTolerance bounds how far a quaternion in a job may be from unit norm.
const unitNormTolerance = 1e-6

// ConventionConfig overrides the default convention. Unset fields keep their default.
type ConventionConfig struct {
	Global  *bool `json:"global,omitempty"`
	Coupled *bool `json:"coupled,omitempty"`
}

// Resolve fills unset fields from Defaults.
func (c ConventionConfig) Resolve() spatialmath.Convention {
	conv := Defaults()
	if c.Global != nil {
		conv.Global = *c.Global
	}
	if c.Coupled != nil {
		conv.Coupled = *c.Coupled
	}
	return conv
}

// PosePair is one distance evaluation: two poses in the raw parameter layout.
type PosePair struct {
	Name string    `json:"name,omitempty"`
	Lhs  []float64 `json:"lhs" jsonschema:"minItems=7,maxItems=7"`
	Rhs  []float64 `json:"rhs" jsonschema:"minItems=7,maxItems=7"`
}

// Poses returns the pair as poses. The pair must have been validated.
func (p PosePair) Poses() (lhs, rhs spatialmath.Pose) {
	return spatialmath.NewPoseFromParameters(p.Lhs), spatialmath.NewPoseFromParameters(p.Rhs)
}

// Validate ensures all parts of the pair are valid.
func (p PosePair) Validate(path string) error {
	return multierr.Combine(
		validatePoseParameters(fmt.Sprintf("%s.lhs", path), p.Lhs),
		validatePoseParameters(fmt.Sprintf("%s.rhs", path), p.Rhs),
	)
}

func validatePoseParameters(path string, params []float64) error {
	if len(params) == 0 {
		return NewFieldRequiredError(path)
	}
	if len(params) != spatialmath.PoseParameters {
		return errors.Errorf("%s: expected %d parameters but got %d", path, spatialmath.PoseParameters, len(params))
	}
	norm := floats.Norm(params[3:], 2)
	if math.Abs(norm-1) > unitNormTolerance {
		return errors.Errorf("%s: quaternion must have unit norm, got %v", path, norm)
	}
	return nil
}

// Job is a set of pose pairs evaluated under one convention.
type Job struct {
	Convention ConventionConfig `json:"convention,omitempty"`
	Pairs      []PosePair       `json:"pairs"`
}

// Validate ensures all parts of the job are valid, reporting every problem found.
func (j *Job) Validate(path string) error {
	if len(j.Pairs) == 0 {
		return NewFieldRequiredError(fmt.Sprintf("%s.pairs", path))
	}
	var err error
	for i, pair := range j.Pairs {
		err = multierr.Append(err, pair.Validate(fmt.Sprintf("%s.pairs.%d", path, i)))
	}
	return err
}

// NewFieldRequiredError returns an error for a missing required field.
func NewFieldRequiredError(path string) error {
	return errors.Errorf("%s: field is required", path)
}

// DecodeJob decodes and validates a job from an attribute map, as produced by unmarshalling
// JSON into map[string]interface{}. Scalars are weakly typed so that "true" and 1 are accepted
// for booleans.
func DecodeJob(attributes map[string]interface{}) (*Job, error) {
	var job Job
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &job,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "error decoding job")
	}
	if err := job.Validate("job"); err != nil {
		return nil, err
	}
	return &job, nil
}

// ReadJob parses a job written in JSON5, so comments and trailing commas are allowed.
func ReadJob(data []byte) (*Job, error) {
	var attributes map[string]interface{}
	if err := json5.Unmarshal(data, &attributes); err != nil {
		return nil, errors.Wrap(err, "cannot parse job as JSON5")
	}
	return DecodeJob(attributes)
}

// ReadJobFile reads a JSON job from disk, substituting environment variables first.
func ReadJobFile(path string) (*Job, error) {
	buf, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read job file %q", path)
	}
	return ReadJob(buf)
}

// JobSchema returns the JSON schema of a job file.
func JobSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Job{})
}

package spatialmath

import (
	"math/rand"

	"github.com/golang/geo/r3"
)

// RandomPose draws a pose whose rotation angle is uniform in [0, maxAngle] about a uniformly
// distributed axis and whose translation components are uniform in [-maxTranslation, maxTranslation].
func RandomPose(rng *rand.Rand, maxAngle, maxTranslation float64) Pose {
	axis := r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
	if axis.Norm() == 0 {
		axis = r3.Vector{Z: 1}
	}
	angle := rng.Float64() * maxAngle
	point := r3.Vector{
		X: (2*rng.Float64() - 1) * maxTranslation,
		Y: (2*rng.Float64() - 1) * maxTranslation,
		Z: (2*rng.Float64() - 1) * maxTranslation,
	}
	return Pose{point: point, orientation: expSO3(axis.Normalize().Mul(angle))}
}

// RandomTangent draws a tangent vector with components uniform in [-scale, scale].
func RandomTangent(rng *rand.Rand, scale float64) Tangent {
	var t Tangent
	for i := range t {
		t[i] = (2*rng.Float64() - 1) * scale
	}
	return t
}

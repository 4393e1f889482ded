// Package config resolves the conventions metrics are evaluated under and reads evaluation jobs.
package config

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/manifold/spatialmath"
)

// Default convention flags, replaced by LD flags, e.g.
//
//	-ldflags "-X go.viam.com/manifold/config.defaultGlobal=true"
var (
	defaultGlobal  = "false"
	defaultCoupled = "true"
)

// defaults is resolved once at startup and never written again.
var defaults = mustParseConvention(defaultGlobal, defaultCoupled)

// Defaults returns the process wide convention used when a caller does not choose one.
func Defaults() spatialmath.Convention {
	return defaults
}

func mustParseConvention(global, coupled string) spatialmath.Convention {
	conv, err := ParseConvention(global, coupled)
	if err != nil {
		panic(errors.Wrap(err, "invalid default convention linked into binary"))
	}
	return conv
}

// ParseConvention parses the textual form of the two convention flags.
func ParseConvention(global, coupled string) (spatialmath.Convention, error) {
	g, errGlobal := strconv.ParseBool(global)
	c, errCoupled := strconv.ParseBool(coupled)
	if err := multierr.Combine(
		errors.Wrap(errGlobal, "global"),
		errors.Wrap(errCoupled, "coupled"),
	); err != nil {
		return spatialmath.Convention{}, err
	}
	return spatialmath.Convention{Global: g, Coupled: c}, nil
}

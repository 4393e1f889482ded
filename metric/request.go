package metric

import "gonum.org/v1/gonum/mat"

// Request records which Jacobians a caller asked for. Each value selects a distinct code path
// so that a Jacobian nobody asked for costs nothing.
type Request uint8

// Request values.
const (
	RequestNone Request = iota
	RequestLhs
	RequestRhs
	RequestBoth
)

// NewRequest returns the Request for the given wants.
func NewRequest(wantLhs, wantRhs bool) Request {
	var r Request
	if wantLhs {
		r |= RequestLhs
	}
	if wantRhs {
		r |= RequestRhs
	}
	return r
}

func requestOf(jLhs, jRhs *mat.Dense) Request {
	return NewRequest(jLhs != nil, jRhs != nil)
}

// WantsLhs returns whether the Jacobian with respect to the left input is requested.
func (r Request) WantsLhs() bool {
	return r&RequestLhs != 0
}

// WantsRhs returns whether the Jacobian with respect to the right input is requested.
func (r Request) WantsRhs() bool {
	return r&RequestRhs != 0
}

func (r Request) String() string {
	switch r {
	case RequestNone:
		return "none"
	case RequestLhs:
		return "lhs"
	case RequestRhs:
		return "rhs"
	case RequestBoth:
		return "both"
	default:
		return "unknown"
	}
}

package spatialmath

import "fmt"

// Convention selects how perturbations of a pose are parameterized when differentiating the
// group primitives.
//
// With Coupled set, the 6-dof tangent is one SE3 block and a perturbation δ acts through the
// SE3 exponential: Exp(δ)∘x when Global, x∘Exp(δ) otherwise. Without Coupled, rotation and
// translation are independent: the rotation is perturbed as Exp(δw)·q when Global and
// q·Exp(δw) otherwise, while the translation is always perturbed additively as t+δv.
//
// Every primitive used in a single computation must be called with the same Convention.
type Convention struct {
	Global  bool `json:"global"`
	Coupled bool `json:"coupled"`
}

// AllConventions lists every combination of the Global and Coupled flags.
func AllConventions() []Convention {
	return []Convention{
		{Global: false, Coupled: false},
		{Global: false, Coupled: true},
		{Global: true, Coupled: false},
		{Global: true, Coupled: true},
	}
}

func (c Convention) String() string {
	frame := "local"
	if c.Global {
		frame = "global"
	}
	blocks := "decoupled"
	if c.Coupled {
		blocks = "coupled"
	}
	return fmt.Sprintf("%s/%s", frame, blocks)
}

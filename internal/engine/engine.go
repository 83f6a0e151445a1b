package engine

import (
	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/kestrel-labs/tableau/internal/util"
)

// Verdict is the trichotomy a completed search returns.
type Verdict int

// The three verdicts, numbered exactly as spec.md's UNSAT=0, SAT=1,
// UNDETERMINED=2.
const (
	Unsat Verdict = iota
	Sat
	Undetermined
)

func (v Verdict) String() string {
	switch v {
	case Unsat:
		return "UNSAT"
	case Sat:
		return "SAT"
	case Undetermined:
		return "UNDETERMINED"
	default:
		return "Verdict(?)"
	}
}

// DefaultMaxConstants is the per-branch post-initial constant cap used when
// a Config does not override it.
const DefaultMaxConstants = 10

// DefaultMaxIterations bounds the search driver's step count; it is an
// engineering safeguard, not part of the logical specification (§9).
const DefaultMaxIterations = 100000

// Config configures an Engine's termination policy.
type Config struct {
	// MaxConstants is the cap on constants introduced by delta beyond those
	// present in the initial formula (§4.2.7). Zero means DefaultMaxConstants.
	MaxConstants int

	// MaxIterations bounds the total number of search-driver steps. Zero
	// means DefaultMaxIterations.
	MaxIterations int
}

// normalized fills in defaults for zero-valued fields.
func (c Config) normalized() Config {
	if c.MaxConstants <= 0 {
		c.MaxConstants = DefaultMaxConstants
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	return c
}

// Engine decides satisfiability under a fixed Config. It holds no
// per-decision state, so one Engine can safely serve many calls to Decide
// from concurrent goroutines — each Decide constructs its own branches.
type Engine struct {
	cfg Config
}

// New returns an Engine configured with cfg, applying defaults for any
// zero-valued fields.
func New(cfg Config) Engine {
	return Engine{cfg: cfg.normalized()}
}

// Decide runs the stateful Engine's search over f.
func (e Engine) Decide(f tableau.Formula) Verdict {
	return decide(f, e.cfg)
}

// Decide is the package-level convenience entry point: it constructs a
// throwaway Engine configured by cfg and decides f in one call.
func Decide(f tableau.Formula, cfg Config) Verdict {
	return decide(f, cfg.normalized())
}

// decide implements the search driver of §4.2.6 and the termination policy
// of §4.2.7.
func decide(f tableau.Formula, cfg Config) Verdict {
	c0 := util.KeySetOf(tableau.Constants(f))

	branches := []*Branch{NewBranch(f)}
	iterations := 0

	for {
		for len(branches) > 0 && branches[0].IsClosed() {
			branches = branches[1:]
		}
		if len(branches) == 0 {
			return Unsat
		}
		if iterations >= cfg.MaxIterations {
			return Undetermined
		}
		iterations++

		current := branches[0]
		rest := branches[1:]

		if current.NewConstantsBeyond(c0) > cfg.MaxConstants {
			return Undetermined
		}

		target, kind, ok := selectFormula(current)
		if !ok {
			return Sat
		}

		switch kind {
		case ruleAlpha:
			next := current.Copy()
			next.Remove(target)
			for _, add := range alphaExpansion(target) {
				next.Add(add)
			}
			branches = append([]*Branch{next}, rest...)

		case ruleBeta:
			leftAdds, rightAdds := betaExpansion(target)

			leftBranch := current.Copy()
			leftBranch.Remove(target)
			for _, add := range leftAdds {
				leftBranch.Add(add)
			}

			rightBranch := current.Copy()
			rightBranch.Remove(target)
			for _, add := range rightAdds {
				rightBranch.Add(add)
			}

			branches = append([]*Branch{leftBranch, rightBranch}, rest...)

		case ruleDelta:
			ex := target.(tableau.Exists)
			c, hasFresh := current.FreshConstant()
			next := current.Copy()
			next.Remove(target)
			if hasFresh {
				next.Add(tableau.Subst(ex.Body, ex.Var, c))
			}
			branches = append([]*Branch{next}, rest...)

		case ruleGamma:
			uni := target.(tableau.Forall)
			next := current.Copy()
			applyGamma(next, uni)
			branches = append([]*Branch{next}, rest...)
		}
	}
}

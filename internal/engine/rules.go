package engine

import "github.com/kestrel-labs/tableau/internal/tableau"

// ruleKind tags which rule family handles a formula.
type ruleKind int

const (
	ruleNone ruleKind = iota
	ruleAlpha
	ruleBeta
	ruleDelta
	ruleGamma
)

// priorityOf returns the selection priority class (lower fires first) and
// the rule kind for a non-literal formula, or ok=false if f is a literal
// and therefore not selectable at all. The five classes mirror §4.2.3:
// simplifications, non-branching alpha, branching beta, delta, gamma.
func priorityOf(f tableau.Formula) (class int, kind ruleKind, ok bool) {
	switch v := f.(type) {
	case tableau.Neg:
		switch op := v.Operand.(type) {
		case tableau.Neg:
			return 1, ruleAlpha, true // ~~phi
		case tableau.Forall:
			return 1, ruleAlpha, true // ~Av phi
		case tableau.Exists:
			return 1, ruleAlpha, true // ~Ev phi
		case tableau.Binary:
			switch op.Op {
			case tableau.OpOr:
				return 2, ruleAlpha, true // ~(A\/B)
			case tableau.OpImplies:
				return 2, ruleAlpha, true // ~(A->B)
			case tableau.OpAnd:
				return 3, ruleBeta, true // ~(A&B)
			}
		}
		return 0, ruleNone, false // negation of a literal: already a literal
	case tableau.Binary:
		switch v.Op {
		case tableau.OpAnd:
			return 2, ruleAlpha, true
		case tableau.OpOr, tableau.OpImplies:
			return 3, ruleBeta, true
		}
	case tableau.Exists:
		return 4, ruleDelta, true
	case tableau.Forall:
		return 5, ruleGamma, true
	}
	return 0, ruleNone, false
}

// alphaExpansion returns the replacement formula(s) for a non-branching
// rule (simplification or alpha), per the table in §4.2.1.
func alphaExpansion(f tableau.Formula) []tableau.Formula {
	switch v := f.(type) {
	case tableau.Neg:
		switch op := v.Operand.(type) {
		case tableau.Neg:
			return []tableau.Formula{op.Operand}
		case tableau.Forall:
			return []tableau.Formula{tableau.Exists{Var: op.Var, Body: tableau.Neg{Operand: op.Body}}}
		case tableau.Exists:
			return []tableau.Formula{tableau.Forall{Var: op.Var, Body: tableau.Neg{Operand: op.Body}}}
		case tableau.Binary:
			switch op.Op {
			case tableau.OpOr:
				return []tableau.Formula{tableau.Neg{Operand: op.Left}, tableau.Neg{Operand: op.Right}}
			case tableau.OpImplies:
				return []tableau.Formula{op.Left, tableau.Neg{Operand: op.Right}}
			}
		}
	case tableau.Binary:
		if v.Op == tableau.OpAnd {
			return []tableau.Formula{v.Left, v.Right}
		}
	}
	return nil
}

// betaExpansion returns the two alternative additions a branching rule
// splits into, per the table in §4.2.1. The left-operand branch is always
// returned first, matching the determinism requirement in §4.2.6.
func betaExpansion(f tableau.Formula) (left, right []tableau.Formula) {
	switch v := f.(type) {
	case tableau.Neg:
		if op, ok := v.Operand.(tableau.Binary); ok && op.Op == tableau.OpAnd {
			return []tableau.Formula{tableau.Neg{Operand: op.Left}}, []tableau.Formula{tableau.Neg{Operand: op.Right}}
		}
	case tableau.Binary:
		switch v.Op {
		case tableau.OpOr:
			return []tableau.Formula{v.Left}, []tableau.Formula{v.Right}
		case tableau.OpImplies:
			return []tableau.Formula{tableau.Neg{Operand: v.Left}}, []tableau.Formula{v.Right}
		}
	}
	return nil, nil
}

// gammaHasProgress reports whether applying the gamma rule to the universal
// uni on branch b would add at least one formula not already present, i.e.
// whether some candidate constant is both unused in uni's ledger and
// produces a genuinely new instantiation. A gamma with no progress is
// skipped entirely at selection time (§4.2.3).
func gammaHasProgress(b *Branch, uni tableau.Forall) bool {
	used := b.GammaUsed(uni.String())
	for _, c := range b.GammaCandidates() {
		if used.Has(c) {
			continue
		}
		candidate := tableau.Subst(uni.Body, uni.Var, c)
		if !b.Has(candidate) {
			return true
		}
	}
	return false
}

// selectFormula implements the rule-selection priority of §4.2.3: the
// first non-literal formula by priority class, then by insertion order
// within a class, skipping any gamma with no progress. It returns the
// selected formula and its rule kind, or ok=false if nothing qualifies.
func selectFormula(b *Branch) (tableau.Formula, ruleKind, bool) {
	bestClass := 0
	var bestFormula tableau.Formula
	var bestKind ruleKind

	for _, f := range b.Formulas() {
		class, kind, ok := priorityOf(f)
		if !ok {
			continue
		}
		if kind == ruleGamma {
			uni := f.(tableau.Forall)
			if !gammaHasProgress(b, uni) {
				continue
			}
		}
		if bestFormula == nil || class < bestClass {
			bestClass = class
			bestFormula = f
			bestKind = kind
		}
	}

	if bestFormula == nil {
		return nil, ruleNone, false
	}
	return bestFormula, bestKind, true
}

// applyGamma instantiates uni with every candidate constant not yet in its
// ledger, adding the resulting formula unless it is already present, and
// recording every attempted constant in the ledger regardless — matching
// §4.2.4's "for each such constant ... add ... (unless already present)
// and record c in the ledger." The universal itself is never removed.
func applyGamma(b *Branch, uni tableau.Forall) {
	key := uni.String()
	used := b.GammaUsed(key)
	for _, c := range b.GammaCandidates() {
		if used.Has(c) {
			continue
		}
		candidate := tableau.Subst(uni.Body, uni.Var, c)
		b.Add(candidate)
		b.MarkGammaUsed(key, c)
	}
}

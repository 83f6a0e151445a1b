// Package engine implements the tableau search: branches, the
// gamma-instantiation ledger, rule selection and application, the search
// driver, and the termination policy.
package engine

import (
	"sort"

	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/kestrel-labs/tableau/internal/util"
)

// Branch is an ordered collection of formulas representing one conjunctive
// possibility in the proof search, plus the gamma-instantiation ledger for
// every universal formula it carries. Duplicates are forbidden by
// construction: Add is a no-op if the formula's canonical string is already
// present.
type Branch struct {
	formulas []tableau.Formula
	present  util.StringSet
	ledger   map[string]util.KeySet[rune]
}

// NewBranch creates the singleton root branch {initial}.
func NewBranch(initial tableau.Formula) *Branch {
	b := &Branch{
		formulas: make([]tableau.Formula, 0, 1),
		present:  util.NewStringSet(),
		ledger:   make(map[string]util.KeySet[rune]),
	}
	b.Add(initial)
	return b
}

// Copy returns a deep-enough copy of b: an independent formula slice, a
// fresh membership set, and a fresh ledger (its rune sets are themselves
// copied). Formula values are immutable so they are shared, not cloned.
func (b *Branch) Copy() *Branch {
	out := &Branch{
		formulas: make([]tableau.Formula, len(b.formulas)),
		present:  util.NewStringSet(),
		ledger:   make(map[string]util.KeySet[rune], len(b.ledger)),
	}
	copy(out.formulas, b.formulas)
	for k := range b.present {
		out.present.Add(k)
	}
	for k, used := range b.ledger {
		out.ledger[k] = util.NewKeySet(map[rune]bool(used))
	}
	return out
}

// Add appends f to the branch's formula collection in insertion order,
// unless a structurally identical formula is already present. It reports
// whether the formula was actually added.
func (b *Branch) Add(f tableau.Formula) bool {
	key := f.String()
	if b.present.Has(key) {
		return false
	}
	b.present.Add(key)
	b.formulas = append(b.formulas, f)
	return true
}

// Remove deletes the first formula structurally equal to f from the
// branch, preserving the relative order of the remainder.
func (b *Branch) Remove(f tableau.Formula) {
	key := f.String()
	if !b.present.Has(key) {
		return
	}
	b.present.Remove(key)
	for i, existing := range b.formulas {
		if existing.String() == key {
			b.formulas = append(b.formulas[:i], b.formulas[i+1:]...)
			return
		}
	}
}

// Formulas returns the branch's formulas in insertion order. Callers must
// not mutate the returned slice.
func (b *Branch) Formulas() []tableau.Formula {
	return b.formulas
}

// Has reports whether a formula structurally equal to f is on the branch.
func (b *Branch) Has(f tableau.Formula) bool {
	return b.present.Has(f.String())
}

// IsClosed reports whether the branch contains both some formula and its
// negation.
func (b *Branch) IsClosed() bool {
	for _, f := range b.formulas {
		neg := tableau.Neg{Operand: f}
		if b.present.Has(neg.String()) {
			return true
		}
		if n, ok := f.(tableau.Neg); ok {
			if b.present.Has(n.Operand.String()) {
				return true
			}
		}
	}
	return false
}

// ConstantSet recomputes, by scanning every formula on the branch, the set
// of constant-letter terms currently appearing anywhere on it.
func (b *Branch) ConstantSet() util.KeySet[rune] {
	set := util.NewKeySet[rune]()
	for _, f := range b.formulas {
		for _, c := range tableau.Constants(f) {
			set.Add(c)
		}
	}
	return set
}

// GammaCandidates returns the instantiation set for the gamma rule: the
// branch's current constant set, sorted for determinism, or {'a'} if the
// branch has no constants at all.
func (b *Branch) GammaCandidates() []rune {
	set := b.ConstantSet()
	if set.Empty() {
		return []rune{'a'}
	}
	cs := set.Elements()
	sort.Slice(cs, func(i, j int) bool { return cs[i] < cs[j] })
	return cs
}

// GammaUsed returns the set of constants already recorded in the ledger for
// the universal whose canonical string is key. The returned set is never
// nil (an absent entry yields an empty set).
func (b *Branch) GammaUsed(key string) util.KeySet[rune] {
	if used, ok := b.ledger[key]; ok {
		return used
	}
	return util.NewKeySet[rune]()
}

// MarkGammaUsed records that constant c has been instantiated for the
// universal whose canonical string is key.
func (b *Branch) MarkGammaUsed(key string, c rune) {
	used, ok := b.ledger[key]
	if !ok {
		used = util.NewKeySet[rune]()
		b.ledger[key] = used
	}
	used.Add(c)
}

// FreshConstant scans a-z in order and returns the first letter that is
// both a legal constant (excludes the four variables) and not already in
// the branch's current constant set.
func (b *Branch) FreshConstant() (rune, bool) {
	current := b.ConstantSet()
	for r := 'a'; r <= 'z'; r++ {
		if !tableau.IsConstant(r) {
			continue
		}
		if !current.Has(r) {
			return r, true
		}
	}
	return 0, false
}

// NewConstantsBeyond returns how many constants in the branch's current
// constant set are not in c0, the set of constants present in the initial
// formula. Only constants introduced by delta applications (directly, or
// indirectly via a gamma instantiation that substitutes a delta-introduced
// constant) ever grow this count: gamma instantiating with a constant
// already in c0 contributes nothing new.
func (b *Branch) NewConstantsBeyond(c0 util.KeySet[rune]) int {
	current := b.ConstantSet()
	count := 0
	for c := range current {
		if !c0.Has(c) {
			count++
		}
	}
	return count
}

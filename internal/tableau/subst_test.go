package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Subst_atoms(t *testing.T) {
	assert := assert.New(t)

	f := FolAtom{Pred: 'P', Left: 'x', Right: 'y'}
	out := Subst(f, 'x', 'a')

	assert.Equal("P(a,y)", out.String())
}

func Test_Subst_doesNotTouchUnrelatedVariable(t *testing.T) {
	assert := assert.New(t)

	f := FolAtom{Pred: 'P', Left: 'x', Right: 'y'}
	out := Subst(f, 'z', 'a')

	assert.Equal("P(x,y)", out.String())
}

func Test_Subst_recursesIntoNegationAndBinary(t *testing.T) {
	assert := assert.New(t)

	f, _, err := Parse("(P(x,x)->~Q(x,y))")
	assert.NoError(err)

	out := Subst(f, 'x', 'a')

	assert.Equal("(P(a,a)->~Q(a,y))", out.String())
}

func Test_Subst_rebindingQuantifierStopsSubstitution(t *testing.T) {
	assert := assert.New(t)

	// Ax P(x,y): substituting x is a no-op because the quantifier rebinds x.
	f, _, err := Parse("AxP(x,y)")
	assert.NoError(err)

	out := Subst(f, 'x', 'a')

	assert.Equal("AxP(x,y)", out.String())
}

func Test_Subst_entersNonRebindingQuantifierBody(t *testing.T) {
	assert := assert.New(t)

	// Ax P(x,y): substituting y (the free variable) must reach the body.
	f, _, err := Parse("AxP(x,y)")
	assert.NoError(err)

	out := Subst(f, 'y', 'b')

	assert.Equal("AxP(x,b)", out.String())
}

func Test_Subst_roundTrip(t *testing.T) {
	assert := assert.New(t)

	f, _, err := Parse("(P(x,y)&~Q(y,x))")
	assert.NoError(err)

	// v not bound anywhere in f, c not occurring in f: x -> c then back.
	withConst := Subst(f, 'x', 'c')
	restored := Subst(withConst, 'c', 'x')

	assert.Equal(f.String(), restored.String())
}

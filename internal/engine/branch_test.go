package engine

import (
	"testing"

	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/stretchr/testify/assert"
)

func Test_Branch_addSuppressesDuplicates(t *testing.T) {
	assert := assert.New(t)

	b := NewBranch(mustParse(t, "p"))

	added := b.Add(mustParse(t, "p"))
	assert.False(added)
	assert.Len(b.Formulas(), 1)
}

func Test_Branch_copyIsIndependent(t *testing.T) {
	assert := assert.New(t)

	original := NewBranch(mustParse(t, "p"))
	clone := original.Copy()

	clone.Add(mustParse(t, "q"))

	assert.Len(original.Formulas(), 1)
	assert.Len(clone.Formulas(), 2)
}

func Test_Branch_copyPreservesLedger(t *testing.T) {
	assert := assert.New(t)

	uni := mustParse(t, "Ax(P(x,x)\\/~P(x,x))").(tableau.Forall)
	original := NewBranch(uni)
	applyGamma(original, uni)

	clone := original.Copy()
	clone.MarkGammaUsed(uni.String(), 'z')

	assert.False(original.GammaUsed(uni.String()).Has('z'))
	assert.True(clone.GammaUsed(uni.String()).Has('z'))
}

func Test_Branch_removeDropsExactMatch(t *testing.T) {
	assert := assert.New(t)

	b := NewBranch(mustParse(t, "p"))
	b.Add(mustParse(t, "q"))

	b.Remove(mustParse(t, "p"))

	assert.Len(b.Formulas(), 1)
	assert.False(b.Has(mustParse(t, "p")))
	assert.True(b.Has(mustParse(t, "q")))
}

func Test_Branch_gammaCandidatesDefaultsToA(t *testing.T) {
	assert := assert.New(t)

	b := NewBranch(mustParse(t, "p"))

	assert.Equal([]rune{'a'}, b.GammaCandidates())
}

func Test_Branch_newConstantsBeyond(t *testing.T) {
	assert := assert.New(t)

	b := NewBranch(mustParse(t, "P(a,b)"))
	c0 := b.ConstantSet()

	b.Add(mustParse(t, "P(c,d)"))

	assert.Equal(2, b.NewConstantsBeyond(c0))
}

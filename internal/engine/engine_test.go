package engine

import (
	"testing"

	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, s string) tableau.Formula {
	t.Helper()
	f, cat, err := tableau.Parse(s)
	if err != nil || cat == tableau.NotAFormula {
		t.Fatalf("not a well-formed formula: %q", s)
	}
	return f
}

func Test_Decide_endToEndScenarios(t *testing.T) {
	testCases := []struct {
		input  string
		expect Verdict
	}{
		{input: "(p&~p)", expect: Unsat},
		{input: "(p\\/q)", expect: Sat},
		{input: "((p->q)&(p&~q))", expect: Unsat},
		{input: "(ExP(x,x)&Ax~P(x,x))", expect: Unsat},
		{input: "Ax(P(x,x)\\/~P(x,x))", expect: Sat},
		{input: "AxEyP(x,y)", expect: Undetermined},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			f := mustParse(t, tc.input)
			verdict := Decide(f, Config{})

			assert.Equal(tc.expect, verdict)
		})
	}
}

func Test_Decide_respectsConfiguredConstantCap(t *testing.T) {
	assert := assert.New(t)

	f := mustParse(t, "AxEyP(x,y)")

	// with a tiny cap the same formula still terminates, just sooner.
	verdict := Decide(f, Config{MaxConstants: 1})

	assert.Equal(Undetermined, verdict)
}

func Test_Engine_stateCanBeReused(t *testing.T) {
	assert := assert.New(t)

	e := New(Config{MaxConstants: 10})

	v1 := e.Decide(mustParse(t, "(p&~p)"))
	v2 := e.Decide(mustParse(t, "(p\\/q)"))

	assert.Equal(Unsat, v1)
	assert.Equal(Sat, v2)
}

func Test_Decide_terminatesWithinIterationCap(t *testing.T) {
	assert := assert.New(t)

	f := mustParse(t, "AxEyP(x,y)")

	assert.NotPanics(func() {
		Decide(f, Config{MaxConstants: 10, MaxIterations: 50})
	})
}

func Test_GammaIdempotence(t *testing.T) {
	assert := assert.New(t)

	uni := mustParse(t, "Ax(P(x,x)\\/~P(x,x))").(tableau.Forall)
	b := NewBranch(uni)

	applyGamma(b, uni)
	before := len(b.Formulas())

	// every current constant is now in the ledger; applying again must add
	// nothing further.
	applyGamma(b, uni)
	after := len(b.Formulas())

	assert.Equal(before, after)
}

func Test_DeltaFreshness(t *testing.T) {
	assert := assert.New(t)

	b := NewBranch(mustParse(t, "P(a,a)"))
	before := b.ConstantSet()

	c, ok := b.FreshConstant()
	assert.True(ok)
	assert.False(before.Has(c))
}

func Test_Branch_closureSoundness(t *testing.T) {
	assert := assert.New(t)

	b := NewBranch(mustParse(t, "p"))
	assert.False(b.IsClosed())

	b.Add(mustParse(t, "~p"))
	assert.True(b.IsClosed())
}

package tableau

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Classify_spotChecks(t *testing.T) {
	testCases := []struct {
		input  string
		expect Category
	}{
		{input: "p", expect: PropAtomCat},
		{input: "P(x,y)", expect: FolAtomCat},
		{input: "~p", expect: NegProp},
		{input: "~P(x,y)", expect: NegFol},
		{input: "AxP(x,x)", expect: ForallCat},
		{input: "ExP(x,x)", expect: ExistsCat},
		{input: "(p&q)", expect: BinaryProp},
		{input: "(P(x,y)->Q(z,w))", expect: BinaryFol},
		{input: "p&q", expect: NotAFormula},
		{input: "P(x)", expect: NotAFormula},
		{input: "", expect: NotAFormula},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			actual := Classify(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Classify_totality(t *testing.T) {
	// classify must never panic and must always return one of the nine
	// categories, for arbitrary strings including ones with no hope of
	// being well-formed.
	inputs := []string{
		"(((((((",
		")))))))",
		"&&&&&&",
		"AaAaAa",
		"~~~~~~p",
		"(p\\/q\\/r)",
		"(p&(q&r",
		strings.Repeat("p", 200),
		"P(P,P)",
		"xyzw",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			assert := assert.New(t)

			var cat Category
			assert.NotPanics(func() {
				cat = Classify(in)
			})
			assert.GreaterOrEqual(int(cat), 0)
			assert.LessOrEqual(int(cat), 8)
		})
	}
}

func Test_Parse_neverErrors(t *testing.T) {
	assert := assert.New(t)

	_, cat, err := Parse("not-a-valid-formula(((")
	assert.NoError(err)
	assert.Equal(NotAFormula, cat)
}

func Test_Parse_buildsFormulaForWellFormedInput(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "prop atom", input: "p", expect: "p"},
		{name: "fol atom", input: "P(x,y)", expect: "P(x,y)"},
		{name: "double negation", input: "~~p", expect: "~~p"},
		{name: "binary prop", input: "(p&q)", expect: "(p&q)"},
		{name: "binary fol", input: "(P(x,y)->Q(z,w))", expect: "(P(x,y)->Q(z,w))"},
		{name: "forall", input: "AxP(x,x)", expect: "AxP(x,x)"},
		{name: "exists", input: "ExP(x,x)", expect: "ExP(x,x)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			f, cat, err := Parse(tc.input)

			assert.NoError(err)
			assert.NotEqual(NotAFormula, cat)
			if assert.NotNil(f) {
				assert.Equal(tc.expect, f.String())
			}
		})
	}
}

func Test_Classify_accessorAgreement(t *testing.T) {
	testCases := []string{
		"(p&q)",
		"(P(x,y)->Q(z,w))",
		"((p\\/q)&(p->q))",
	}

	for _, in := range testCases {
		t.Run(in, func(t *testing.T) {
			assert := assert.New(t)

			f, cat, err := Parse(in)
			assert.NoError(err)
			if !assert.True(cat.IsBinary()) {
				return
			}

			lhs := Lhs(f)
			conn := Connective(f)
			rhs := Rhs(f)

			assert.Equal(in[1:len(in)-1], lhs+conn+rhs)

			_, lhsCat, _ := Parse(lhs)
			_, rhsCat, _ := Parse(rhs)
			assert.NotEqual(NotAFormula, lhsCat)
			assert.NotEqual(NotAFormula, rhsCat)
		})
	}
}

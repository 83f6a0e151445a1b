package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Formula_String(t *testing.T) {
	testCases := []struct {
		name   string
		input  Formula
		expect string
	}{
		{name: "prop atom", input: PropAtom{Name: 'p'}, expect: "p"},
		{name: "fol atom", input: FolAtom{Pred: 'P', Left: 'x', Right: 'a'}, expect: "P(x,a)"},
		{name: "negation", input: Neg{Operand: PropAtom{Name: 'q'}}, expect: "~q"},
		{name: "forall", input: Forall{Var: 'x', Body: PropAtom{Name: 'p'}}, expect: "Axp"},
		{name: "exists", input: Exists{Var: 'y', Body: PropAtom{Name: 'p'}}, expect: "Eyp"},
		{
			name: "binary",
			input: Binary{
				Op:    OpAnd,
				Left:  PropAtom{Name: 'p'},
				Right: PropAtom{Name: 'q'},
			},
			expect: "(p&q)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.input.String())
		})
	}
}

func Test_IsLiteral(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsLiteral(PropAtom{Name: 'p'}))
	assert.True(IsLiteral(FolAtom{Pred: 'P', Left: 'x', Right: 'y'}))
	assert.True(IsLiteral(Neg{Operand: PropAtom{Name: 'p'}}))
	assert.False(IsLiteral(Neg{Operand: Neg{Operand: PropAtom{Name: 'p'}}}))
	assert.False(IsLiteral(Binary{Op: OpAnd, Left: PropAtom{Name: 'p'}, Right: PropAtom{Name: 'q'}}))
}

func Test_Equal(t *testing.T) {
	assert := assert.New(t)

	a := Binary{Op: OpAnd, Left: PropAtom{Name: 'p'}, Right: PropAtom{Name: 'q'}}
	b := Binary{Op: OpAnd, Left: PropAtom{Name: 'p'}, Right: PropAtom{Name: 'q'}}
	c := Binary{Op: OpOr, Left: PropAtom{Name: 'p'}, Right: PropAtom{Name: 'q'}}

	assert.True(Equal(a, b))
	assert.False(Equal(a, c))
}

func Test_Constants(t *testing.T) {
	assert := assert.New(t)

	f, _, err := Parse("(P(a,x)&Q(y,b))")
	assert.NoError(err)

	cs := Constants(f)
	assert.ElementsMatch([]rune{'a', 'b'}, cs)
}

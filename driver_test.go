package tableau

import (
	"strings"
	"testing"

	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/stretchr/testify/assert"
)

func Test_Driver_ParseLine(t *testing.T) {
	testCases := []struct {
		input  string
		expect string
	}{
		{input: "p", expect: "p is a proposition."},
		{input: "~p", expect: "~p is a negation of a propositional formula."},
		{input: "P(a,a)", expect: "P(a,a) is an atom."},
		{input: "~P(a,a)", expect: "~P(a,a) is a negation of a first order logic formula."},
		{input: "Ax(P(x,x))", expect: "Ax(P(x,x)) is a universally quantified formula."},
		{input: "ExP(x,x)", expect: "ExP(x,x) is an existentially quantified formula."},
		{input: "not a formula at all", expect: "not a formula at all is not a formula."},
		{
			input:  "(p&q)",
			expect: "(p&q) is a binary connective propositional formula. Its left hand side is p, its connective is &, and its right hand side is q.",
		},
		{
			input:  "(P(a,a)&Q(a,a))",
			expect: "(P(a,a)&Q(a,a)) is a binary connective first order formula. Its left hand side is P(a,a), its connective is &, and its right hand side is Q(a,a).",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			d := New(nil, engine.Config{})
			assert.Equal(tc.expect, d.ParseLine(tc.input))
		})
	}
}

func Test_Driver_SatLine(t *testing.T) {
	testCases := []struct {
		input  string
		expect string
	}{
		{input: "(p&~p)", expect: "(p&~p) is not satisfiable."},
		{input: "(p\\/q)", expect: "(p\\/q) is satisfiable."},
		{input: "AxEyP(x,y)", expect: "AxEyP(x,y) may or may not be satisfiable."},
		{input: "not a formula at all", expect: "not a formula at all is not a formula."},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			d := New(nil, engine.Config{})
			assert.Equal(tc.expect, d.SatLine(tc.input))
		})
	}
}

func Test_Driver_RunBatch_parseAndSatModes(t *testing.T) {
	assert := assert.New(t)

	input := "PARSE SAT\np\n(p&~p)\n"
	var out strings.Builder

	d := New(&out, engine.Config{})
	err := d.RunBatch(strings.NewReader(input))
	assert.NoError(err)

	expect := "p is a proposition.\n" +
		"p is satisfiable.\n" +
		"(p&~p) is a binary connective propositional formula. Its left hand side is p, its connective is &, and its right hand side is ~p.\n" +
		"(p&~p) is not satisfiable.\n"
	assert.Equal(expect, out.String())
}

func Test_Driver_RunBatch_parseModeOnly(t *testing.T) {
	assert := assert.New(t)

	input := "PARSE\np\n"
	var out strings.Builder

	d := New(&out, engine.Config{})
	err := d.RunBatch(strings.NewReader(input))
	assert.NoError(err)
	assert.Equal("p is a proposition.\n", out.String())
}

func Test_Driver_RunBatch_rejectsMissingModeLine(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	d := New(&out, engine.Config{})

	err := d.RunBatch(strings.NewReader(""))
	assert.Error(err)
}

func Test_Driver_RunBatch_rejectsUnrecognizedModeLine(t *testing.T) {
	assert := assert.New(t)

	var out strings.Builder
	d := New(&out, engine.Config{})

	err := d.RunBatch(strings.NewReader("NOT A MODE\np\n"))
	assert.Error(err)
}

func Test_Driver_RunBatch_skipsBlankLines(t *testing.T) {
	assert := assert.New(t)

	input := "SAT\np\n\n\nq\n"
	var out strings.Builder

	d := New(&out, engine.Config{})
	err := d.RunBatch(strings.NewReader(input))
	assert.NoError(err)
	assert.Equal("p is satisfiable.\nq is satisfiable.\n", out.String())
}

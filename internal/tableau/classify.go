package tableau

import (
	"fmt"
	"strings"
)

// Category is the syntactic classification the recursive-descent classifier
// assigns to an input string.
type Category int

// The nine syntactic categories, numbered exactly as the grammar table.
const (
	NotAFormula Category = iota
	FolAtomCat
	NegFol
	ForallCat
	ExistsCat
	BinaryFol
	PropAtomCat
	NegProp
	BinaryProp
)

var categoryNames = [...]string{
	NotAFormula: "NOT_A_FORMULA",
	FolAtomCat:  "FOL_ATOM",
	NegFol:      "NEG_FOL",
	ForallCat:   "FORALL",
	ExistsCat:   "EXISTS",
	BinaryFol:   "BINARY_FOL",
	PropAtomCat: "PROP_ATOM",
	NegProp:     "NEG_PROP",
	BinaryProp:  "BINARY_PROP",
}

// String renders the category using the nine names from the grammar table.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// IsBinary reports whether a category carries a top-level binary connective,
// i.e. whether Lhs/Connective/Rhs are meaningful for it.
func (c Category) IsBinary() bool {
	return c == BinaryFol || c == BinaryProp
}

// IsFOL reports whether the category belongs to the first-order fragment, as
// opposed to pure propositional logic.
func (c Category) IsFOL() bool {
	switch c {
	case FolAtomCat, NegFol, ForallCat, ExistsCat, BinaryFol:
		return true
	}
	return false
}

// IsProp reports whether the category belongs to pure propositional logic.
func (c Category) IsProp() bool {
	switch c {
	case PropAtomCat, NegProp, BinaryProp:
		return true
	}
	return false
}

// Classify returns the syntactic category of s without exposing the built
// Formula. It is a thin wrapper over Parse for callers that only need the
// category, e.g. PARSE-mode output.
func Classify(s string) Category {
	_, cat, _ := Parse(s)
	return cat
}

// Parse classifies s and, for every category other than NOT_A_FORMULA,
// builds the structural Formula it denotes. Parse never returns a non-nil
// error — NOT_A_FORMULA together with a nil Formula is the total,
// error-free way of reporting rejection. The error return exists only so
// callers can use the same signature as other fallible constructors; it is
// always nil today. Callers should branch on the returned Category, never
// on error.
func Parse(s string) (Formula, Category, error) {
	f, cat := classify(s)
	return f, cat, nil
}

// classify implements the classifier's recursive descent exactly in the
// documented leftmost-rule test order: empty, propositional atom, FOL atom,
// negation, quantifier, binary, else reject.
func classify(s string) (Formula, Category) {
	// 1. Empty string.
	if s == "" {
		return nil, NotAFormula
	}

	// 2. Single-character propositional atom.
	if len(s) == 1 {
		r := rune(s[0])
		if strings.ContainsRune(PropositionalLetters, r) {
			return PropAtom{Name: r}, PropAtomCat
		}
	}

	// 3. Six-character FOL atom X(t1,t2).
	if f, ok := parseFolAtom(s); ok {
		return f, FolAtomCat
	}

	// 4. Leading negation.
	if s[0] == '~' {
		operand, opCat := classify(s[1:])
		if opCat == NotAFormula {
			return nil, NotAFormula
		}
		if opCat.IsProp() {
			return Neg{Operand: operand}, NegProp
		}
		return Neg{Operand: operand}, NegFol
	}

	// 5. Quantifier prefix.
	if len(s) >= 3 && (s[0] == 'A' || s[0] == 'E') {
		v := rune(s[1])
		if IsVariable(v) {
			body, bodyCat := classify(s[2:])
			if bodyCat == NotAFormula {
				return nil, NotAFormula
			}
			if s[0] == 'A' {
				return Forall{Var: v, Body: body}, ForallCat
			}
			return Exists{Var: v, Body: body}, ExistsCat
		}
	}

	// 6. Binary form.
	if f, cat, ok := parseBinary(s); ok {
		return f, cat
	}

	// 7. Anything else.
	return nil, NotAFormula
}

// parseFolAtom recognizes "<Pred>(<term>,<term>)", e.g. "P(x,y)": six
// characters exactly, Pred one of PQRS, each term a variable or constant.
func parseFolAtom(s string) (Formula, bool) {
	if len(s) != 6 {
		return nil, false
	}
	pred := rune(s[0])
	if !strings.ContainsRune(Predicates, pred) {
		return nil, false
	}
	if s[1] != '(' || s[3] != ',' || s[5] != ')' {
		return nil, false
	}
	t1, t2 := rune(s[2]), rune(s[4])
	if !IsTerm(t1) || !IsTerm(t2) {
		return nil, false
	}
	return FolAtom{Pred: pred, Left: t1, Right: t2}, true
}

// parseBinary recognizes "(<formula><op><formula>)" by requiring the
// outermost parentheses and then scanning at parenthesis depth 1 for the
// first occurrence of "->", "\/", or "&" — the main connective. Both
// operands must themselves classify successfully; the result is
// BINARY_PROP if both operands are propositional, else BINARY_FOL.
func parseBinary(s string) (Formula, Category, bool) {
	if len(s) < 3 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, NotAFormula, false
	}
	inner := s[1 : len(s)-1]

	splitAt, opLen, op, ok := findMainConnective(inner)
	if !ok {
		return nil, NotAFormula, false
	}

	lhsStr := inner[:splitAt]
	rhsStr := inner[splitAt+opLen:]
	if lhsStr == "" || rhsStr == "" {
		return nil, NotAFormula, false
	}

	lhs, lhsCat := classify(lhsStr)
	if lhsCat == NotAFormula {
		return nil, NotAFormula, false
	}
	rhs, rhsCat := classify(rhsStr)
	if rhsCat == NotAFormula {
		return nil, NotAFormula, false
	}

	b := Binary{Op: op, Left: lhs, Right: rhs}
	if lhsCat.IsProp() && rhsCat.IsProp() {
		return b, BinaryProp, true
	}
	return b, BinaryFol, true
}

// findMainConnective scans s tracking parenthesis depth (s itself is the
// substring strictly inside the outer parentheses, so the main connective
// sits at depth 0 relative to s) for the first occurrence of "->", "\/", or
// "&". It returns the byte offset of the match, the matched token's length,
// the Op value, and whether a match was found at all.
func findMainConnective(s string) (int, int, Op, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
			continue
		case ')':
			depth--
			continue
		}
		if depth != 0 {
			continue
		}
		if strings.HasPrefix(s[i:], "->") {
			return i, 2, OpImplies, true
		}
		if strings.HasPrefix(s[i:], "\\/") {
			return i, 2, OpOr, true
		}
		if s[i] == '&' {
			return i, 1, OpAnd, true
		}
	}
	return 0, 0, "", false
}

// Lhs returns the left operand's concrete syntax for a binary category
// (BINARY_FOL or BINARY_PROP). It panics if f is not a Binary; callers must
// check Category.IsBinary first.
func Lhs(f Formula) string {
	return f.(Binary).Left.String()
}

// Rhs returns the right operand's concrete syntax for a binary category.
func Rhs(f Formula) string {
	return f.(Binary).Right.String()
}

// Connective returns the top-level connective symbol for a binary category.
func Connective(f Formula) string {
	return string(f.(Binary).Op)
}

// Package tableau (root) contains the batch and interactive drivers that sit
// on top of the classifier and tableau engine: reading lines of input,
// dispatching them to internal/tableau and internal/engine, and formatting
// the fixed textual output described for the command-line tools.
package tableau

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/kestrel-labs/tableau/internal/input"
	"github.com/kestrel-labs/tableau/internal/tableau"
	"github.com/kestrel-labs/tableau/internal/taberrors"
)

// Mode selects which of the batch driver's two output styles are active for
// a run. Both may be set at once, in which case every line produces both a
// PARSE-mode and a SAT-mode line of output.
type Mode struct {
	Parse bool
	Sat   bool
}

// categoryDescriptions is the fixed nine-entry table indexed by
// tableau.Category used to render PARSE-mode output.
var categoryDescriptions = [...]string{
	tableau.NotAFormula: "not a formula",
	tableau.FolAtomCat:  "an atom",
	tableau.NegFol:      "a negation of a first order logic formula",
	tableau.ForallCat:   "a universally quantified formula",
	tableau.ExistsCat:   "an existentially quantified formula",
	tableau.BinaryFol:   "a binary connective first order formula",
	tableau.PropAtomCat: "a proposition",
	tableau.NegProp:     "a negation of a propositional formula",
	tableau.BinaryProp:  "a binary connective propositional formula",
}

// verdictText is the fixed three-entry table indexed by engine.Verdict used
// to render SAT-mode output.
var verdictText = [...]string{
	engine.Unsat:        "is not satisfiable",
	engine.Sat:          "is satisfiable",
	engine.Undetermined: "may or may not be satisfiable",
}

// Driver runs classification and decision over lines of input and writes
// the textual output format described for the command-line tools.
type Driver struct {
	Out    io.Writer
	Engine engine.Config
}

// New creates a Driver that writes to out using the given engine
// configuration (zero-valued Config falls back to the engine's own
// defaults).
func New(out io.Writer, cfg engine.Config) *Driver {
	return &Driver{Out: out, Engine: cfg}
}

// ParseLine renders the PARSE-mode output line for L.
func (d *Driver) ParseLine(l string) string {
	f, cat, _ := tableau.Parse(l)
	desc := categoryDescriptions[cat]

	if cat.IsBinary() {
		return fmt.Sprintf("%s is %s. Its left hand side is %s, its connective is %s, and its right hand side is %s.",
			l, desc, tableau.Lhs(f), tableau.Connective(f), tableau.Rhs(f))
	}
	return fmt.Sprintf("%s is %s.", l, desc)
}

// SatLine renders the SAT-mode output line for L.
func (d *Driver) SatLine(l string) string {
	f, cat, err := tableau.Parse(l)
	if err != nil || cat == tableau.NotAFormula {
		return fmt.Sprintf("%s is not a formula.", l)
	}

	verdict := engine.Decide(f, d.Engine)
	return fmt.Sprintf("%s %s.", l, verdictText[verdict])
}

// ProcessLine renders every line of output mode calls for on l, in PARSE
// then SAT order, one per line.
func (d *Driver) ProcessLine(mode Mode, l string) []string {
	var lines []string
	if mode.Parse {
		lines = append(lines, d.ParseLine(l))
	}
	if mode.Sat {
		lines = append(lines, d.SatLine(l))
	}
	return lines
}

// RunBatch reads r as a batch input file: the first line selects the mode
// (must contain "PARSE", "SAT", or both), and every subsequent non-empty
// line is one formula to process. Output is written to d.Out, one rendered
// line per line of input per active mode.
func (d *Driver) RunBatch(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return taberrors.WrapDriver(err, "could not read input file", "read mode line: "+err.Error())
		}
		return taberrors.Driver("input file is empty", "missing mode line")
	}

	modeLine := scanner.Text()
	mode := Mode{
		Parse: strings.Contains(modeLine, "PARSE"),
		Sat:   strings.Contains(modeLine, "SAT"),
	}
	if !mode.Parse && !mode.Sat {
		return taberrors.Driverf("mode line must contain PARSE, SAT, or both: %q", modeLine)
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		for _, out := range d.ProcessLine(mode, line) {
			if _, err := fmt.Fprintln(d.Out, out); err != nil {
				return taberrors.WrapDriver(err, "could not write output", "write output line: "+err.Error())
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return taberrors.WrapDriver(err, "could not read input file", "scan input: "+err.Error())
	}

	return nil
}

// RunInteractive reads lines from in until EOF, classifying and deciding
// each as it is entered, and writes the results to d.Out. mode selects
// which of the two output styles to print for each line; if neither is set,
// both are used.
func (d *Driver) RunInteractive(in input.LineReader, mode Mode) error {
	if !mode.Parse && !mode.Sat {
		mode = Mode{Parse: true, Sat: true}
	}

	for {
		line, err := in.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return taberrors.WrapDriver(err, "could not read input", "read line: "+err.Error())
		}

		for _, out := range d.ProcessLine(mode, line) {
			if _, err := fmt.Fprintln(d.Out, out); err != nil {
				return taberrors.WrapDriver(err, "could not write output", "write output line: "+err.Error())
			}
		}
	}
}

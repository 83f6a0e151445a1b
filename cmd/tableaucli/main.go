/*
Tableaucli classifies and decides formulas read from a batch input file, or
interactively from a terminal.

Usage:

	tableaucli [flags]

By default, tableaucli reads a batch input file named "input.txt" in the
current working directory. The first line of the file selects the output
mode and must contain the word "PARSE", the word "SAT", or both; every
subsequent non-blank line is one formula, and for each active mode a line
of output is written to stdout describing that formula.

If the input file does not exist and stdin is a terminal, tableaucli
instead starts an interactive session: every line entered is classified and
decided immediately, using GNU Readline-style editing.

The flags are:

	-v, --version
		Give the current version of tableaucli and then exit.

	-i, --input FILE
		Read the batch input from FILE instead of "input.txt".

	-c, --direct
		Force reading directly from stdin instead of going through GNU
		readline, even when launched in a tty.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rosed"
	tableau "github.com/kestrel-labs/tableau"
	"github.com/kestrel-labs/tableau/internal/engine"
	"github.com/kestrel-labs/tableau/internal/input"
	"github.com/kestrel-labs/tableau/internal/taberrors"
	"github.com/kestrel-labs/tableau/internal/version"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess = iota
	ExitDriverError
	ExitInitError
)

// consoleOutputWidth is the column error messages are wrapped to before
// being printed to stderr.
const consoleOutputWidth = 80

// printError writes msg to stderr, wrapped to consoleOutputWidth.
func printError(msg string) {
	wrapped := rosed.Edit(msg).Wrap(consoleOutputWidth).String()
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", wrapped)
}

var (
	returnCode  int
	flagVersion = pflag.BoolP("version", "v", false, "Gives the version info")
	flagInput   = pflag.StringP("input", "i", "input.txt", "The batch input file to read formulas from")
	flagDirect  = pflag.BoolP("direct", "c", false, "Force reading directly from stdin instead of going through GNU readline where possible")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	drv := tableau.New(os.Stdout, engine.Config{})

	f, err := os.Open(*flagInput)
	if err == nil {
		defer f.Close()
		if runErr := drv.RunBatch(f); runErr != nil {
			printError(taberrors.OutwardMessage(runErr))
			returnCode = ExitDriverError
		}
		return
	}
	if !os.IsNotExist(err) {
		printError(err.Error())
		returnCode = ExitInitError
		return
	}

	// no input file present; drop into an interactive session.
	var reader input.LineReader
	if *flagDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		ilr, rlErr := input.NewInteractiveReader()
		if rlErr != nil {
			printError(rlErr.Error())
			returnCode = ExitInitError
			return
		}
		reader = ilr
	}
	defer reader.Close()

	if runErr := drv.RunInteractive(reader, tableau.Mode{}); runErr != nil {
		printError(taberrors.OutwardMessage(runErr))
		returnCode = ExitDriverError
	}
}

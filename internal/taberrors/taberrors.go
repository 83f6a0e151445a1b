// Package taberrors defines driver- and server-level I/O errors: the
// classifier and engine are total functions (per spec) and never need one
// of these, but reading an input file, parsing a flag, or handling a
// malformed request body all can fail in ways worth reporting with a
// message distinct from what gets logged.
package taberrors

import "fmt"

// driverError is an error encountered outside the classifier/engine core.
// It carries both a technical message (for logs) and an outward-facing
// one (for a CLI user or an HTTP response body), which are often
// different: "open input.txt: no such file or directory" versus "could
// not read input file".
type driverError struct {
	msg     string
	outward string
	wrap    error
}

func (e *driverError) Error() string {
	return e.msg
}

// Outward returns the message that should be shown to whoever triggered
// the error, as opposed to what gets logged.
func (e *driverError) Outward() string {
	return e.outward
}

// Unwrap gives the error that the driverError wraps, if it wraps one.
func (e *driverError) Unwrap() error {
	return e.wrap
}

// Driver returns a new error that has both an outward-facing message and a
// technical description.
func Driver(outward, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got driverError(%q)", outward)
	}
	return &driverError{
		msg:     technical,
		outward: outward,
	}
}

// Driverf returns a new error that has an outward-facing message built
// from the given format and arguments, and an automatically generated
// Error() description.
func Driverf(outwardFormat string, a ...interface{}) error {
	outward := fmt.Sprintf(outwardFormat, a...)
	return Driver(outward, "")
}

// WrapDriver returns a new error that has both an outward-facing message
// and a technical description, and that wraps the given error.
func WrapDriver(e error, outward, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got driverError(%q)", outward)
	}
	return &driverError{
		msg:     technical,
		outward: outward,
		wrap:    e,
	}
}

// WrapDriverf returns a new error that has an outward-facing message built
// from the given format and arguments, an automatically generated Error()
// description, and wraps the given error.
func WrapDriverf(e error, outwardFormat string, a ...interface{}) error {
	outward := fmt.Sprintf(outwardFormat, a...)
	return WrapDriver(e, outward, "")
}

// OutwardMessage gets the message to show to whoever triggered err. If err
// is one of the types defined in this package, its outward message is
// returned; otherwise err.Error() is returned.
func OutwardMessage(err error) string {
	if de, ok := err.(*driverError); ok {
		return de.Outward()
	}
	return err.Error()
}

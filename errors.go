package main

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the error messages the user sees.  The
// session protocol prints exactly one of these per failed command,
// so any extra context goes to the tracer, never to the output
//

const (
	ESYNTAX         = "SYNTAX ERROR"
	ELINENUMBER     = "LINE NUMBER ERROR"
	EUNDEFINED      = "VARIABLE NOT DEFINED"
	EDIVISIONBYZERO = "DIVIDE BY ZERO"
	EINVALIDNUMBER  = "INVALID NUMBER"
	EINTERRUPTED    = "INTERRUPTED"
	EENDOFINPUT     = "END OF INPUT"
)

var errSyntax = errors.New(ESYNTAX)               //nolint:staticcheck
var errLineNumber = errors.New(ELINENUMBER)       //nolint:staticcheck
var errUndefined = errors.New(EUNDEFINED)         //nolint:staticcheck
var errDivideByZero = errors.New(EDIVISIONBYZERO) //nolint:staticcheck
var errInvalidNumber = errors.New(EINVALIDNUMBER) //nolint:staticcheck
var errInterrupted = errors.New(EINTERRUPTED)     //nolint:staticcheck
var errEndOfInput = errors.New(EENDOFINPUT)       //nolint:staticcheck

//
// Numeric codes, in the spirit of the DEC error numbers.  They only
// show up in trace output, so a log reader can grep for them
//

var errorMap = map[error]int16{
	errSyntax:        1,
	errLineNumber:    2,
	errUndefined:     3,
	errDivideByZero:  61,
	errInvalidNumber: 52,
	errInterrupted:   28,
	errEndOfInput:    11,
}

//
// A BASIC error with some detail attached.  Error() deliberately
// returns only the bare message, since that is what gets printed
//

type basicError struct {
	err    error
	detail string
}

func (e *basicError) Error() string {
	return e.err.Error()
}

func (e *basicError) Unwrap() error {
	return e.err
}

func basicErrorf(err error, f string, args ...any) error {

	return &basicError{err: err, detail: fmt.Sprintf(f, args...)}
}

func syntaxError(f string, args ...any) error {

	return basicErrorf(errSyntax, f, args...)
}

//
// Return the numeric code and the detail text (if any) for an error,
// for use by the tracer.  We return -1 on a failed lookup, as not
// every error that can surface here is one of ours
//

func getErrorNo(err error) int16 {

	for base, no := range errorMap {
		if errors.Is(err, base) {
			return no
		}
	}

	return -1
}

func getErrorDetail(err error) string {

	var be *basicError

	if errors.As(err, &be) {
		return be.detail
	}

	return ""
}

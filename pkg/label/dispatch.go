package label

import (
	"errors"
	"fmt"
)

// ErrNothingToPrint is returned by PrintAll for an empty scan list. It is
// informational, not a failure.
var ErrNothingToPrint = errors.New("label: nothing to print")

// Sink accepts one complete label and returns once it has been handed to
// the printer.
type Sink interface {
	Print(data []byte) error
}

// Result summarizes a PrintAll run.
type Result struct {
	Total   int `json:"total"`
	Printed int `json:"printed"`
}

// PrintError reports the label that stopped a print run. Labels before
// Index were printed.
type PrintError struct {
	Index int
	Total int
	Code  string
	Err   error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("label %d of %d (%s): %v", e.Index+1, e.Total, e.Code, e.Err)
}

func (e *PrintError) Unwrap() error {
	return e.Err
}

// Partial reports whether some labels were printed before the failure.
func (e *PrintError) Partial() bool {
	return e.Index > 0
}

// PrintOne builds, serializes and writes a single label.
func PrintOne(s Scan, sink Sink) error {
	data, err := Serialize(Build(s))
	if err != nil {
		return err
	}
	return sink.Print(data)
}

// PrintAll prints scans in order, one label at a time, waiting for each
// write before starting the next. It stops at the first failure and
// returns a *PrintError; the remaining scans are left for the caller to
// retry.
func PrintAll(scans []Scan, sink Sink) (Result, error) {
	res := Result{Total: len(scans)}
	if len(scans) == 0 {
		return res, ErrNothingToPrint
	}

	for i, s := range scans {
		if err := PrintOne(s, sink); err != nil {
			return res, &PrintError{Index: i, Total: len(scans), Code: s.Code, Err: err}
		}
		res.Printed++
	}
	return res, nil
}

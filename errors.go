package clashreport

import "fmt"

// InputError means the source XML could not be opened at all.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ParseError means the XML was malformed, or contained no clash results in
// either supported layout.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing clash XML: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError means the rendered report could not be written to its
// destination. The file at Path must not be trusted afterwards.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

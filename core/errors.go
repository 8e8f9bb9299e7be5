package core

import "fmt"

// ParseError reports markup that could not be turned into a document tree.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing HTML: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TableNotFoundError reports that no table matched a required selector.
type TableNotFoundError struct {
	Name     string
	Selector string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found (selector %q)", e.Name, e.Selector)
}

// IOError reports a failure writing output.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

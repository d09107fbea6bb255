package driver

import "fmt"

// IOError is returned when an input file cannot be read.
// Nothing is lexed after it.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

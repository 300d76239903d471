package types

import "fmt"

/*
Error taxonomy shared by the geometry, reader and writer packages.

ConfigurationError - invalid construction parameters or mismatched
boundary specifications. FileFormatError - a mesh file that is missing,
unreadable or structurally invalid. FieldCountError - solution data
inconsistent with the requested output field names.

All of them are returned, never recovered internally; callers test with
errors.As.
*/

// ConfigurationError reports invalid construction parameters.
type ConfigurationError struct {
	Reason string
}

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// FileFormatError reports a mesh file that could not be parsed as a
// supported format. Err carries the underlying cause when there is one.
type FileFormatError struct {
	File   string
	Reason string
	Err    error
}

func NewFileFormatError(file, format string, args ...interface{}) *FileFormatError {
	return &FileFormatError{File: file, Reason: fmt.Sprintf(format, args...)}
}

func WrapFileFormatError(file string, err error) *FileFormatError {
	return &FileFormatError{File: file, Reason: err.Error(), Err: err}
}

func (e *FileFormatError) Error() string {
	return fmt.Sprintf("mesh file %s: %s", e.File, e.Reason)
}

func (e *FileFormatError) Unwrap() error { return e.Err }

// FieldCountError reports a mismatch between the number of solution
// columns and the number of supplied field names. It is raised before
// any file I/O so that no partial output is ever produced.
type FieldCountError struct {
	Columns int
	Names   int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("solution/field-name count mismatch: %d solution columns, %d data names",
		e.Columns, e.Names)
}

package main

import "fmt"

// Exit statuses. Every error is fatal and maps to exitFailure.
const (
	exitOK      = 0
	exitFailure = 1
)

// ArgumentError reports an invalid flag, flag value or stray argument
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return e.Err.Error()
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// FileOpenError reports a zone file that could not be opened
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("failed to open zone file %q: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error {
	return e.Err
}

// EmptyDomainSetError is returned when a zone file holds no NS records
type EmptyDomainSetError struct {
	Path string
}

func (e *EmptyDomainSetError) Error() string {
	return fmt.Sprintf("No domains found in '%s'", e.Path)
}

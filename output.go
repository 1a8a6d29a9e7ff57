package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// OutputHandler writes query lines to stdout or to a file
type OutputHandler struct {
	file   *os.File
	writer *bufio.Writer
}

// NewOutputHandler creates an output handler. An empty filename writes to
// stdout.
func NewOutputHandler(filename string, stdout io.Writer) (*OutputHandler, error) {
	handler := &OutputHandler{}

	if filename == "" {
		handler.writer = bufio.NewWriter(stdout)
		return handler, nil
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	handler.file = file
	handler.writer = bufio.NewWriter(file)

	return handler, nil
}

// WriteQuery writes one query line
func (o *OutputHandler) WriteQuery(query Query) error {
	if _, err := o.writer.WriteString(query.String() + "\n"); err != nil {
		return fmt.Errorf("failed to write query: %w", err)
	}
	return nil
}

// Flush writes any buffered lines
func (o *OutputHandler) Flush() error {
	return o.writer.Flush()
}

// Close flushes pending output and closes the output file, if any
func (o *OutputHandler) Close() error {
	err := o.writer.Flush()

	if o.file != nil {
		if cerr := o.file.Close(); err == nil {
			err = cerr
		}
	}

	return err
}

package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDocument   = errors.New("document is empty")
	ErrDocumentTimeout = errors.New("document processing timed out")
)

// DocumentProcessingError marks a single document that could not be opened or decoded.
// It never aborts a batch.
type DocumentProcessingError struct {
	Name string
	Err  error
}

func (e *DocumentProcessingError) Error() string {
	return fmt.Sprintf("failed to process %s: %v", e.Name, e.Err)
}

func (e *DocumentProcessingError) Unwrap() error {
	return e.Err
}

package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotOwned is returned by update/delete when no listing with the given id belongs to the requester.
	ErrNotOwned = errors.New("listing not found or not owned by requester")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("database operation failed")
	// ErrUpload matches every *UploadError.
	ErrUpload = errors.New("image upload failed")
	// ErrObjectExists is returned when an upload would overwrite an existing object.
	ErrObjectExists = errors.New("object already exists")
	// ErrMalformedClassification matches every *ClassificationError.
	ErrMalformedClassification = errors.New("malformed classifier response")
	// ErrCacheMiss is returned by a cache when the key is absent.
	ErrCacheMiss = errors.New("key not found in cache")
	// ErrClassifierUnavailable covers transport failures and timeouts talking to the classifier.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)

// StorageError is what the storage gateway returns for any failed collection operation.
// It keeps the driver message as text but does not expose the driver error itself.
type StorageError struct {
	Collection string
	Op         string
	Message    string
}

func (e *StorageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("database operation failed on %s (%s): %s", e.Collection, e.Op, e.Message)
	}
	return fmt.Sprintf("database operation failed on %s: %s", e.Collection, e.Message)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// UploadStage names where an image upload failed.
type UploadStage string

const (
	UploadStageDecode UploadStage = "decode"
	UploadStageStat   UploadStage = "stat"
	UploadStagePut    UploadStage = "put"
)

type UploadError struct {
	Stage UploadStage
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed at %s: %v", e.Stage, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Is(target error) bool { return target == ErrUpload }

// ClassificationError carries the raw classifier text that could not be turned into a Classification.
type ClassificationError struct {
	Reason string
	Raw    string
}

func (e *ClassificationError) Error() string {
	return "malformed classifier response: " + e.Reason
}

func (e *ClassificationError) Is(target error) bool { return target == ErrMalformedClassification }

// FieldError is a single rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError lists every rejected field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid input data: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Add records a rejected field.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns e when at least one field was rejected, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

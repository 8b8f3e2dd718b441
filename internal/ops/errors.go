package ops

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCorrupt marks a durable catalog entry that could not be decoded.
var ErrCorrupt = errors.New("catalog data is corrupt")

// ErrStaleSubmission is returned when a submission was overtaken by a newer
// Submit, BeginEdit or Clear while its image was being decoded. The
// decoded image is discarded and nothing is saved.
var ErrStaleSubmission = errors.New("submission superseded while the image was decoding")

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string // "name", "description", "price", "category" or "image"
	Message string
}

// ValidationError lists every invalid field of a rejected submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("invalid %s: %s", f.Field, f.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field is among the invalid fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// DecodeError indicates the selected image could not be decoded.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot use image %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PersistError indicates the durable write failed. The in-memory change
// that preceded it still stands.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("changes kept in memory but not saved (%s): %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// LoadError indicates the durable entry could not be read or decoded; the
// store continues with an empty catalog.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("saved catalog ignored: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsPersistError reports whether err is (or wraps) a *PersistError.
func IsPersistError(err error) bool {
	var perr *PersistError
	return errors.As(err, &perr)
}

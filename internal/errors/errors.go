// internal/errors/errors.go
package appErrors

import "fmt"

// ErrModelArtifact means the classifier artifact could not be loaded.
type ErrModelArtifact struct {
	Path string
	Err  error
}

func (e *ErrModelArtifact) Error() string {
	return fmt.Sprintf("model artifact %s: %v", e.Path, e.Err)
}

func (e *ErrModelArtifact) Unwrap() error {
	return e.Err
}

// Helper constructor
func NewModelArtifact(path string, err error) error {
	return &ErrModelArtifact{Path: path, Err: err}
}

// ErrMissingValue is returned when a numeric field is still unset at prediction time.
type ErrMissingValue struct {
	Column string
}

func (e *ErrMissingValue) Error() string {
	return fmt.Sprintf("%s is required before predicting", e.Column)
}

func NewMissingValue(column string) error {
	return &ErrMissingValue{Column: column}
}

// ErrInvalidField is returned when a submitted value is outside its field's domain.
type ErrInvalidField struct {
	Column string
	Value  string
}

func (e *ErrInvalidField) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.Value, e.Column)
}

func NewInvalidField(column, value string) error {
	return &ErrInvalidField{Column: column, Value: value}
}

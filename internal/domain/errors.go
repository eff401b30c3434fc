package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports an id that is absent from an already-fetched collection.
// It is deterministic: retrying the same lookup returns the same error.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "entity"
	}
	return fmt.Sprintf("%s with id %s not found", kind, e.ID)
}

// NewNotFound builds a NotFoundError for the given kind and id.
func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// AsNotFound unwraps err into a NotFoundError when possible.
func AsNotFound(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := AsNotFound(err)
	return ok
}

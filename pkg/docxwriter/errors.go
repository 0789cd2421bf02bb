package docxwriter

import (
	"errors"
	"fmt"
)

// InputError reports missing or invalid input. It is returned before any
// content is rendered.
type InputError struct {
	Path    string
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	} else if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}

	switch {
	case e.Path != "" && e.Field != "":
		return fmt.Sprintf("input error in '%s' field %q: %s", e.Path, e.Field, msg)
	case e.Path != "":
		return fmt.Sprintf("input error in '%s': %s", e.Path, msg)
	case e.Field != "":
		return fmt.Sprintf("input error in field %q: %s", e.Field, msg)
	}
	return fmt.Sprintf("input error: %s", msg)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// NewInputError creates a new input error for a field
func NewInputError(field, message string) error {
	return &InputError{
		Field:   field,
		Message: message,
	}
}

// RenderError reports a content node that could not be rendered. The
// in-memory document it was rendered into must be discarded.
type RenderError struct {
	// Key is the content key (section heading) being processed
	Key string
	// Kind is the node kind, e.g. "table" or "image"
	Kind string
	// Path is the file involved, if any
	Path    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	where := "render error"
	if e.Kind != "" {
		where = fmt.Sprintf("render error in %s", e.Kind)
	}
	if e.Key != "" {
		where = fmt.Sprintf("%s of %q", where, e.Key)
	}
	if e.Path != "" {
		where = fmt.Sprintf("%s ('%s')", where, e.Path)
	}

	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", where, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", where, e.Message)
	}
	return where
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new render error for a node kind
func NewRenderError(kind, message string) error {
	return &RenderError{
		Kind:    kind,
		Message: message,
	}
}

// withKey attaches the content key to a render error. Other errors are
// wrapped in a RenderError carrying the key.
func withKey(err error, key string) error {
	if err == nil {
		return nil
	}
	var re *RenderError
	if errors.As(err, &re) {
		if re.Key == "" {
			re.Key = key
		}
		return err
	}
	return &RenderError{Key: key, Cause: err}
}

// PersistenceError reports a failure to write the finished document. No
// partial file is left at Path.
type PersistenceError struct {
	Path  string
	Cause error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence error writing '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("persistence error writing '%s'", e.Path)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// IsInputError checks if an error is or wraps an input error
func IsInputError(err error) bool {
	var target *InputError
	return errors.As(err, &target)
}

// IsRenderError checks if an error is or wraps a render error
func IsRenderError(err error) bool {
	var target *RenderError
	return errors.As(err, &target)
}

// IsPersistenceError checks if an error is or wraps a persistence error
func IsPersistenceError(err error) bool {
	var target *PersistenceError
	return errors.As(err, &target)
}

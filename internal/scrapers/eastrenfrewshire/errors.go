package eastrenfrewshire

import (
	"errors"
	"fmt"
)

var ErrInvalidUPRN = errors.New("uprn must be a non-empty string of digits")

// TransportError is returned when one of the round-trips of the form
// workflow fails, either because no response was received or because the
// response had a non-2xx status.
type TransportError struct {
	Step string
	// Status is 0 when no response was received at all.
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: unexpected http status %d", e.Step, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormNotFoundError is returned when a fetched page does not contain the
// workflow form.
type FormNotFoundError struct {
	Step   string
	FormId string
}

func (e *FormNotFoundError) Error() string {
	return fmt.Sprintf("%s: could not find form #%s", e.Step, e.FormId)
}

// MissingTokenError is returned when the submission url of a form lacks one
// of the session correlation tokens.
type MissingTokenError struct {
	// Token is the name of the query parameter that was missing.
	Token string
}

func (e *MissingTokenError) Error() string {
	return fmt.Sprintf("form action is missing the '%s' token", e.Token)
}

// PayloadDecodeError is returned when the embedded collection payload is
// present but is not valid base64 encoded json.
type PayloadDecodeError struct {
	Err error
}

func (e *PayloadDecodeError) Error() string {
	return fmt.Sprintf("decode collection payload: %s", e.Err.Error())
}

func (e *PayloadDecodeError) Unwrap() error {
	return e.Err
}

// SchemaError is returned when the decoded payload does not have the shape
// of a collection schedule.
type SchemaError struct {
	// Path is the dotted path of the offending key (ex.
	// "residualWasteResponse.value").
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("collection payload is missing '%s'", e.Path)
	}
	return fmt.Sprintf("collection payload has invalid '%s': %s", e.Path, e.Err.Error())
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

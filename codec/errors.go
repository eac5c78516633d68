package codec

import (
	"errors"

	"github.com/lcx/levelsync/buffer"
)

var (
	// ErrUnexpectedEOF is the cause of every decode failure on truncated input.
	ErrUnexpectedEOF = buffer.ErrEndOfBuffer
	// ErrInvalidUTF8 is returned when bytes that should be text are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("codec: invalid utf-8 text")
	// ErrInvalidValue is returned for out-of-range or malformed field values.
	ErrInvalidValue = errors.New("codec: invalid value")
)

// DecodeError records which field failed to decode and why.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return "decode " + e.Field + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Wrap attaches the field name to a decode failure. Nested failures keep the full
// path, e.g. "RoomInfo.settings.reserved". A nil err stays nil.
func Wrap(field string, err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Field: field + "." + de.Field, Err: de.Err}
	}
	return &DecodeError{Field: field, Err: err}
}

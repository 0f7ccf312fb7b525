package js

import (
	"errors"
	"fmt"
)

// Reason classifies an Err. Error reasons are enumerated here to be used
// in the Err struct, the error type shared across all sabajs APIs.
type Reason int

const (
	ErrUnknown Reason = iota
	// parse time
	ErrUnexpectedToken
	ErrUnexpectedEnd
	// evaluation time
	ErrUnboundIdentifier
	ErrTypeMismatch
	ErrUnsupported
	ErrNumericOverflow

	ErrSystem Reason = 40
)

func (r Reason) String() string {
	switch r {
	case ErrUnexpectedToken, ErrUnexpectedEnd:
		return "syntax error"
	case ErrUnboundIdentifier:
		return "reference error"
	case ErrTypeMismatch:
		return "type error"
	case ErrUnsupported:
		return "unsupported"
	case ErrNumericOverflow:
		return "range error"
	case ErrSystem:
		return "system error"
	default:
		return "error"
	}
}

// Err is returned by the parser and the runtime for every recoverable
// failure. Position is the zero Position when the failure has no source
// location, e.g. for hand-built nodes.
type Err struct {
	reason  Reason
	message string
	pos     Position
}

func errorf(reason Reason, pos Position, format string, args ...interface{}) Err {
	return Err{
		reason:  reason,
		message: fmt.Sprintf(format, args...),
		pos:     pos,
	}
}

func (e Err) Error() string {
	if e.pos.IsValid() {
		return fmt.Sprintf("%s [%s]", e.message, e.pos)
	}
	return e.message
}

func (e Err) Reason() Reason {
	return e.reason
}

func (e Err) Message() string {
	return e.message
}

func (e Err) Position() Position {
	return e.pos
}

// Is matches any Err of the same reason, so callers can test
// errors.Is(err, js.Err{}.WithReason(js.ErrTypeMismatch)).
func (e Err) Is(target error) bool {
	t, ok := target.(Err)
	return ok && t.reason == e.reason
}

// WithReason returns a copy of e carrying reason r.
func (e Err) WithReason(r Reason) Err {
	e.reason = r
	return e
}

// ReasonOf reports the Reason of the first Err in err's chain,
// or ErrUnknown if there is none.
func ReasonOf(err error) Reason {
	var e Err
	if errors.As(err, &e) {
		return e.reason
	}
	return ErrUnknown
}

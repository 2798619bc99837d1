package shellsup

import (
	"errors"
	"fmt"
)

// Kind is a dispatcher-facing error category (spec.md §7).
type Kind string

const (
	KindBadArguments   Kind = "BadArguments"
	KindDuplicateLabel Kind = "DuplicateLabel"
	KindNotFound       Kind = "NotFound"
	KindWrongState     Kind = "WrongState"
	KindPtyClosed      Kind = "PtyClosed"
	KindInternal       Kind = "Internal"
)

// Error is a typed supervisor failure. The dispatcher copies Kind directly
// into an isError result envelope without string-sniffing the message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsError reports whether err is (or wraps) a *Error, returning it if so.
func AsError(err error) (*Error, bool) {
	var se *Error
	ok := errors.As(err, &se)
	return se, ok
}

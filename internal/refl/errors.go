package refl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/dynrefl/internal/registry"
)

var (
	// ErrTypeMismatch is returned when a value's descriptor is not the one an
	// operation requires.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrArityMismatch is returned when a call supplies the wrong number of
	// arguments.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrMemberNotFound is returned when a name or index does not resolve.
	ErrMemberNotFound = errors.New("member not found")
	// ErrUnsupportedOperation is returned when a container kind lacks the
	// requested operation.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrConstViolation is returned when mutation is attempted through a
	// const reference.
	ErrConstViolation = errors.New("cannot modify const reference")
	// ErrCapabilityMissing is returned when the erased type lacks a value
	// operation (copy, move or destroy).
	ErrCapabilityMissing = errors.New("capability missing")
	ErrEmpty             = errors.New("empty value")
	ErrOutOfRange        = errors.New("index out of range")
	ErrKeyNotFound       = errors.New("key not found")
	// ErrDuplicateType is returned when a name is already bound in the
	// registry. The first binding is kept.
	ErrDuplicateType = registry.ErrDuplicate
)

// Error describes a failed operation on a descriptor or value. It wraps one
// of the package sentinels, or the error returned by an invoked method.
type Error struct {
	Op     string
	Type   string
	Member string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("refl: ")
	b.WriteString(e.Op)
	if e.Type != "" {
		b.WriteString(" ")
		b.WriteString(e.Type)
		if e.Member != "" {
			b.WriteString(".")
			b.WriteString(e.Member)
		}
	} else if e.Member != "" {
		b.WriteString(" ")
		b.WriteString(e.Member)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error for op on t (which may be nil). The format and
// args, if any, become the detail text.
func Errorf(op string, t *Type, member string, err error, format string, args ...any) error {
	e := &Error{Op: op, Member: member, Err: err}
	if t != nil {
		e.Type = t.Name()
	}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

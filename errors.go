package hashsig

import (
	"fmt"

	"github.com/hashicorp/errwrap"
)

// Error is the interface satisfied by every error this package
// returns. Locked reports whether the error is, or wraps, a condition
// this package detected itself: a parameter violation or exhaustion
// (§7: fatal, not I/O), or malformed input. Inner exposes a wrapped
// cause, if any.
type Error interface {
	error
	Locked() bool
	Inner() error
}

type errorImpl struct {
	msg    string
	locked bool
	inner  error
}

func (err *errorImpl) Locked() bool { return err.locked }
func (err *errorImpl) Inner() error { return err.inner }

func (err *errorImpl) Error() string {
	if err.inner != nil {
		return errwrap.Wrapf(err.msg+": {{err}}", err.inner).Error()
	}
	return err.msg
}

// errorf formats a new Locked Error: a parameter violation or
// exhaustion condition per §7, or malformed input.
func errorf(format string, a ...interface{}) *errorImpl {
	return &errorImpl{msg: fmt.Sprintf(format, a...), locked: true}
}

// wrapErrorf formats a new Error wrapping another. It is Locked iff
// the wrapped error is a Locked Error.
func wrapErrorf(err error, format string, a ...interface{}) *errorImpl {
	locked := false
	if e, ok := err.(Error); ok {
		locked = e.Locked()
	}
	return &errorImpl{msg: fmt.Sprintf(format, a...), locked: locked, inner: err}
}

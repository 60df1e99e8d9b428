package imagecraft

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrImageDestroyed is returned by any operation invoked on an Image after
// Destroy has released its frame buffers.
var ErrImageDestroyed = errors.New("imagecraft: image has been destroyed")

// ResolutionError reports that an operation kind has no handler registered
// for the active driver. It indicates a programming error in the driver's
// registry wiring, or an operation descriptor the driver has never heard of.
type ResolutionError struct {
	Driver string
	Kind   Kind
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("imagecraft: driver %q cannot resolve operation %q", e.Driver, e.Kind)
}

// NotSupportedError reports that a capability is unavailable in the current
// driver/runtime combination, independent of whether a handler type exists.
type NotSupportedError struct {
	Driver     string
	Capability string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("imagecraft: driver %q does not support %s", e.Driver, e.Capability)
}

// NotReadableError reports input bytes or embedded metadata that could not
// be parsed or decoded.
type NotReadableError struct {
	Reason string
	Err    error
}

func (e *NotReadableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("imagecraft: not readable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("imagecraft: not readable: %s", e.Reason)
}

func (e *NotReadableError) Unwrap() error { return e.Err }

// OperationError wraps a failure reported by the underlying backend call,
// naming the operation that failed.
type OperationError struct {
	Kind Kind
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("imagecraft: operation %q failed: %v", e.Kind, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// ProfileError reports a color-profile failure, distinct from generic
// modification failures.
type ProfileError struct {
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("imagecraft: color profile: %s", e.Reason)
}

// IsNotSupported reports whether err is a NotSupportedError.
func IsNotSupported(err error) bool {
	var target *NotSupportedError
	return errors.As(err, &target)
}

// IsNotReadable reports whether err is a NotReadableError.
func IsNotReadable(err error) bool {
	var target *NotReadableError
	return errors.As(err, &target)
}

// IsResolution reports whether err is a ResolutionError.
func IsResolution(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

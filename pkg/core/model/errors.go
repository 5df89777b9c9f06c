package model

import (
	"errors"
	"fmt"
)

// The generator distinguishes two failure classes so callers know whether the
// fix is "edit your inputs" or "file a defect".
var (
	// ErrConfig marks user-correctable configuration errors: unknown item
	// kinds, duplicate names, missing scenario coverage.
	ErrConfig = errors.New("configuration error")

	// ErrInternal marks invariant violations inside the generator, such as a
	// forward-reference placeholder that was never patched.
	ErrInternal = errors.New("internal defect")
)

// ConfigErrorf wraps ErrConfig with a formatted message.
func ConfigErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// InternalErrorf wraps ErrInternal with a formatted message.
func InternalErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}

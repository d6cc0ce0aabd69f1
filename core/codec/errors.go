package codec

import (
	"fmt"
)

// index/CorruptIndexException.java

/*
Signals that a file is unreadable: bytes are missing, a header or
footer does not match, or a decoded value is out of range. The
resource describes where the corruption was detected so the root
cause can be diagnosed.
*/
type CorruptIndexError struct {
	Message  string
	Resource string
	Cause    error
}

func NewCorruptIndexError(message string, resource interface{}) *CorruptIndexError {
	return &CorruptIndexError{Message: message, Resource: fmt.Sprintf("%v", resource)}
}

func NewCorruptIndexErrorWithCause(message string, resource interface{}, cause error) *CorruptIndexError {
	return &CorruptIndexError{
		Message:  message,
		Resource: fmt.Sprintf("%v", resource),
		Cause:    cause,
	}
}

func (e *CorruptIndexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v (resource=%v): %v", e.Message, e.Resource, e.Cause)
	}
	return fmt.Sprintf("%v (resource=%v)", e.Message, e.Resource)
}

func (e *CorruptIndexError) Unwrap() error {
	return e.Cause
}

/* Returns true if err or any error it wraps is a CorruptIndexError. */
func IsCorrupt(err error) bool {
	for err != nil {
		if _, ok := err.(*CorruptIndexError); ok {
			return true
		}
		cause, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = cause.Unwrap()
	}
	return false
}

// index/IndexFormatTooOldException.java
// index/IndexFormatTooNewException.java

func NewIndexFormatTooOldError(resource interface{}, version, minVersion, maxVersion int32) error {
	return &CorruptIndexError{
		Message: fmt.Sprintf(
			"Format version is not supported: %v (needs to be between %v and %v). This version of the library only supports newer segments",
			version, minVersion, maxVersion),
		Resource: fmt.Sprintf("%v", resource),
	}
}

func NewIndexFormatTooNewError(resource interface{}, version, minVersion, maxVersion int32) error {
	return &CorruptIndexError{
		Message: fmt.Sprintf(
			"Format version is not supported: %v (needs to be between %v and %v)",
			version, minVersion, maxVersion),
		Resource: fmt.Sprintf("%v", resource),
	}
}

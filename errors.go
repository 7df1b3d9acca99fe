package vecbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfBounds is returned when an index is 0 or its magnitude
	// exceeds the length.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrNegativeSize is returned when a requested length is negative.
	ErrNegativeSize = errors.New("negative size")

	// ErrAllocationFailure is returned when the backend cannot obtain memory.
	ErrAllocationFailure = errors.New("allocation failure")

	// ErrTypeMismatch is returned when a value cannot be stored in the
	// element type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrEmpty is returned when removing from an empty vector.
	ErrEmpty = errors.New("vector is empty")

	// ErrEmptyPop is returned by Pop on an empty vector.
	ErrEmptyPop = fmt.Errorf("pop: %w", ErrEmpty)

	// ErrEmptyShift is returned by Shift on an empty vector.
	ErrEmptyShift = fmt.Errorf("shift: %w", ErrEmpty)

	// ErrUnknownType is returned when decoding a native vector whose element
	// type has no fixed width.
	ErrUnknownType = errors.New("unknown element type")

	// ErrCorrupt is returned for malformed binary data.
	ErrCorrupt = errors.New("corrupt vector encoding")

	// ErrChecksum is returned when the encoded checksum does not match.
	ErrChecksum = errors.New("vector checksum mismatch")
)

// IndexError reports an out-of-bounds index.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of bounds for length %d", e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfBounds }

// SizeError reports a negative requested length.
type SizeError struct {
	Size int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("negative size: %d", e.Size)
}

func (e *SizeError) Unwrap() error { return ErrNegativeSize }

// AllocationError reports a failed reallocation.
//
// The underlying allocator or budget error can be reached via errors.Is.
type AllocationError struct {
	Bytes int
	cause error
}

func (e *AllocationError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("allocation failure: %d bytes", e.Bytes)
	}
	return fmt.Sprintf("allocation failure: %d bytes: %v", e.Bytes, e.cause)
}

func (e *AllocationError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrAllocationFailure}
	}
	return []error{ErrAllocationFailure, e.cause}
}

// TypeMismatchError reports a value that does not fit the element type.
type TypeMismatchError struct {
	ElementType string
	Value       any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: cannot store %T value %v in %s vector", e.Value, e.Value, e.ElementType)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

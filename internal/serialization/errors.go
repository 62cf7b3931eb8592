package serialization

import "errors"

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrTooManyTensors     = errors.New("too many tensors in file")
	ErrTensorNotFound     = errors.New("tensor not found")
	ErrOutOfBounds        = errors.New("tensor extends beyond data section")
	ErrNegativeOffset     = errors.New("negative offset or size")
	ErrSizeMismatch       = errors.New("tensor size does not match dtype and shape")
	ErrUnknownDType       = errors.New("unknown tensor dtype")
	ErrWriterClosed       = errors.New("writer is closed")
)

package heap

import "github.com/pkg/errors"

var (
	// ErrOutOfSpace is returned when a request exceeds the free space of the heap.
	ErrOutOfSpace = errors.New("out of space")

	// ErrFragmented is returned when enough bytes are free in total but neither
	// a free block nor the tail of the arena can hold the request.
	ErrFragmented = errors.WithMessage(ErrOutOfSpace, "free space is fragmented")

	// ErrUnknownPointer is returned when an offset does not start a used block.
	ErrUnknownPointer = errors.New("unknown pointer")

	ErrInvalidSize     = errors.New("size must be positive")
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	ErrBlockOverflow   = errors.New("data does not fit into block")
)

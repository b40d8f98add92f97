// Package heap simulates a heap allocator over a fixed-size byte arena.
//
// The arena is described by a directory of blocks kept in address order. Blocks
// are contiguous from offset 0; the bytes after the last block form the tail,
// which is free space that has never been handed out. Freed blocks stay in the
// directory as holes until Compact moves the used blocks together.
//
// A Heap is not safe for concurrent use.
package heap

import (
	"go-memmanage/pkg/list"
	"go-memmanage/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Heap struct {
	arena     []byte
	capacity  int
	freeSpace int
	blocks    *list.List[Block]
	opts      Options
	observer  Observer
	log       logrus.FieldLogger
}

// New creates a heap with a zeroed arena of capacity bytes.
func New(capacity int, opts *Options) (*Heap, error) {
	if capacity < 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}
	if opts == nil {
		opts = &DefaultOptions
	}

	h := &Heap{
		arena:     make([]byte, capacity),
		capacity:  capacity,
		freeSpace: capacity,
		blocks:    list.New[Block](16),
		opts:      *opts,
		observer:  opts.Observer,
		log:       opts.Logger,
	}
	if h.observer == nil {
		h.observer = NoopObserver{}
	}
	if h.log == nil {
		h.log = logger.L
	}

	h.observer.OnState(h.freeSpace, h.capacity, 0)
	return h, nil
}

// Available returns the number of free bytes.
func (h *Heap) Available() int {
	return h.freeSpace
}

// Capacity returns the size of the arena.
func (h *Heap) Capacity() int {
	return h.capacity
}

// Used returns the number of bytes held by used blocks.
func (h *Heap) Used() int {
	return h.capacity - h.freeSpace
}

// Blocks returns a snapshot of the directory in address order.
func (h *Heap) Blocks() []Block {
	return h.blocks.Items()
}

// Read returns a copy of the bytes of the used block starting at ptr.
func (h *Heap) Read(ptr int) ([]byte, error) {
	b, ok := h.blocks.Search(usedAt(ptr))
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPointer, "read %d", ptr)
	}

	buf := make([]byte, b.Length)
	copy(buf, h.arena[b.Offset:b.End()])
	return buf, nil
}

// Write copies data to the start of the used block at ptr.
func (h *Heap) Write(ptr int, data []byte) error {
	b, ok := h.blocks.Search(usedAt(ptr))
	if !ok {
		return errors.Wrapf(ErrUnknownPointer, "write %d", ptr)
	}
	if len(data) > b.Length {
		return errors.Wrapf(ErrBlockOverflow, "write %d bytes to block of %d", len(data), b.Length)
	}

	copy(h.arena[b.Offset:b.End()], data)
	return nil
}

// Clone returns a deep copy of h sharing nothing but the options.
func (h *Heap) Clone() *Heap {
	cp := &Heap{
		opts:     h.opts,
		observer: h.observer,
		log:      h.log,
	}
	cp.CopyFrom(h)
	return cp
}

// CopyFrom replaces the contents of h with a deep copy of src. The options of
// h are kept.
func (h *Heap) CopyFrom(src *Heap) {
	if h == src {
		return
	}

	h.capacity = src.capacity
	h.freeSpace = src.freeSpace
	h.arena = make([]byte, src.capacity)
	copy(h.arena, src.arena)
	h.blocks = src.blocks.Clone()
	h.rebase()
	h.notify()
}

// rebase recomputes every offset as the running sum of the preceding lengths.
func (h *Heap) rebase() {
	offset := 0
	h.blocks.Scan(func(_ int, b *Block) bool {
		b.Offset = offset
		offset += b.Length
		return false
	})
}

func (h *Heap) tail() int {
	last, ok := h.blocks.Back()
	if !ok {
		return 0
	}
	return last.End()
}

func (h *Heap) notify() {
	h.observer.OnState(h.freeSpace, h.capacity, h.blocks.Len())
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

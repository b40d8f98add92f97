package heap

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Allocate reserves size bytes and returns the offset of the new block. The
// first free block large enough is used and split when it is larger than
// needed; without one the block is appended after the last block.
func (h *Heap) Allocate(size int) (int, error) {
	ptr, err := h.allocate(size, h.opts.AutoCompact)
	h.observer.OnAlloc(size, err)
	h.notify()
	return ptr, err
}

func (h *Heap) allocate(size int, compact bool) (int, error) {
	if size <= 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "allocate %d bytes", size)
	}
	if size > h.freeSpace {
		return 0, errors.Wrapf(ErrOutOfSpace, "allocate %d bytes, %d available", size, h.freeSpace)
	}

	ptr, err := h.alloc(size)
	if errors.Is(err, ErrFragmented) && compact {
		h.log.WithFields(logrus.Fields{
			"size":      size,
			"available": h.freeSpace,
		}).Debug("compacting fragmented heap before allocation")
		h.Compact()
		ptr, err = h.alloc(size)
	}
	return ptr, err
}

func (h *Heap) alloc(size int) (int, error) {
	if h.blocks.IsEmpty() {
		h.blocks.InsertLast(Block{Offset: 0, Length: size, Used: true})
		h.freeSpace -= size
		return 0, nil
	}

	i := h.blocks.Index(unusedAtLeast(size))
	if i < 0 {
		tail := h.tail()
		if tail+size > h.capacity {
			return 0, errors.Wrapf(ErrFragmented, "allocate %d bytes, %d at tail", size, h.capacity-tail)
		}
		h.blocks.InsertLast(Block{Offset: tail, Length: size, Used: true})
		h.freeSpace -= size
		return tail, nil
	}

	b := h.blocks.At(i)
	b.Used = true
	ptr := b.Offset
	if b.Length > size {
		rest := Block{Offset: ptr + size, Length: b.Length - size}
		b.Length = size
		h.blocks.InsertAfter(at(ptr), rest)
	}

	h.freeSpace -= size
	return ptr, nil
}

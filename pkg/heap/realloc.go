package heap

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reallocate resizes the used block at ptr and returns its offset afterwards.
//
// Shrinking splits off a free block after the resized one. Growing extends
// the block in place when it is the last one, takes the bytes from the front
// of a larger free neighbour, or otherwise moves the contents to a newly
// allocated block and frees the old one. The returned offset must replace ptr.
func (h *Heap) Reallocate(ptr, newSize int) (int, error) {
	newPtr, moved, err := h.reallocate(ptr, newSize)
	h.observer.OnRealloc(ptr, newPtr, moved, err)
	h.notify()
	return newPtr, err
}

func (h *Heap) reallocate(ptr, newSize int) (int, bool, error) {
	if newSize <= 0 {
		return 0, false, errors.Wrapf(ErrInvalidSize, "reallocate %d to %d bytes", ptr, newSize)
	}

	i := h.blocks.Index(usedAt(ptr))
	if i < 0 {
		return 0, false, errors.Wrapf(ErrUnknownPointer, "reallocate %d", ptr)
	}

	b := h.blocks.At(i)
	switch {
	case newSize == b.Length:
		return ptr, false, nil
	case newSize < b.Length:
		h.shrink(i, newSize)
		return ptr, false, nil
	}

	if delta := newSize - b.Length; h.freeSpace < delta {
		return 0, false, errors.Wrapf(ErrOutOfSpace, "grow %d by %d bytes, %d available", ptr, delta, h.freeSpace)
	}
	return h.grow(i, newSize, h.opts.AutoCompact)
}

func (h *Heap) shrink(i, newSize int) {
	b := h.blocks.At(i)
	rest := Block{Offset: b.Offset + newSize, Length: b.Length - newSize}
	zero(h.arena[rest.Offset:rest.End()])
	b.Length = newSize
	h.freeSpace += rest.Length
	h.blocks.InsertAfter(at(b.Offset), rest)
}

func (h *Heap) grow(i, newSize int, compact bool) (int, bool, error) {
	b := h.blocks.At(i)
	delta := newSize - b.Length

	if i == h.blocks.Len()-1 {
		if b.End()+delta <= h.capacity {
			b.Length = newSize
			h.freeSpace -= delta
			return b.Offset, false, nil
		}
		if compact {
			return h.compactAndGrow(b.Offset, newSize)
		}
	} else if next := h.blocks.At(i + 1); !next.Used && next.Length > delta {
		next.Offset += delta
		next.Length -= delta
		b.Length = newSize
		h.freeSpace -= delta
		return b.Offset, false, nil
	}

	old := *b
	ptr, err := h.allocate(newSize, false)
	if errors.Is(err, ErrFragmented) && compact {
		return h.compactAndGrow(old.Offset, newSize)
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, "relocate %d", old.Offset)
	}

	copy(h.arena[ptr:ptr+old.Length], h.arena[old.Offset:old.End()])
	h.free(h.blocks.Index(usedAt(old.Offset)))

	h.log.WithFields(logrus.Fields{
		"from": old.Offset,
		"to":   ptr,
		"size": newSize,
	}).Debug("relocated block")
	return ptr, true, nil
}

func (h *Heap) compactAndGrow(ptr, newSize int) (int, bool, error) {
	rank := h.usedRank(ptr)
	h.log.WithFields(logrus.Fields{
		"ptr":  ptr,
		"size": newSize,
	}).Debug("compacting fragmented heap before reallocation")
	h.Compact()

	newPtr, _, err := h.grow(rank, newSize, false)
	if err != nil {
		return 0, false, err
	}
	return newPtr, newPtr != ptr, nil
}

// usedRank returns the number of used blocks before offset, which is the
// index of that block once Compact has removed every free block.
func (h *Heap) usedRank(offset int) int {
	rank := 0
	h.blocks.Scan(func(_ int, b *Block) bool {
		if b.Offset == offset {
			return true
		}
		if b.Used {
			rank++
		}
		return false
	})
	return rank
}

package heap

import "github.com/sirupsen/logrus"

// Compact moves every used block towards offset 0 so that all free space ends
// up at the tail. Content and order of the used blocks are preserved and the
// free blocks disappear from the directory.
func (h *Heap) Compact() {
	shift, moved := 0, 0
	h.blocks.Scan(func(_ int, b *Block) bool {
		if !b.Used {
			shift += b.Length
			return false
		}
		if shift > 0 {
			from := b.Offset
			h.move(b, shift)
			moved++
			if h.opts.OnMove != nil {
				h.opts.OnMove(from, b.Offset)
			}
		}
		return false
	})
	h.blocks.DeleteAll(unused)

	h.log.WithFields(logrus.Fields{
		"moved":     moved,
		"reclaimed": shift,
		"available": h.freeSpace,
	}).Debug("compacted heap")
	h.observer.OnCompact(moved, shift)
	h.notify()
}

// move shifts the bytes of b down by shift and zeroes what is left behind.
func (h *Heap) move(b *Block, shift int) {
	from, to := b.Offset, b.Offset-shift
	copy(h.arena[to:to+b.Length], h.arena[from:b.End()])
	zero(h.arena[to+b.Length : b.End()])
	b.Offset = to
}

package heap

// Free releases the used block starting at ptr and zeroes its bytes. Unknown
// pointers are ignored. Neighbouring free blocks are not merged.
func (h *Heap) Free(ptr int) {
	i := h.blocks.Index(usedAt(ptr))
	if i < 0 {
		return
	}

	size := h.free(i)
	h.observer.OnFree(size)
	h.notify()
}

func (h *Heap) free(i int) int {
	b := h.blocks.At(i)
	zero(h.arena[b.Offset:b.End()])
	b.Used = false
	h.freeSpace += b.Length
	return b.Length
}

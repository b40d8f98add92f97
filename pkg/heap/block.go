package heap

import (
	"fmt"

	"go-memmanage/pkg/list"
)

// Block describes a contiguous span of the arena.
type Block struct {
	Offset int
	Length int
	Used   bool
}

// End returns the offset right after the block.
func (b Block) End() int {
	return b.Offset + b.Length
}

func (b Block) Format(f fmt.State, c rune) {
	f.Write([]byte(fmt.Sprintf("{offset:%d, length:%d, used:%t}", b.Offset, b.Length, b.Used)))
}

func usedAt(offset int) list.Predicate[Block] {
	return func(b Block) bool {
		return b.Used && b.Offset == offset
	}
}

func at(offset int) list.Predicate[Block] {
	return func(b Block) bool {
		return b.Offset == offset
	}
}

func unusedAtLeast(size int) list.Predicate[Block] {
	return func(b Block) bool {
		return !b.Used && b.Length >= size
	}
}

func unused(b Block) bool {
	return !b.Used
}

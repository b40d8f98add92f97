package executor

import (
	"go-memmanage/pkg/heap"
	"go-memmanage/util/stl"

	"github.com/pkg/errors"
)

type snapshot struct {
	heap  *heap.Heap
	names map[string]int
}

func (es *ExecutorService) compact() error {
	es.heap.Compact()
	return es.printf("compacted, %d available\n", es.heap.Available())
}

func (es *ExecutorService) dump() error {
	_, err := es.heap.WriteTo(es.out)
	return err
}

func (es *ExecutorService) avail() error {
	return es.printf("available %d of %d bytes\n", es.heap.Available(), es.heap.Capacity())
}

func (es *ExecutorService) blocks() error {
	for _, b := range es.heap.Blocks() {
		if err := es.printf("%v\n", b); err != nil {
			return err
		}
	}
	return nil
}

// save pushes a deep copy of the heap and the names pointing into it.
func (es *ExecutorService) save() error {
	es.snapshots.Push(&snapshot{
		heap:  es.heap.Clone(),
		names: copyNames(es.names),
	})
	return es.printf("saved, %d snapshots\n", es.snapshots.Len())
}

// restore pops the latest snapshot and copies it back into the heap.
func (es *ExecutorService) restore() error {
	snap, err := es.snapshots.Pop()
	if errors.Is(err, stl.ErrEmptyStack) {
		return ErrNothingSaved
	}

	es.heap.CopyFrom(snap.heap)
	es.names = snap.names
	return es.printf("restored, %d available\n", es.heap.Available())
}

func copyNames(names map[string]int) map[string]int {
	cp := make(map[string]int, len(names))
	for k, v := range names {
		cp[k] = v
	}
	return cp
}

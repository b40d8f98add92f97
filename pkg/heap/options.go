package heap

import (
	"github.com/sirupsen/logrus"
)

// MoveFunc is notified about every block compaction relocates.
type MoveFunc func(from, to int)

type Options struct {
	// AutoCompact compacts the heap once and retries when a request fails
	// only because free space is fragmented.
	AutoCompact bool
	// OnMove is called for each block moved by Compact.
	OnMove MoveFunc
	// Observer receives operation events, NoopObserver when nil.
	Observer Observer
	// Logger defaults to logger.L.
	Logger logrus.FieldLogger
}

var DefaultOptions = Options{
	AutoCompact: false,
}

// Observer receives heap events. Implementations must not call back into the heap.
type Observer interface {
	OnAlloc(size int, err error)
	OnFree(size int)
	OnRealloc(from, to int, moved bool, err error)
	OnCompact(moved, reclaimed int)
	OnState(available, capacity, blocks int)
}

type NoopObserver struct{}

func (NoopObserver) OnAlloc(int, error)              {}
func (NoopObserver) OnFree(int)                      {}
func (NoopObserver) OnRealloc(int, int, bool, error) {}
func (NoopObserver) OnCompact(int, int)              {}
func (NoopObserver) OnState(int, int, int)           {}

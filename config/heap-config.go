package config

type HeapConfig struct {
	// Capacity is the arena size in bytes.
	Capacity int
	// AutoCompact makes allocations compact the heap once when free space
	// is sufficient but too fragmented to serve a request.
	AutoCompact bool
}

func NewHeapConfig() *HeapConfig {
	return &HeapConfig{
		Capacity:    100,
		AutoCompact: false,
	}
}

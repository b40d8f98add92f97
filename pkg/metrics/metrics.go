// Package metrics exports heap events as prometheus metrics.
package metrics

import (
	"io"

	"go-memmanage/pkg/heap"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "memmanage"

var _ heap.Observer = (*Collector)(nil)

// Collector implements heap.Observer on top of prometheus counters and gauges.
type Collector struct {
	allocs      *prometheus.CounterVec
	allocBytes  prometheus.Counter
	frees       prometheus.Counter
	freedBytes  prometheus.Counter
	reallocs    *prometheus.CounterVec
	compactions prometheus.Counter
	movedBlocks prometheus.Counter
	reclaimed   prometheus.Counter
	available   prometheus.Gauge
	capacity    prometheus.Gauge
	blocks      prometheus.Gauge
}

// New creates a Collector and registers its metrics on reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		allocs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Allocate calls by result.",
		}, []string{"result"}),
		allocBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocated_bytes_total",
			Help:      "Bytes handed out by successful Allocate calls.",
		}),
		frees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frees_total",
			Help:      "Blocks released by Free.",
		}),
		freedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "freed_bytes_total",
			Help:      "Bytes released by Free.",
		}),
		reallocs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reallocations_total",
			Help:      "Reallocate calls by outcome.",
		}, []string{"result"}),
		compactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions_total",
			Help:      "Compaction passes.",
		}),
		movedBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compaction_moved_blocks_total",
			Help:      "Blocks moved by compaction.",
		}),
		reclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compaction_reclaimed_bytes_total",
			Help:      "Bytes of holes turned into tail space by compaction.",
		}),
		available: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "available_bytes",
			Help:      "Free bytes in the heap.",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity_bytes",
			Help:      "Size of the arena.",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocks",
			Help:      "Entries in the block directory.",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.allocs, c.allocBytes, c.frees, c.freedBytes, c.reallocs,
		c.compactions, c.movedBlocks, c.reclaimed,
		c.available, c.capacity, c.blocks,
	} {
		if err := reg.Register(m); err != nil {
			return nil, errors.Wrap(err, "failed to register heap metric")
		}
	}
	return c, nil
}

func (c *Collector) OnAlloc(size int, err error) {
	if err != nil {
		c.allocs.WithLabelValues(result(err)).Inc()
		return
	}
	c.allocs.WithLabelValues("ok").Inc()
	c.allocBytes.Add(float64(size))
}

func (c *Collector) OnFree(size int) {
	c.frees.Inc()
	c.freedBytes.Add(float64(size))
}

func (c *Collector) OnRealloc(from, to int, moved bool, err error) {
	switch {
	case err != nil:
		c.reallocs.WithLabelValues(result(err)).Inc()
	case moved:
		c.reallocs.WithLabelValues("moved").Inc()
	default:
		c.reallocs.WithLabelValues("in_place").Inc()
	}
}

func (c *Collector) OnCompact(moved, reclaimed int) {
	c.compactions.Inc()
	c.movedBlocks.Add(float64(moved))
	c.reclaimed.Add(float64(reclaimed))
}

func (c *Collector) OnState(available, capacity, blocks int) {
	c.available.Set(float64(available))
	c.capacity.Set(float64(capacity))
	c.blocks.Set(float64(blocks))
}

func result(err error) string {
	switch {
	case errors.Is(err, heap.ErrFragmented):
		return "fragmented"
	case errors.Is(err, heap.ErrOutOfSpace):
		return "out_of_space"
	case errors.Is(err, heap.ErrUnknownPointer):
		return "unknown_pointer"
	default:
		return "invalid"
	}
}

// WriteText writes everything g gathers in the prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "failed to write metric %s", mf.GetName())
		}
	}
	return nil
}

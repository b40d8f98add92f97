package heap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newHeap(t *testing.T, capacity int, opts *Options) *Heap {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}
	if opts.Logger == nil {
		log, _ := test.NewNullLogger()
		opts.Logger = log
	}

	h, err := New(capacity, opts)
	require.NoError(t, err)
	require.NotNil(t, h)
	return h
}

func mustAlloc(t *testing.T, h *Heap, data string) int {
	t.Helper()
	ptr, err := h.Allocate(len(data))
	require.NoError(t, err)
	require.NoError(t, h.Write(ptr, []byte(data)))
	return ptr
}

// requireConsistent checks the directory against the arena and the free
// space counter.
func requireConsistent(t *testing.T, h *Heap) {
	t.Helper()

	offset, used := 0, 0
	for _, b := range h.Blocks() {
		require.Equal(t, offset, b.Offset, "blocks must be contiguous: %v", h.Blocks())
		require.Greater(t, b.Length, 0)
		if b.Used {
			used += b.Length
		} else {
			for i, c := range h.arena[b.Offset:b.End()] {
				require.Zero(t, c, "free byte %d not zeroed", b.Offset+i)
			}
		}
		offset = b.End()
	}

	require.LessOrEqual(t, offset, h.Capacity())
	for i, c := range h.arena[offset:] {
		require.Zero(t, c, "tail byte %d not zeroed", offset+i)
	}
	require.Equal(t, h.Capacity()-used, h.Available())
	require.Equal(t, used, h.Used())
}

func TestNew(t *testing.T) {
	h := newHeap(t, 16, nil)
	require.Equal(t, 16, h.Capacity())
	require.Equal(t, 16, h.Available())
	require.Empty(t, h.Blocks())
	require.Equal(t, "00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n", h.Render())

	_, err := New(-1, nil)
	require.ErrorIs(t, err, ErrInvalidCapacity)

	empty := newHeap(t, 0, nil)
	require.Equal(t, "", empty.Render())
	_, err = empty.Allocate(1)
	require.ErrorIs(t, err, ErrOutOfSpace)
}

func TestNewDefaultsLogger(t *testing.T) {
	h, err := New(4, nil)
	require.NoError(t, err)
	require.NotNil(t, h.log)
	require.IsType(t, NoopObserver{}, h.observer)
}

func TestAllocatesMemory(t *testing.T) {
	h := newHeap(t, 16, nil)

	intPtr, err := h.Allocate(4)
	require.NoError(t, err)
	floatPtr, err := h.Allocate(4)
	require.NoError(t, err)

	require.Equal(t, 0, intPtr)
	require.Equal(t, 4, floatPtr)
	require.Equal(t, 8, h.Available())

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, 10)
	require.NoError(t, h.Write(intPtr, buf))
	binary.LittleEndian.PutUint32(buf, math.Float32bits(1.2))
	require.NoError(t, h.Write(floatPtr, buf))

	got, err := h.Read(intPtr)
	require.NoError(t, err)
	require.Equal(t, uint32(10), binary.LittleEndian.Uint32(got))

	require.Equal(t, "0A 00 00 00 9A 99 99 3F 00 00 00 00 00 00 00 00\n", h.Render())
	requireConsistent(t, h)
}

func TestFreesMemory(t *testing.T) {
	h := newHeap(t, 16, &Options{AutoCompact: true})

	intPtr := mustAlloc(t, h, "\x0a\x00\x00\x00")
	floatPtr := mustAlloc(t, h, "\x9a\x99\x99\x3f")
	require.Equal(t, 8, h.Available())

	h.Free(intPtr)
	require.Equal(t, 12, h.Available())
	require.Equal(t, "00 00 00 00 9A 99 99 3F 00 00 00 00 00 00 00 00\n", h.Render())

	h.Free(floatPtr)
	require.Equal(t, 16, h.Available())
	require.Equal(t, "00 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n", h.Render())
	requireConsistent(t, h)

	// two free holes of 4 bytes cannot hold 10 bytes until the heap is compacted
	a, err := h.Allocate(10)
	require.NoError(t, err)
	b, err := h.Allocate(2)
	require.NoError(t, err)
	c, err := h.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, []int{0, 10, 12}, []int{a, b, c})
	require.Equal(t, 0, h.Available())

	h.Free(b)
	require.Equal(t, 2, h.Available())
	h.Free(c)
	require.Equal(t, 6, h.Available())
	requireConsistent(t, h)
}

func TestFirstFitReusesFreedBlock(t *testing.T) {
	h := newHeap(t, 16, nil)

	a := mustAlloc(t, h, "aaaa")
	b := mustAlloc(t, h, "bbbb")
	require.Equal(t, 0, a)
	require.Equal(t, 4, b)
	require.Equal(t, 8, h.Available())

	h.Free(a)
	require.Equal(t, 12, h.Available())
	data, err := h.Read(b)
	require.NoError(t, err)
	require.Equal(t, "bbbb", string(data))
	require.Equal(t, make([]byte, 4), h.arena[0:4])

	ptr, err := h.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 0, ptr)
	require.Equal(t, 8, h.Available())
	requireConsistent(t, h)
}

func TestAllocateSplitsFreeBlock(t *testing.T) {
	h := newHeap(t, 16, nil)

	a := mustAlloc(t, h, "aaaaaa")
	mustAlloc(t, h, "bb")
	h.Free(a)

	ptr, err := h.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 0, ptr)
	require.Equal(t, []Block{
		{Offset: 0, Length: 4, Used: true},
		{Offset: 4, Length: 2, Used: false},
		{Offset: 6, Length: 2, Used: true},
	}, h.Blocks())

	ptr, err = h.Allocate(2)
	require.NoError(t, err)
	require.Equal(t, 4, ptr)
	require.Len(t, h.Blocks(), 3)
	require.Equal(t, 8, h.Available())
	requireConsistent(t, h)
}

func TestAllocateAppendsAtTail(t *testing.T) {
	h := newHeap(t, 16, nil)

	a := mustAlloc(t, h, "aa")
	mustAlloc(t, h, "bb")
	h.Free(a)

	ptr, err := h.Allocate(3)
	require.NoError(t, err)
	require.Equal(t, 4, ptr)
	require.Equal(t, 11, h.Available())
	requireConsistent(t, h)
}

func TestAllocateErrors(t *testing.T) {
	h := newHeap(t, 8, nil)

	_, err := h.Allocate(0)
	require.ErrorIs(t, err, ErrInvalidSize)
	_, err = h.Allocate(-3)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = h.Allocate(9)
	require.ErrorIs(t, err, ErrOutOfSpace)
	require.Equal(t, 8, h.Available())
}

func TestAllocateFragmented(t *testing.T) {
	h := newHeap(t, 8, nil)

	a := mustAlloc(t, h, "aa")
	mustAlloc(t, h, "bb")
	c := mustAlloc(t, h, "cc")
	mustAlloc(t, h, "dd")
	h.Free(a)
	h.Free(c)
	require.Equal(t, 4, h.Available())

	_, err := h.Allocate(4)
	require.ErrorIs(t, err, ErrFragmented)
	require.ErrorIs(t, err, ErrOutOfSpace)
	require.Equal(t, 4, h.Available())
	requireConsistent(t, h)

	h.Compact()
	ptr, err := h.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 4, ptr)
	require.Equal(t, 0, h.Available())
	require.Equal(t, "62 62 64 64 00 00 00 00\n", h.Render())
}

func TestFreeUnknownPointer(t *testing.T) {
	h := newHeap(t, 16, nil)
	a := mustAlloc(t, h, "abcd")

	h.Free(1)
	h.Free(100)
	require.Equal(t, 12, h.Available())

	h.Free(a)
	h.Free(a)
	require.Equal(t, 16, h.Available())
	requireConsistent(t, h)
}

func TestReadWrite(t *testing.T) {
	h := newHeap(t, 8, nil)
	ptr, err := h.Allocate(4)
	require.NoError(t, err)

	require.ErrorIs(t, h.Write(ptr, []byte("12345")), ErrBlockOverflow)
	require.ErrorIs(t, h.Write(5, []byte("1")), ErrUnknownPointer)
	_, err = h.Read(5)
	require.ErrorIs(t, err, ErrUnknownPointer)

	require.NoError(t, h.Write(ptr, []byte("ab")))
	data, err := h.Read(ptr)
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 'b', 0, 0}, data)

	// the returned slice is a copy
	data[0] = 'z'
	again, _ := h.Read(ptr)
	require.Equal(t, byte('a'), again[0])
}

func TestRenderRows(t *testing.T) {
	h := newHeap(t, 20, nil)
	mustAlloc(t, h, "\xff\x01")

	require.Equal(t,
		"FF 01 00 00 00 00 00 00 00 00 00 00 00 00 00 00\n"+
			"00 00 00 00\n",
		h.Render())
	require.Equal(t, h.Render(), h.String())

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	require.EqualValues(t, len(h.Render()), n)
	require.Equal(t, h.Render(), buf.String())
}

func TestBlockFormat(t *testing.T) {
	b := Block{Offset: 4, Length: 2, Used: true}
	require.Equal(t, "{offset:4, length:2, used:true}", fmt.Sprint(b))
	require.Equal(t, 6, b.End())
}

func TestCompactLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	h := newHeap(t, 8, &Options{Logger: log})

	a := mustAlloc(t, h, "aa")
	mustAlloc(t, h, "bb")
	h.Free(a)
	h.Compact()

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "compacted heap", entry.Message)
	require.Equal(t, 1, entry.Data["moved"])
	require.Equal(t, 2, entry.Data["reclaimed"])
}

package heap

import (
	"bytes"
	"io"

	"go-memmanage/util/helpers"
)

const (
	bytesPerRow = 16
	hexDigits   = "0123456789ABCDEF"
)

// Render returns the arena as rows of 16 uppercase hex bytes separated by a
// space, each row ending with a newline.
func (h *Heap) Render() string {
	return string(h.render())
}

func (h *Heap) String() string {
	return h.Render()
}

// WriteTo writes Render output to w.
func (h *Heap) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.render())
	return int64(n), err
}

func (h *Heap) render() []byte {
	rows := (len(h.arena) + bytesPerRow - 1) / bytesPerRow
	buf := bytes.NewBuffer(make([]byte, 0, len(h.arena)*3))

	for row := 0; row < rows; row++ {
		start := row * bytesPerRow
		end := helpers.Min(start+bytesPerRow, len(h.arena))
		for i, c := range h.arena[start:end] {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteByte(hexDigits[c>>4])
			buf.WriteByte(hexDigits[c&0x0F])
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

// Buffer stores quantized heights as little endian uint16 deltas from the previous height.
// Smooth terrain has small deltas, which zstd compresses well.
type Buffer struct {
	buf  []byte
	off  int    // Read position
	prev uint16 // Previous height written or read
}

func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.off = 0
	buffer.prev = 0
}

func (buffer *Buffer) writeHeight(h uint16) {
	delta := h - buffer.prev
	buffer.prev = h
	buffer.buf = append(buffer.buf, byte(delta), byte(delta>>8))
}

func (buffer *Buffer) readHeight() (uint16, error) {
	if buffer.off+2 > len(buffer.buf) {
		return 0, io.ErrUnexpectedEOF
	}
	delta := uint16(buffer.buf[buffer.off]) | uint16(buffer.buf[buffer.off+1])<<8
	buffer.off += 2
	buffer.prev += delta
	return buffer.prev, nil
}

// Grow makes space for about n heights.
func (buffer *Buffer) Grow(n int) {
	if old := buffer.Buffer(); cap(old)-len(old) < n*2 {
		buf := make([]byte, len(old), len(old)+n*2)
		copy(buf, old)
		buffer.buf = buf
		buffer.off = 0
	}
}

func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}

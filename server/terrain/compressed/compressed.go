// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compressed encodes height fields compactly for transport.
package compressed

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/klauspost/compress/zstd"
	"math"
)

// ErrCorrupt is returned when decoding malformed data.
var ErrCorrupt = errors.New("corrupt height field data")

// headerSize is size float32, resolution uint32, lo float32, hi float32.
const headerSize = 16

// maxResolution bounds allocations while decoding.
const maxResolution = 4096

// Encoder and decoder are safe for concurrent EncodeAll/DecodeAll.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// Encode quantizes field's heights to 16 bits and compresses them.
func Encode(field *world.HeightField) ([]byte, error) {
	n := field.Resolution * field.Resolution
	if field.Resolution < 2 || len(field.Heights) != n {
		return nil, world.ErrInvalidHeightField
	}

	lo, hi := field.Bounds()

	var buffer Buffer
	buffer.Grow(n)
	for _, h := range field.Heights {
		buffer.writeHeight(quantize(h, lo, hi))
	}

	out := make([]byte, headerSize, headerSize+n/2)
	binary.LittleEndian.PutUint32(out[0:], math.Float32bits(field.Size))
	binary.LittleEndian.PutUint32(out[4:], uint32(field.Resolution))
	binary.LittleEndian.PutUint32(out[8:], math.Float32bits(lo))
	binary.LittleEndian.PutUint32(out[12:], math.Float32bits(hi))

	return encoder.EncodeAll(buffer.Buffer(), out), nil
}

// Decode reverses Encode. Heights are within Precision(lo, hi) of the originals.
func Decode(data []byte) (*world.HeightField, error) {
	if len(data) < headerSize {
		return nil, ErrCorrupt
	}

	size := math.Float32frombits(binary.LittleEndian.Uint32(data[0:]))
	resolution := binary.LittleEndian.Uint32(data[4:])
	lo := math.Float32frombits(binary.LittleEndian.Uint32(data[8:]))
	hi := math.Float32frombits(binary.LittleEndian.Uint32(data[12:]))

	if resolution > maxResolution {
		return nil, fmt.Errorf("%w: resolution %d", ErrCorrupt, resolution)
	}

	field, err := world.NewHeightField(size, int(resolution))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	raw, err := decoder.DecodeAll(data[headerSize:], make([]byte, 0, len(field.Heights)*2))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var buffer Buffer
	buffer.Reset(raw)
	for i := range field.Heights {
		q, err := buffer.readHeight()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		field.Heights[i] = dequantize(q, lo, hi)
	}

	return field, nil
}

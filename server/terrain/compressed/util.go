// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "github.com/SoftbearStudios/sculpt/server/world"

const maxQuantized = 1<<16 - 1

// quantize maps h in [lo, hi] to [0, maxQuantized].
func quantize(h, lo, hi float32) uint16 {
	if hi <= lo {
		return 0
	}
	return uint16(world.Clamp((h-lo)/(hi-lo), 0, 1)*maxQuantized + 0.5)
}

func dequantize(q uint16, lo, hi float32) float32 {
	return world.Lerp(lo, hi, float32(q)/maxQuantized)
}

// Precision is the largest error introduced by quantizing heights in [lo, hi].
func Precision(lo, hi float32) float32 {
	return (hi - lo) / maxQuantized * 0.5
}

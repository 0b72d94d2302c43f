// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"time"
)

const (
	DefaultFrameRate = 30
	MaxFrameRate     = 120
)

// Ticks counts frames since a session started.
type Ticks uint64

// FramePeriod converts a frame rate to the period of the frame loop.
func FramePeriod(frameRate int) time.Duration {
	if frameRate <= 0 || frameRate > MaxFrameRate {
		frameRate = DefaultFrameRate
	}
	return time.Second / time.Duration(frameRate)
}

// Seconds converts a frame delta to the float seconds that Update expects.
func Seconds(delta time.Duration) float32 {
	return float32(delta.Seconds())
}

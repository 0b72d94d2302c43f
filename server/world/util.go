// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

func Clamp(val, minimum, maximum float32) float32 {
	return min(max(val, minimum), maximum)
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

// MapRanges linearly maps number from [oldMin, oldMax] to [newMin, newMax].
func MapRanges(number, oldMin, oldMax, newMin, newMax float32, clampToRange bool) float32 {
	oldRange := oldMax - oldMin
	newRange := newMax - newMin
	numberNormalized := (number - oldMin) / oldRange
	mapped := newMin + numberNormalized*newRange
	if clampToRange {
		mapped = Clamp(mapped, min(newMin, newMax), max(newMin, newMax))
	}
	return mapped
}

func ClampInt(val, minimum, maximum int) int {
	return min(max(val, minimum), maximum)
}

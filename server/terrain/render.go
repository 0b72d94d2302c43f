// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/world"
	"image"
	"image/color"
)

type ColorVec [3]float32

var colors = [...]ColorVec{
	RGB(139, 69, 19), // platform brown
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(60, 120, 25),
	RGB(105, 110, 115),
	Gray(240),
}

// Render draws field as a color banded top down image, one pixel per vertex, +Z down.
func Render(field *world.HeightField) image.Image {
	res := field.Resolution
	img := image.NewRGBA(image.Rect(0, 0, res, res))

	for j := 0; j < res; j++ {
		for i := 0; i < res; i++ {
			img.Set(i, j, ColorAt(field.At(i, j)).Color())
		}
	}

	return img
}

// ColorAt returns the color of terrain at height h.
func ColorAt(h float32) ColorVec {
	switch {
	case h <= SandLevel:
		return colors[0].Lerp(colors[1], clamp((h-BaseLevel)/(SandLevel-BaseLevel)))
	case h <= GrassLevel:
		return colors[1].Lerp(colors[2], clamp((h-SandLevel)*4))
	case h <= RockLevel:
		return colors[2].Lerp(colors[3], clamp((h-GrassLevel)/(RockLevel-GrassLevel)))
	case h <= SnowLevel:
		return colors[3].Lerp(colors[4], clamp((h-RockLevel)*2))
	default:
		return colors[4].Lerp(colors[5], clamp((h-SnowLevel)*0.5))
	}
}

func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("vec4(%.3f, %.3f, %.3f, 1.0)", vec[0], vec[1], vec[2])
}

func (vec ColorVec) Mul(v float32) ColorVec {
	vec[0] *= v
	vec[1] *= v
	vec[2] *= v
	return vec
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = world.Lerp(vec[i], other[i], factor)
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func clamp(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}

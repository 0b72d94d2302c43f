// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"errors"
	"math"
)

// ErrInvalidHeightField is returned when a HeightField's dimensions don't agree.
var ErrInvalidHeightField = errors.New("invalid height field")

// HeightField is a square grid of heights centered on the origin.
// Vertex (i, j) is at x = -Size/2 + i*Spacing(), z = -Size/2 + j*Spacing().
type HeightField struct {
	Size       float32   `json:"size"`
	Resolution int       `json:"resolution"`
	Heights    []float32 `json:"-"` // Heights is row major (j*Resolution + i).
}

func NewHeightField(size float32, resolution int) (*HeightField, error) {
	if size <= 0 || resolution < 2 {
		return nil, ErrInvalidHeightField
	}
	return &HeightField{
		Size:       size,
		Resolution: resolution,
		Heights:    make([]float32, resolution*resolution),
	}, nil
}

// Spacing is the distance between neighboring vertices.
func (field *HeightField) Spacing() float32 {
	return field.Size / float32(field.Resolution-1)
}

// Coord returns the world X (or Z) coordinate of a vertex index.
func (field *HeightField) Coord(i int) float32 {
	return -field.Size*0.5 + float32(i)*field.Spacing()
}

func (field *HeightField) At(i, j int) float32 {
	return field.Heights[j*field.Resolution+i]
}

func (field *HeightField) Set(i, j int, height float32) {
	field.Heights[j*field.Resolution+i] = height
}

// Bounds returns the minimum and maximum heights.
func (field *HeightField) Bounds() (lo, hi float32) {
	if len(field.Heights) == 0 {
		return 0, 0
	}
	lo, hi = field.Heights[0], field.Heights[0]
	for _, h := range field.Heights[1:] {
		lo = min(lo, h)
		hi = max(hi, h)
	}
	return
}

// HeightAt bilinearly samples the field. ok is false outside the footprint.
func (field *HeightField) HeightAt(x, z float32) (height float32, ok bool) {
	half := field.Size * 0.5
	if x < -half || x > half || z < -half || z > half {
		return 0, false
	}

	spacing := field.Spacing()
	fx := (x + half) / spacing
	fz := (z + half) / spacing

	last := field.Resolution - 1
	i0 := ClampInt(int(math.Floor(float64(fx))), 0, last)
	j0 := ClampInt(int(math.Floor(float64(fz))), 0, last)
	i1 := min(i0+1, last)
	j1 := min(j0+1, last)

	dx := fx - float32(i0)
	dz := fz - float32(j0)

	// Sample 2x2 grid
	// 00 10
	// 01 11
	c00 := field.At(i0, j0)
	c10 := field.At(i1, j0)
	c01 := field.At(i0, j1)
	c11 := field.At(i1, j1)

	return Lerp(Lerp(c00, c10, dx), Lerp(c01, c11, dx), dz), true
}

// Intersect marches ray across the field and returns the distance to the first point
// at or below the surface. Hits are refined by bisection to well under a cell.
func (field *HeightField) Intersect(ray Ray, baseY float32) (float32, bool) {
	if !ray.Finite() {
		return 0, false
	}
	lo, hi := field.Bounds()
	bounds := Box{
		Center: Vec3f{Y: (min(lo, baseY) + hi) * 0.5},
		Size:   Vec3f{X: field.Size, Y: hi - min(lo, baseY), Z: field.Size},
	}
	// Degenerate (perfectly flat) fields still need a slab to enter.
	bounds.Size.Y = max(bounds.Size.Y, 1e-3)

	tEnter, ok := bounds.Intersect(ray)
	if !ok {
		return 0, false
	}

	below := func(t float32) bool {
		p := ray.At(t)
		h, inside := field.HeightAt(p.X, p.Z)
		return inside && p.Y <= h
	}

	// Origin inside the bounds starts the march at the origin.
	start := float32(0)
	if !bounds.containsPoint(ray.Origin) {
		start = tEnter
	}
	if below(start) {
		return start, true
	}

	step := field.Spacing() * 0.5
	maxT := start + field.Size*2 + (hi - min(lo, baseY))
	prev := start
	for t := start + step; t <= maxT; t += step {
		if below(t) {
			a, b := prev, t
			for n := 0; n < 12; n++ {
				m := (a + b) * 0.5
				if below(m) {
					b = m
				} else {
					a = m
				}
			}
			return b, true
		}
		prev = t
	}
	return 0, false
}

func (box Box) containsPoint(p Vec3f) bool {
	lo, hi := box.Min(), box.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y && p.Z >= lo.Z && p.Z <= hi.Z
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import "github.com/chewxy/math32"

// Box is an axis aligned box in world space.
type Box struct {
	Center Vec3f `json:"center"`
	Size   Vec3f `json:"size"`
}

// BoxOnFootprint stands a box of the given height on a ground footprint with its bottom at bottomY.
func BoxOnFootprint(footprint AABB, bottomY, height float32) Box {
	c := footprint.Center()
	return Box{
		Center: Vec3f{X: c.X, Y: bottomY + height*0.5, Z: c.Y},
		Size:   Vec3f{X: footprint.Width, Y: height, Z: footprint.Height},
	}
}

func (box Box) Min() Vec3f {
	return box.Center.AddScaled(box.Size, -0.5)
}

func (box Box) Max() Vec3f {
	return box.Center.AddScaled(box.Size, 0.5)
}

func (box Box) Bottom() float32 {
	return box.Center.Y - box.Size.Y*0.5
}

func (box Box) Top() float32 {
	return box.Center.Y + box.Size.Y*0.5
}

// Intersect returns the distance along ray to the first surface of box it hits.
// A ray starting inside the box hits the far side.
func (box Box) Intersect(ray Ray) (float32, bool) {
	if !ray.Finite() {
		return 0, false
	}
	lo, hi := box.Min(), box.Max()
	o := [3]float32{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	d := [3]float32{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	bmin := [3]float32{lo.X, lo.Y, lo.Z}
	bmax := [3]float32{hi.X, hi.Y, hi.Z}

	tNear := float32(math32.Inf(-1))
	tFar := float32(math32.Inf(1))

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			// Parallel to this slab
			if o[i] < bmin[i] || o[i] > bmax[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t0 := (bmin[i] - o[i]) * inv
		t1 := (bmax[i] - o[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tNear = max(tNear, t0)
		tFar = min(tFar, t1)
		if tNear > tFar {
			return 0, false
		}
	}

	if tFar < 0 {
		return 0, false
	}
	if tNear >= 0 {
		return tNear, true
	}
	return tFar, true
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is an axis aligned rectangle on the ground plane. Vec2f is the minimum corner.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// AABBFromCorners spans two opposite corners given in any order.
func AABBFromCorners(a, b Vec2f) AABB {
	size := b.Sub(a).Abs()
	return AABB{
		Vec2f:  Vec2f{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Width:  size.X,
		Height: size.Y,
	}
}

// Center of a
func (a AABB) Center() Vec2f {
	return Vec2f{X: a.X + a.Width*0.5, Y: a.Y + a.Height*0.5}
}

// Intersects a and b are intersecting
func (a AABB) Intersects(b AABB) bool {
	return a.X+a.Width >= b.X && a.X <= b.X+b.Width && a.Y+a.Height >= b.Y && a.Y <= b.Height+b.Y
}

// Contains a fully contains b
func (a AABB) Contains(b AABB) bool {
	return a.X <= b.X && a.Y <= b.Y && a.X+a.Width >= b.X+b.Width && a.Y+a.Height >= b.Y+b.Height
}

// ContainsPoint a contains p
func (a AABB) ContainsPoint(p Vec2f) bool {
	return p.X >= a.X && p.X <= a.X+a.Width && p.Y >= a.Y && p.Y <= a.Y+a.Height
}

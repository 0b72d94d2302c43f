// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3f is a point or direction in world space. Y is up.
type Vec3f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func Vec3(x, y, z float32) Vec3f {
	return Vec3f{X: x, Y: y, Z: z}
}

// FromMgl converts from the vector type used for transforms.
func FromMgl(v mgl32.Vec3) Vec3f {
	return Vec3f{X: v[0], Y: v[1], Z: v[2]}
}

// Finite reports whether every component is neither NaN nor infinite.
func (vec Vec3f) Finite() bool {
	return finite(vec.X) && finite(vec.Y) && finite(vec.Z)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func (vec Vec3f) Mgl() mgl32.Vec3 {
	return mgl32.Vec3{vec.X, vec.Y, vec.Z}
}

func (vec Vec3f) Add(otherVec Vec3f) Vec3f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	vec.Z += otherVec.Z
	return vec
}

func (vec Vec3f) AddScaled(otherVec Vec3f, factor float32) Vec3f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	vec.Z += otherVec.Z * factor
	return vec
}

func (vec Vec3f) Sub(otherVec Vec3f) Vec3f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	vec.Z -= otherVec.Z
	return vec
}

func (vec Vec3f) Mul(factor float32) Vec3f {
	vec.X *= factor
	vec.Y *= factor
	vec.Z *= factor
	return vec
}

func (vec Vec3f) Dot(otherVec Vec3f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y + vec.Z*otherVec.Z
}

func (vec Vec3f) Cross(otherVec Vec3f) Vec3f {
	return Vec3f{
		X: vec.Y*otherVec.Z - vec.Z*otherVec.Y,
		Y: vec.Z*otherVec.X - vec.X*otherVec.Z,
		Z: vec.X*otherVec.Y - vec.Y*otherVec.X,
	}
}

func (vec Vec3f) LengthSquared() float32 {
	return vec.Dot(vec)
}

func (vec Vec3f) Length() float32 {
	return math32.Sqrt(vec.LengthSquared())
}

func (vec Vec3f) Distance(otherVec Vec3f) float32 {
	return vec.Sub(otherVec).Length()
}

// Norm returns the unit vector, or the zero vector if vec has no length.
func (vec Vec3f) Norm() Vec3f {
	l := vec.Length()
	if l == 0 {
		return Vec3f{}
	}
	return vec.Mul(1 / l)
}

// XZ projects onto the ground plane.
func (vec Vec3f) XZ() Vec2f {
	return Vec2f{X: vec.X, Y: vec.Z}
}

func (vec Vec3f) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", vec.X, vec.Y, vec.Z)
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Ray is a half line. Direction is expected to be normalized.
type Ray struct {
	Origin    Vec3f `json:"origin"`
	Direction Vec3f `json:"direction"`
}

func NewRay(origin, direction Vec3f) Ray {
	return Ray{Origin: origin, Direction: direction.Norm()}
}

// Finite reports whether the ray has no NaN or infinite components.
func (ray Ray) Finite() bool {
	return ray.Origin.Finite() && ray.Direction.Finite() && ray.Direction != (Vec3f{})
}

// At returns the point at distance t along the ray.
func (ray Ray) At(t float32) Vec3f {
	return ray.Origin.AddScaled(ray.Direction, t)
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox_Intersect(t *testing.T) {
	box := BoxOnFootprint(AABBFromCorners(Vec2f{X: 0, Y: 0}, Vec2f{X: 4, Y: 3}), 0, 2)
	assert.Equal(t, Vec3f{X: 2, Y: 1, Z: 1.5}, box.Center)
	assert.Equal(t, float32(0), box.Bottom())
	assert.Equal(t, float32(2), box.Top())

	// Straight down onto the top face
	d, ok := box.Intersect(NewRay(Vec3(2, 10, 1.5), Vec3(0, -1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 8, d, 1e-4)

	// Side face
	d, ok = box.Intersect(NewRay(Vec3(-5, 1, 1), Vec3(1, 0, 0)))
	require.True(t, ok)
	assert.InDelta(t, 5, d, 1e-4)

	// Miss
	_, ok = box.Intersect(NewRay(Vec3(10, 10, 10), Vec3(0, -1, 0)))
	assert.False(t, ok)

	// Pointing away
	_, ok = box.Intersect(NewRay(Vec3(2, 10, 1.5), Vec3(0, 1, 0)))
	assert.False(t, ok)

	// From inside hits the far side
	d, ok = box.Intersect(NewRay(Vec3(2, 1, 1.5), Vec3(0, 1, 0)))
	require.True(t, ok)
	assert.InDelta(t, 1, d, 1e-4)
}

func TestHeightField_HeightAt(t *testing.T) {
	field, err := NewHeightField(2, 3)
	require.NoError(t, err)

	// Vertices at -1, 0, 1 on each axis; a ridge along x = 0.
	for j := 0; j < 3; j++ {
		field.Set(1, j, 2)
	}

	h, ok := field.HeightAt(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 2, h, 1e-5)

	h, ok = field.HeightAt(-0.5, 0.3)
	require.True(t, ok)
	assert.InDelta(t, 1, h, 1e-5)

	h, ok = field.HeightAt(1, 1)
	require.True(t, ok)
	assert.InDelta(t, 0, h, 1e-5)

	_, ok = field.HeightAt(1.5, 0)
	assert.False(t, ok)

	lo, hi := field.Bounds()
	assert.Equal(t, float32(0), lo)
	assert.Equal(t, float32(2), hi)
}

func TestHeightField_Intersect(t *testing.T) {
	field, err := NewHeightField(10, 11)
	require.NoError(t, err)
	for i := range field.Heights {
		field.Heights[i] = 1
	}
	field.Set(5, 5, 3)

	d, ok := field.Intersect(NewRay(Vec3(2, 10, 2), Vec3(0, -1, 0)), -1)
	require.True(t, ok)
	assert.InDelta(t, 9, d, 0.01)

	// Peak at the center
	d, ok = field.Intersect(NewRay(Vec3(0, 10, 0), Vec3(0, -1, 0)), -1)
	require.True(t, ok)
	assert.InDelta(t, 7, d, 0.01)

	// Slanted ray lands on the plateau
	ray := NewRay(Vec3(-4, 5, -4), Vec3(1, -1, 0))
	d, ok = field.Intersect(ray, -1)
	require.True(t, ok)
	assert.InDelta(t, 1, ray.At(d).Y, 0.01)

	// Off the field
	_, ok = field.Intersect(NewRay(Vec3(20, 10, 20), Vec3(0, -1, 0)), -1)
	assert.False(t, ok)

	_, err = NewHeightField(10, 1)
	assert.ErrorIs(t, err, ErrInvalidHeightField)
}

func TestIntersect_NonFinite(t *testing.T) {
	box := BoxOnFootprint(AABBFromCorners(Vec2f{X: -10, Y: -10}, Vec2f{X: 10, Y: 10}), -1, 1)
	field, err := NewHeightField(4, 5)
	require.NoError(t, err)

	nan := math32.NaN()
	rays := []Ray{
		{Origin: Vec3(0, 5, 0), Direction: Vec3(nan, nan, nan)},
		{Origin: Vec3(nan, 5, 0), Direction: Vec3(0, -1, 0)},
		{Origin: Vec3(0, 5, 0), Direction: Vec3(0, float32(math32.Inf(-1)), 0)},
		{Origin: Vec3(0, 5, 0)},
	}

	for _, ray := range rays {
		assert.False(t, ray.Finite())
		_, ok := box.Intersect(ray)
		assert.False(t, ok, "box %v", ray)
		_, ok = field.Intersect(ray, -1)
		assert.False(t, ok, "field %v", ray)
	}
}

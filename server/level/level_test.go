// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package level

import (
	"errors"
	"testing"

	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/scene/scenetest"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizard_Complete(t *testing.T) {
	r := scenetest.New()
	w := NewWizard(r)
	var none world.Vec2f

	assert.Nil(t, w.Click(world.Vec3(0, 0, 0), true, none))
	assert.Equal(t, FirstCorner, w.State())
	assert.Equal(t, 0, r.Count(scene.KindWireframe), "no geometry after first corner")

	assert.Nil(t, w.Click(world.Vec3(4, 0, 3), true, none))
	assert.Equal(t, SecondCorner, w.State())
	assert.Equal(t, 1, r.Count(scene.KindWireframe))

	assert.Nil(t, w.Click(world.Vec3f{}, false, world.Vec2f{Y: -1}))
	assert.Equal(t, HeightAdjust, w.State())
	assert.Equal(t, 1, r.Count(scene.KindPreview))

	w.Move(world.Vec3f{}, false, world.Vec2f{Y: CursorForHeight(2.5)})
	assert.Equal(t, 1, r.Count(scene.KindPreview), "preview replaced, not accumulated")

	block := w.Click(world.Vec3f{}, false, world.Vec2f{Y: CursorForHeight(2.5)})
	require.NotNil(t, block)
	assert.Equal(t, Idle, w.State())
	assert.Nil(t, w.Pending())

	assert.InDelta(t, 4, block.Width(), 1e-6)
	assert.InDelta(t, 3, block.Depth(), 1e-6)
	assert.InDelta(t, 2.5, block.Height, 1e-5)
	assert.InDelta(t, 0, block.BottomY, 1e-6)
	assert.Equal(t, world.Vec2f{X: 2, Y: 1.5}, block.Footprint.Center())

	assert.Equal(t, 1, r.Count(scene.KindBlock))
	assert.Equal(t, 0, r.Count(scene.KindPreview))
	assert.Equal(t, 0, r.Count(scene.KindWireframe))
	assert.Positive(t, r.Shadows)

	spec, ok := r.Box(block.Handle())
	require.True(t, ok)
	assert.True(t, spec.CastShadow)
	assert.Equal(t, float32(1), spec.Opacity)
}

func TestWizard_SecondCornerPreview(t *testing.T) {
	r := scenetest.New()
	w := NewWizard(r)

	w.Click(world.Vec3(1, 0.5, 1), true, world.Vec2f{})
	w.Click(world.Vec3(2, 0.5, 2), true, world.Vec2f{})

	for i := 0; i < 5; i++ {
		w.Move(world.Vec3(float32(3+i), 0.5, 4), true, world.Vec2f{})
	}
	assert.Equal(t, 1, r.Count(scene.KindWireframe))

	spec, ok := r.Box(w.Pending().wireframe)
	require.True(t, ok)
	assert.Equal(t, float32(6), spec.Box.Size.X)
	assert.Equal(t, float32(3), spec.Box.Size.Z)
	assert.InDelta(t, 0.51, spec.Box.Center.Y, 1e-6)
	assert.Equal(t, float32(4), spec.Box.Center.X)

	// Misses keep the last footprint.
	w.Move(world.Vec3f{}, false, world.Vec2f{})
	assert.Equal(t, world.Vec3(7, 0.5, 4), w.Pending().End)

	// A second corner on something taller lifts the outline above it.
	w.Move(world.Vec3(5, 2, 5), true, world.Vec2f{})
	spec, ok = r.Box(w.Pending().wireframe)
	require.True(t, ok)
	assert.InDelta(t, 2.01, spec.Box.Center.Y, 1e-6)
	assert.Equal(t, float32(0.5), w.Pending().GroundY, "bottom stays at the first corner")

	// Lower second corners don't bury it either.
	w.Move(world.Vec3(5, -3, 5), true, world.Vec2f{})
	spec, ok = r.Box(w.Pending().wireframe)
	require.True(t, ok)
	assert.InDelta(t, 0.51, spec.Box.Center.Y, 1e-6)
}

func TestWizard_HeightAdjust(t *testing.T) {
	r := scenetest.New()
	w := NewWizard(r)

	w.Click(world.Vec3(0, -0.5, 0), true, world.Vec2f{})
	w.Click(world.Vec3(1, -0.5, 1), true, world.Vec2f{})
	w.Click(world.Vec3f{}, false, world.Vec2f{Y: 0.25})
	assert.Equal(t, float32(0.25), w.Pending().DragOriginY)

	for _, test := range []struct {
		cursor, height float32
	}{
		{-1, MinHeight},
		{-5, MinHeight},
		{1, MaxHeight},
		{3, MaxHeight},
		{0, (MinHeight + MaxHeight) / 2},
	} {
		w.Move(world.Vec3f{}, false, world.Vec2f{Y: test.cursor})
		assert.InDelta(t, test.height, w.Pending().Height, 1e-5, test.cursor)

		spec, ok := r.Box(w.Pending().preview)
		require.True(t, ok)
		assert.InDelta(t, -0.5, spec.Box.Bottom(), 1e-5, "anchored to ground")
	}
}

func TestWizard_Reset(t *testing.T) {
	r := scenetest.New()
	w := NewWizard(r)

	w.Click(world.Vec3(0, 0, 0), true, world.Vec2f{})
	w.Click(world.Vec3(2, 0, 2), true, world.Vec2f{})
	w.Click(world.Vec3f{}, false, world.Vec2f{})
	require.Equal(t, HeightAdjust, w.State())

	w.Reset()
	assert.Equal(t, Idle, w.State())
	assert.Equal(t, 0, r.Count(scene.KindPreview))
	assert.Equal(t, 0, r.Count(scene.KindWireframe))
	assert.Equal(t, 0, r.Count(scene.KindBlock))
}

func TestWizard_IgnoresMisses(t *testing.T) {
	w := NewWizard(scenetest.New())

	w.Click(world.Vec3f{}, false, world.Vec2f{})
	assert.Equal(t, Idle, w.State())

	w.Click(world.Vec3(1, 0, 1), true, world.Vec2f{})
	w.Click(world.Vec3f{}, false, world.Vec2f{})
	assert.Equal(t, FirstCorner, w.State())

	// Non-finite hits are misses.
	nan := math32.NaN()
	w.Click(world.Vec3(nan, nan, nan), true, world.Vec2f{})
	assert.Equal(t, FirstCorner, w.State())
	assert.Equal(t, world.Vec3(1, 0, 1), w.Pending().Start)

	// Degenerate footprint can't be extruded.
	w.Click(world.Vec3(1, 0, 1), true, world.Vec2f{})
	w.Click(world.Vec3f{}, false, world.Vec2f{})
	assert.Equal(t, SecondCorner, w.State())
}

func TestBlock_EditHeight(t *testing.T) {
	r := scenetest.New()
	block := newBlock(r, 1, world.AABBFrom(0, 0, 2, 2), 0.5, 2)
	bottom := block.Box().Bottom()
	top := block.Top()
	old := block.Handle()

	require.NoError(t, block.EditHeight(r, 5))
	assert.Equal(t, bottom, block.Box().Bottom())
	assert.InDelta(t, 3, block.Top()-top, 1e-6)
	assert.InDelta(t, 3, block.Center().Y, 1e-6)
	assert.NotEqual(t, old, block.Handle())
	assert.Equal(t, 1, r.Count(scene.KindBlock))

	for _, h := range []float32{0, -1, math32.NaN(), math32.Inf(1)} {
		err := block.EditHeight(r, h)
		assert.True(t, errors.Is(err, ErrInvalidParameter), h)
	}
	assert.Equal(t, float32(5), block.Height)
	assert.Equal(t, float32(0.5), block.BottomY)
}

func TestHeightFromCursor(t *testing.T) {
	assert.InDelta(t, 2.5, HeightFromCursor(CursorForHeight(2.5)), 1e-5)
	assert.Equal(t, float32(MinHeight), HeightFromCursor(-1))
	assert.Equal(t, "heightAdjust", HeightAdjust.String())
}

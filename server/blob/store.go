// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package blob

import (
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultSpacing is the minimum distance between consecutive blobs of one gesture.
	DefaultSpacing = 0.08
	// DefaultRadius is the radius of a blob sphere.
	DefaultRadius = 0.1
)

// Store is an append only set of blobs drawn by one instance batch.
type Store struct {
	renderer   scene.Renderer
	batch      scene.Handle
	spacing    float32
	radius     float32
	positions  []world.Vec3f
	transforms []mgl32.Mat4
	gesture    bool // a blob was placed in the current gesture
}

// New creates a store and its instance batch. Non-positive spacing or radius use the defaults.
func New(renderer scene.Renderer, spacing, radius float32) *Store {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &Store{
		renderer: renderer,
		batch:    renderer.CreateInstanceBatch(radius),
		spacing:  spacing,
		radius:   radius,
	}
}

// Place adds a blob at point unless it is within spacing of the last blob placed in
// the same gesture. It returns true if the blob was placed. Non-finite points are never placed.
func (store *Store) Place(point world.Vec3f) bool {
	if !point.Finite() {
		return false
	}
	if store.gesture && len(store.positions) > 0 &&
		point.Distance(store.positions[len(store.positions)-1]) <= store.spacing {
		return false
	}

	index := len(store.positions)
	transform := mgl32.Translate3D(point.X, point.Y, point.Z)

	store.positions = append(store.positions, point)
	store.transforms = append(store.transforms, transform)
	store.gesture = true

	store.renderer.CommitInstance(store.batch, index, transform)
	store.renderer.SetVisibleCount(store.batch, len(store.positions))
	return true
}

// EndGesture makes the next Place the first of a new gesture.
func (store *Store) EndGesture() {
	store.gesture = false
}

// Clear removes all blobs but keeps the batch and capacity. Clearing an empty store
// does nothing.
func (store *Store) Clear() {
	store.gesture = false
	if len(store.positions) == 0 {
		return
	}
	store.positions = store.positions[:0]
	store.transforms = store.transforms[:0]
	store.renderer.SetVisibleCount(store.batch, 0)
}

func (store *Store) Count() int {
	return len(store.positions)
}

// Positions returns a copy of the blob positions in placement order.
func (store *Store) Positions() []world.Vec3f {
	return append([]world.Vec3f(nil), store.positions...)
}

// TransformOf returns the instance transform of blob i.
func (store *Store) TransformOf(i int) mgl32.Mat4 {
	return store.transforms[i]
}

func (store *Store) Batch() scene.Handle {
	return store.batch
}

func (store *Store) Radius() float32 {
	return store.radius
}

// Close destroys the instance batch.
func (store *Store) Close() {
	store.renderer.Destroy(store.batch)
	store.batch = 0
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tool

import (
	"github.com/SoftbearStudios/sculpt/server/level"
	"github.com/SoftbearStudios/sculpt/server/terrain"
	"github.com/SoftbearStudios/sculpt/server/world"
)

// Observer is notified of noteworthy edits. Methods are called on the Controller's goroutine.
type Observer interface {
	BlobPlaced(point world.Vec3f)
	BlockCommitted(block *level.Block)
	GenerationStarted()
	GenerationRejected(err error)
	GenerationFinished(gen terrain.Generation)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) BlobPlaced(world.Vec3f) {}
func (NopObserver) BlockCommitted(*level.Block) {}
func (NopObserver) GenerationStarted() {}
func (NopObserver) GenerationRejected(error) {}
func (NopObserver) GenerationFinished(terrain.Generation) {}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/tool"
	"sync"
)

type (
	// SceneUpdate is a batch of scene changes in the order they happened.
	// Height fields carry their heights compressed.
	SceneUpdate struct {
		Ops   []scene.Op `json:"ops"`
		Reset bool       `json:"reset,omitempty"` // Client must clear its scene before applying Ops.
	}

	// Status describes the session's tools, sent when it changes.
	Status struct {
		tool.Status
		Error string `json:"error,omitempty"`
	}
)

func init() {
	registerOutbound(
		&SceneUpdate{},
		Status{},
	)
}

const poolOpsCap = 32

var sceneUpdatePool = sync.Pool{
	New: func() interface{} {
		return &SceneUpdate{
			Ops: make([]scene.Op, 0, poolOpsCap),
		}
	},
}

func NewSceneUpdate() *SceneUpdate {
	return sceneUpdatePool.Get().(*SceneUpdate)
}

func (update *SceneUpdate) Pool() {
	for i := range update.Ops {
		update.Ops[i] = scene.Op{}
	}
	*update = SceneUpdate{
		Ops: update.Ops[:0],
	}
	sceneUpdatePool.Put(update)
}

func (status Status) Pool() {}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"log"

	"github.com/SoftbearStudios/sculpt/server/level"
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/terrain"
	"github.com/SoftbearStudios/sculpt/server/terrain/compressed"
	"github.com/SoftbearStudios/sculpt/server/tool"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/google/uuid"
)

// Session is one client's sandbox. It is only accessed by the hub goroutine.
type Session struct {
	ID         uuid.UUID
	client     Client
	metrics    *Metrics
	scene      *scene.Scene
	camera     *scene.Camera
	controller *tool.Controller

	status Status // last sent
	sent   bool   // status was sent at least once
	err    error  // reported with next status
}

func newSession(client Client, options tool.Options, metrics *Metrics) *Session {
	session := &Session{
		ID:      uuid.New(),
		client:  client,
		metrics: metrics,
		scene:   scene.New(),
		camera:  scene.NewCamera(),
	}
	session.controller = tool.New(session.scene, session.camera, options, session)
	return session
}

func (session *Session) String() string {
	return fmt.Sprintf("%s (%s, %d blobs, %d blocks)",
		session.ID, session.controller.Tool(), session.controller.Blobs().Count(), len(session.controller.Blocks()))
}

// update advances the session by seconds and sends what changed.
func (session *Session) update(seconds float32) {
	session.controller.Update(seconds)
	session.flush()
}

// flush sends the scene journal and the status, if either changed.
func (session *Session) flush() {
	if ops := session.scene.Flush(); len(ops) > 0 {
		session.sendOps(ops, false)
	}

	status := Status{Status: session.controller.Status()}
	if session.err != nil {
		status.Error = session.err.Error()
		session.err = nil
	}

	if session.sent && statusEqual(&status, &session.status) {
		return
	}
	session.status = status
	session.sent = true
	session.client.Send(status)
}

// resync sends the whole scene, for clients that lost theirs.
func (session *Session) resync() {
	session.sendOps(session.scene.Replay(), true)
}

func (session *Session) sendOps(ops []scene.Op, reset bool) {
	update := NewSceneUpdate()
	update.Reset = reset
	for _, op := range ops {
		if op.Field != nil {
			heights, err := compressed.Encode(op.Field)
			if err != nil {
				// Skip the op, the client can't render it anyway.
				log.Println("compress height field:", err)
				continue
			}
			op.Heights = heights
			op.Field = nil
		}
		update.Ops = append(update.Ops, op)
	}
	session.client.Send(update)
}

// report records an error from an inbound to be sent with the next status.
func (session *Session) report(err error) {
	if err != nil {
		session.err = err
	}
}

func (session *Session) close() {
	session.controller.Close()
}

// statusEqual ignores fields that change every frame.
func statusEqual(a, b *Status) bool {
	x, y := *a, *b
	x.Frame, y.Frame = 0, 0
	x.TimeOfDay, y.TimeOfDay = 0, 0
	x.Camera, y.Camera = nil, nil
	return x == y
}

func (session *Session) BlobPlaced(world.Vec3f) {
	if session.metrics != nil {
		session.metrics.blobs.Inc()
	}
}

func (session *Session) BlockCommitted(*level.Block) {
	if session.metrics != nil {
		session.metrics.blocks.Inc()
	}
}

func (session *Session) GenerationStarted() {
	if session.metrics != nil {
		session.metrics.generations.Inc()
	}
}

func (session *Session) GenerationRejected(err error) {
	if session.metrics != nil {
		session.metrics.generationRejected.Inc()
	}
	session.report(err)
}

func (session *Session) GenerationFinished(gen terrain.Generation) {
	if session.metrics != nil {
		if gen.Err != nil {
			session.metrics.generationFailures.Inc()
		} else {
			session.metrics.generationSeconds.Observe(gen.Elapsed.Seconds())
		}
	}
	session.report(gen.Err)
}

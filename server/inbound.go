// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/sculpt/server/level"
	"github.com/SoftbearStudios/sculpt/server/tool"
	"github.com/SoftbearStudios/sculpt/server/world"
)

// Make sure to register in init function
type (
	// EditHeight changes the height of a committed block. Block 0 means the selected block.
	EditHeight struct {
		Block  level.ID `json:"block"`
		Height float32  `json:"height"`
	}

	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// KeyDown is a key press, by physical key code.
	KeyDown struct {
		Key tool.Key `json:"key"`
	}

	KeyUp struct {
		Key tool.Key `json:"key"`
	}

	// PointerDown is a button press at a position in normalized device coordinates.
	PointerDown struct {
		Button   tool.Button `json:"button"`
		Position world.Vec2f `json:"position"`
	}

	PointerMove struct {
		Position world.Vec2f `json:"position"`
	}

	PointerUp struct {
		Button   tool.Button `json:"button"`
		Position world.Vec2f `json:"position"`
	}

	// Resize tells the server the aspect ratio of the client's viewport.
	Resize struct {
		Aspect float32 `json:"aspect"`
	}

	// Resync asks for the whole scene, for example after the client lost its renderer.
	Resync struct{}

	// SetHilliness sets the hilliness of the next terrain generation.
	SetHilliness struct {
		Hilliness float32 `json:"hilliness"`
	}
)

func init() {
	registerInbound(
		EditHeight{},
		KeyDown{},
		KeyUp{},
		PointerDown{},
		PointerMove{},
		PointerUp{},
		Resize{},
		Resync{},
		SetHilliness{},
	)
}

func (data EditHeight) Inbound(_ *Hub, _ Client, session *Session) error {
	if data.Block == 0 {
		return session.controller.EditSelectedHeight(data.Height)
	}
	return session.controller.EditHeight(data.Block, data.Height)
}

func (data InvalidInbound) Inbound(_ *Hub, _ Client, _ *Session) error {
	return nil
}

func (data KeyDown) Inbound(_ *Hub, _ Client, session *Session) error {
	return session.controller.KeyDown(data.Key)
}

func (data KeyUp) Inbound(_ *Hub, _ Client, session *Session) error {
	session.controller.KeyUp(data.Key)
	return nil
}

func (data PointerDown) Inbound(_ *Hub, _ Client, session *Session) error {
	session.controller.PointerDown(data.Button, data.Position)
	return nil
}

func (data PointerMove) Inbound(_ *Hub, _ Client, session *Session) error {
	session.controller.PointerMove(data.Position)
	return nil
}

func (data PointerUp) Inbound(_ *Hub, _ Client, session *Session) error {
	session.controller.PointerUp(data.Button, data.Position)
	return nil
}

const (
	minAspect = 0.1
	maxAspect = 10
)

func (data Resize) Inbound(_ *Hub, _ Client, session *Session) error {
	if !(data.Aspect > 0) {
		return nil
	}
	session.camera.Aspect = world.Clamp(data.Aspect, minAspect, maxAspect)
	return nil
}

func (data Resync) Inbound(_ *Hub, _ Client, session *Session) error {
	session.resync()
	return nil
}

func (data SetHilliness) Inbound(_ *Hub, _ Client, session *Session) error {
	session.controller.SetHilliness(data.Hilliness)
	return nil
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"testing"

	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/tool"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonIter_Outbound(t *testing.T) {
	transform := mgl32.Translate3D(1, 0.5, -2)
	update := &SceneUpdate{Ops: []scene.Op{
		{Type: scene.OpCommitInstance, Handle: 3, Index: 1, Transform: &transform},
		{Type: scene.OpHighlight},
	}}

	buf, err := JSON.Marshal(Message{Data: update})
	require.NoError(t, err)

	const expected = `{"data":{"ops":[{"type":"commitInstance","handle":3,"index":1,"transform":[1,0,0,0,0,1,0,0,0,0,1,0,1,0.5,-2,1]},{"type":"highlight"}]},"type":"sceneUpdate"}`
	assert.Equal(t, expected, string(buf))

	status := Status{Status: tool.Status{Tool: tool.LandLeveling, Wizard: "idle", Surface: "flat", TimeScale: 1}, Error: "oops"}
	buf, err = JSON.Marshal(Message{Data: status})
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"type":"status"`)
	assert.Contains(t, string(buf), `"tool":"landLeveling"`)
	assert.Contains(t, string(buf), `"error":"oops"`)
}

func TestJsonIter_Inbound(t *testing.T) {
	tests := []struct {
		json     string
		expected interface{}
	}{
		{`{"type":"keyDown","data":{"key":"KeyT"}}`, KeyDown{Key: tool.KeyTerraform}},
		// Type after data
		{`{"data":{"button":2,"position":{"x":0.5,"y":-0.25}},"type":"pointerDown"}`,
			PointerDown{Button: tool.ButtonSecondary, Position: world.Vec2f{X: 0.5, Y: -0.25}}},
		{`{"type":"setHilliness","data":{"hilliness":2.5}}`, SetHilliness{Hilliness: 2.5}},
		{`{"type":"editHeight","data":{"block":4,"height":3}}`, EditHeight{Block: 4, Height: 3}},
		{`{"type":"resync","data":{}}`, Resync{}},
	}

	for _, test := range tests {
		var message Message
		require.NoError(t, JSON.Unmarshal([]byte(test.json), &message), test.json)
		assert.Equal(t, test.expected, message.Data, test.json)
	}
}

func TestJsonIter_InvalidInbound(t *testing.T) {
	var message Message
	require.NoError(t, JSON.Unmarshal([]byte(`{"type":"fireTorpedo","data":{}}`), &message))
	invalid, ok := message.Data.(InvalidInbound)
	require.True(t, ok)
	assert.Equal(t, messageType("fireTorpedo"), invalid.messageType)

	assert.Error(t, JSON.Unmarshal([]byte(`{"data":{}}`), &message))
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"testing"
	"time"

	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/terrain/compressed"
	"github.com/SoftbearStudios/sculpt/server/tool"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	Type string              `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

type receivedStatus struct {
	Tool       string `json:"tool"`
	Surface    string `json:"surface"`
	Generating bool   `json:"generating"`
	Error      string `json:"error"`
}

type receivedUpdate struct {
	Ops   []scene.Op `json:"ops"`
	Reset bool       `json:"reset"`
}

func startHub(t *testing.T) (*Hub, *LocalClient, *Metrics) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.FrameRate = 60
	cfg.Terrain.Resolution = 24
	metrics := NewMetrics(prometheus.NewRegistry())

	hub := NewHub(HubOptions{Config: &cfg, Metrics: metrics})
	go hub.Run()
	t.Cleanup(hub.Stop)

	client := NewLocalClient(256)
	hub.Register(client)
	return hub, client, metrics
}

// next returns the next message of type typ, skipping others.
func next(t *testing.T, client *LocalClient, typ string, out interface{}) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case buf, ok := <-client.Outbound():
			require.True(t, ok, "client closed")
			var r received
			require.NoError(t, JSON.Unmarshal(buf, &r))
			if r.Type == typ {
				// Omitted fields must not keep old values.
				v := reflect.ValueOf(out).Elem()
				v.Set(reflect.Zero(v.Type()))
				require.NoError(t, JSON.Unmarshal(r.Data, out))
				return
			}
		case <-timeout:
			t.Fatalf("no %s received", typ)
		}
	}
}

func send(t *testing.T, client *LocalClient, message string) {
	t.Helper()
	require.NoError(t, client.Receive([]byte(message)))
}

func TestHub_Session(t *testing.T) {
	_, client, metrics := startHub(t)

	var update receivedUpdate
	next(t, client, "sceneUpdate", &update)
	require.NotEmpty(t, update.Ops)
	assert.Equal(t, scene.OpCreateBox, update.Ops[0].Type)
	assert.Equal(t, scene.KindPlatform, update.Ops[0].Box.Kind)

	var status receivedStatus
	next(t, client, "status", &status)
	assert.Equal(t, "none", status.Tool)
	assert.Equal(t, "flat", status.Surface)

	send(t, client, `{"type":"keyDown","data":{"key":"KeyT"}}`)
	next(t, client, "status", &status)
	assert.Equal(t, tool.Terraforming.String(), status.Tool)

	send(t, client, `{"type":"keyDown","data":{"key":"KeyT"}}`)
	next(t, client, "status", &status)
	assert.Equal(t, "none", status.Tool)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.sessions))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.inbound.WithLabelValues("keyDown")))
}

func TestHub_Generate(t *testing.T) {
	_, client, metrics := startHub(t)

	var status receivedStatus
	next(t, client, "status", &status)

	send(t, client, `{"type":"keyDown","data":{"key":"KeyG"}}`)

	// Wait for the height field, it replaces the platform.
	var field *scene.Op
	for field == nil {
		var update receivedUpdate
		next(t, client, "sceneUpdate", &update)
		for i := range update.Ops {
			if update.Ops[i].Type == scene.OpCreateHeightField {
				field = &update.Ops[i]
			}
		}
	}
	require.NotEmpty(t, field.Heights)
	assert.Nil(t, field.Field)

	decoded, err := compressed.Decode(field.Heights)
	require.NoError(t, err)
	assert.Equal(t, 24, decoded.Resolution)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.generations))
}

func TestHub_Resync(t *testing.T) {
	_, client, _ := startHub(t)

	var update receivedUpdate
	next(t, client, "sceneUpdate", &update)
	assert.False(t, update.Reset)

	send(t, client, `{"type":"resync","data":{}}`)
	next(t, client, "sceneUpdate", &update)
	assert.True(t, update.Reset)
	// Platform, then the empty blob batch.
	require.Len(t, update.Ops, 3)
	assert.Equal(t, scene.OpCreateBox, update.Ops[0].Type)
	assert.Equal(t, scene.OpCreateBatch, update.Ops[1].Type)
	assert.Equal(t, scene.OpVisibleCount, update.Ops[2].Type)
}

func TestHub_ReportsErrors(t *testing.T) {
	_, client, _ := startHub(t)

	var status receivedStatus
	next(t, client, "status", &status)

	// Nothing selected
	send(t, client, `{"type":"editHeight","data":{"height":3}}`)
	next(t, client, "status", &status)
	assert.Equal(t, tool.ErrNoSelection.Error(), status.Error)

	// Error is only sent once.
	next(t, client, "status", &status)
	assert.Empty(t, status.Error)

	send(t, client, `{"type":"keyDown","data":{"key":"KeyL"}}`)
	next(t, client, "status", &status)
	assert.Equal(t, tool.LandLeveling.String(), status.Tool)
}

func TestHub_Unregister(t *testing.T) {
	hub, client, metrics := startHub(t)

	var status receivedStatus
	next(t, client, "status", &status)

	hub.Unregister(client)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.sessions) == 0
	}, 5*time.Second, 10*time.Millisecond)

	// Outbound is closed after remaining messages.
	for range client.Outbound() {
	}
}

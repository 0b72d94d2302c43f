// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
	"runtime"
)

// hubStatus is served as JSON by ServeIndex.
type hubStatus struct {
	Sessions       int    `json:"sessions"`
	MaxConnections int    `json:"maxConnections"`
	FrameRate      int    `json:"frameRate"`
	Basis          string `json:"basis"`
	Goroutines     int    `json:"goroutines"`
}

// Status updates the JSON served by ServeIndex.
func (h *Hub) Status() {
	buf, err := JSON.Marshal(hubStatus{
		Sessions:       h.clients.Len,
		MaxConnections: h.config.MaxConnections,
		FrameRate:      h.config.FrameRate,
		Basis:          string(h.config.Terrain.Basis),
		Goroutines:     runtime.NumGoroutine(),
	})
	if err != nil {
		log.Println("status error:", err)
		return
	}
	h.statusJSON.Store(buf)
}

func (h *Hub) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := h.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}

	h.Register(NewSocketClient(conn))
}

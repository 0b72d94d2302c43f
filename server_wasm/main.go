// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build js && wasm

package main

import (
	"github.com/SoftbearStudios/sculpt/server"
	"log"
	"syscall/js"
)

// Outbounds that can queue before the page is considered gone
const localBuffer = 64

var (
	self        = js.Global().Get("self")
	postMessage = self.Get("postMessage")
	localClient = server.NewLocalClient(localBuffer) // only one of these ever exists
)

func init() {
	self.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		data := []byte(args[0].Get("data").String())

		if err := localClient.Receive(data); err != nil {
			log.Println("unmarshal error:", err.Error())
		}
		return nil
	}))
}

func main() {
	cfg := server.DefaultConfig()
	// Browsers give a worker one thread.
	cfg.Terrain.Workers = 1
	cfg.MaxConnections = 1

	hub := server.NewHub(server.HubOptions{Config: &cfg})

	log.Println("sandbox WASM server started")

	go func() {
		for buf := range localClient.Outbound() {
			postMessage.Invoke(string(buf))
		}
	}()

	hub.Register(localClient)

	hub.Run()
}

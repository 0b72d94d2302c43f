// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/sculpt/server/tool"
	"github.com/SoftbearStudios/sculpt/server/world"
)

const (
	debugPeriod  = time.Second * 5
	statusPeriod = time.Second
)

type HubOptions struct {
	Config  *Config
	Metrics *Metrics // may be nil
	// DebugLog is a csv file that Debug appends to, if not empty.
	DebugLog string
}

// Hub owns every Session. All sandbox state is only touched by the hub goroutine.
type Hub struct {
	config   Config
	options  tool.Options
	metrics  *Metrics
	debugLog string

	clients ClientList // implemented as double-linked list

	// Served atomically by HTTP
	statusJSON atomic.Value

	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client
	done       chan struct{}
	stopOnce   sync.Once

	// Timer based events
	updatePeriod time.Duration
	updateTicker *time.Ticker
	updateTime   time.Time
	statusTicker *time.Ticker
	debugTicker  *time.Ticker
}

func NewHub(options HubOptions) *Hub {
	config := DefaultConfig()
	if options.Config != nil {
		config = *options.Config
	}
	connections := config.MaxConnections
	period := world.FramePeriod(config.FrameRate)

	return &Hub{
		config:       config,
		options:      config.ToolOptions(),
		metrics:      options.Metrics,
		debugLog:     options.DebugLog,
		inbound:      make(chan SignedInbound, 16+connections*2),
		register:     make(chan Client, 8+connections/64),
		unregister:   make(chan Client, 16+connections/32),
		done:         make(chan struct{}),
		updatePeriod: period,
		updateTicker: time.NewTicker(period),
		updateTime:   time.Now(),
		statusTicker: time.NewTicker(statusPeriod),
		debugTicker:  time.NewTicker(debugPeriod),
	}
}

// Run runs the hub until Stop is called. Sessions still connected are closed.
func (h *Hub) Run() {
	defer func() {
		h.updateTicker.Stop()
		h.statusTicker.Stop()
		h.debugTicker.Stop()

		for client := h.clients.First; client != nil; client = h.clients.Remove(client) {
			h.closeClient(client)
		}
		log.Println("hub stopped")
	}()

	h.Status()

	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			data := client.Data()
			data.Hub = h
			data.Session = newSession(client, h.options, h.metrics)
			client.Init()

			// Client starts with the platform.
			data.Session.flush()

			if h.metrics != nil {
				h.metrics.sessions.Inc()
			}
		case client := <-h.unregister:
			if client.Data().Hub != h {
				break // Already unregistered
			}
			h.closeClient(client)
			h.clients.Remove(client)

			if h.metrics != nil {
				h.metrics.sessions.Dec()
			}
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				h.handle(in)

				if n--; n <= 0 {
					break
				}

				in = <-h.inbound
			}
		case <-h.updateTicker.C:
			now := time.Now()
			timeDelta := now.Sub(h.updateTime)
			h.updateTime = now

			// Don't let a stall teleport the camera.
			if timeDelta > h.updatePeriod*4 {
				timeDelta = h.updatePeriod * 4
			}

			h.Update(world.Seconds(timeDelta))
		case <-h.statusTicker.C:
			h.Status()
		case <-h.debugTicker.C:
			h.Debug()
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handle(in SignedInbound) {
	data := in.Client.Data()

	// If not same hub the message is old
	if h != data.Hub || data.Session == nil {
		return
	}

	if h.metrics != nil {
		h.metrics.inbound.WithLabelValues(string(typeName(in.Inbound))).Inc()
	}

	if err := in.Inbound.Inbound(h, in.Client, data.Session); err != nil {
		data.Session.report(err)
	}
}

// Update advances every session.
func (h *Hub) Update(seconds float32) {
	defer h.timeFunction("update", time.Now())

	start := time.Now()
	for client := h.clients.First; client != nil; client = client.Data().Next {
		client.Data().Session.update(seconds)
	}
	if h.metrics != nil {
		h.metrics.frameSeconds.Observe(time.Since(start).Seconds())
	}
}

func (h *Hub) closeClient(client Client) {
	data := client.Data()
	if data.Session != nil {
		data.Session.close()
	}
	client.Close()
	data.Hub = nil
}

// Stop stops Run. It may be called more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Register adds a client. It blocks if the hub is busy.
func (h *Hub) Register(client Client) {
	h.register <- client
}

// Unregister removes a client. Clients call it from Destroy.
func (h *Hub) Unregister(client Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ReceiveSigned queues an inbound. If block is false and the hub is congested, the inbound is dropped.
func (h *Hub) ReceiveSigned(in SignedInbound, block bool) {
	if block {
		select {
		case h.inbound <- in:
		case <-h.done:
		}
		return
	}
	select {
	case h.inbound <- in:
	default:
		if h.metrics != nil {
			h.metrics.dropped.Inc()
		}
	}
}

// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"sync"
)

// LocalClient is an in-process client. Outbounds are encoded to JSON as they would be for a socket.
type LocalClient struct {
	ClientData
	hub  *Hub
	out  chan []byte
	once sync.Once
}

func NewLocalClient(buffer int) *LocalClient {
	return &LocalClient{
		out: make(chan []byte, buffer),
	}
}

// Outbound receives encoded messages. It is closed when the client is unregistered.
func (client *LocalClient) Outbound() <-chan []byte {
	return client.out
}

// Receive decodes a message from the client and queues it.
func (client *LocalClient) Receive(buf []byte) error {
	var message Message
	if err := JSON.Unmarshal(buf, &message); err != nil {
		return err
	}
	if _, ok := message.Data.(InvalidInbound); ok {
		return nil
	}
	client.hub.ReceiveSigned(SignedInbound{Client: client, Inbound: message.Data.(Inbound)}, true)
	return nil
}

func (client *LocalClient) Close() {
	close(client.out)
}

func (client *LocalClient) Data() *ClientData {
	return &client.ClientData
}

func (client *LocalClient) Destroy() {
	client.once.Do(func() {
		if client.hub != nil {
			go client.hub.Unregister(client)
		}
	})
}

func (client *LocalClient) Init() {
	client.hub = client.Hub
}

func (client *LocalClient) Send(out Outbound) {
	buf, err := JSON.Marshal(Message{Data: out})
	if err != nil {
		panic(err)
	}
	out.Pool()

	select {
	case client.out <- buf:
	default:
		// Reader is gone
		client.Destroy()
	}
}

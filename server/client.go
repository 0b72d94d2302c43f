// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
)

var errListState = errors.New("client list: invalid state")

type (
	// Client is a connection to the Hub. Each client has its own sandbox Session.
	Client interface {
		// Init is called by the hub goroutine when the client is registered.
		// Data().Hub and Data().Session are set by then.
		Init()

		// Close is called by (only) the hub goroutine when the client is unregistered.
		// No more outbounds are sent after it.
		Close()

		// Send queues an outbound. It is only called by the hub goroutine.
		Send(out Outbound)

		// Destroy asks the hub to unregister the client. It may be called anywhere, any number of times.
		Destroy()

		// Data allows the Client to be linked into a ClientList.
		Data() *ClientData
	}

	// ClientData is the data all clients must have.
	ClientData struct {
		Session  *Session
		Hub      *Hub
		Previous Client
		Next     Client
	}

	// ClientList is an intrusive doubly-linked list of Clients.
	// Iterate with:
	// for client := list.First; client != nil; client = client.Data().Next {}
	// Or remove everything while iterating with:
	// for client := list.First; client != nil; client = list.Remove(client) {}
	ClientList struct {
		First Client
		Last  Client
		Len   int
	}
)

func (list *ClientList) contains(client Client) bool {
	data := client.Data()
	return data.Previous != nil || data.Next != nil || list.First == client
}

// Add appends client. It panics if client is already in a list.
func (list *ClientList) Add(client Client) {
	if list.contains(client) {
		panic(errListState)
	}

	data := client.Data()
	if list.Last == nil {
		list.First = client
	} else {
		list.Last.Data().Next = client
		data.Previous = list.Last
	}
	list.Last = client
	list.Len++
}

// Remove unlinks client and returns the client that followed it.
func (list *ClientList) Remove(client Client) Client {
	if !list.contains(client) {
		panic(errListState)
	}

	data := client.Data()
	next := data.Next

	if data.Previous == nil {
		list.First = next
	} else {
		data.Previous.Data().Next = next
	}
	if next == nil {
		list.Last = data.Previous
	} else {
		next.Data().Previous = data.Previous
	}

	data.Previous = nil
	data.Next = nil
	list.Len--
	return next
}

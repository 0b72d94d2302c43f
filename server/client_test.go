// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(list *ClientList) (clients []Client) {
	for client := list.First; client != nil; client = client.Data().Next {
		clients = append(clients, client)
	}
	return
}

func TestClientList(t *testing.T) {
	var list ClientList
	a, b, c := NewLocalClient(1), NewLocalClient(1), NewLocalClient(1)

	list.Add(a)
	list.Add(b)
	list.Add(c)
	assert.Equal(t, 3, list.Len)
	assert.Equal(t, []Client{a, b, c}, collect(&list))
	assert.Panics(t, func() { list.Add(b) })

	assert.Equal(t, Client(c), list.Remove(b))
	assert.Equal(t, []Client{a, c}, collect(&list))
	assert.Panics(t, func() { list.Remove(b) })

	assert.Nil(t, list.Remove(c))
	assert.Equal(t, Client(a), list.Last)

	for client := list.First; client != nil; client = list.Remove(client) {
	}
	assert.Equal(t, 0, list.Len)
	assert.Nil(t, list.First)
	assert.Nil(t, list.Last)
}

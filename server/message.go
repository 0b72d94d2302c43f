// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
	"strings"
)

var (
	// Valid inbound message types: messageType to type
	inboundMessageTypes = make(map[messageType]reflect.Type)
	// Valid outbound message types: to messageType
	outboundMessageTypes = make(map[reflect.Type]messageType)
)

type (
	// Inbound is a message from a client. It is run on the hub goroutine.
	Inbound interface {
		Inbound(hub *Hub, client Client, session *Session) error
	}

	Outbound interface {
		// Pool returns the contents of outbound to their sync.Pool
		Pool()
	}

	Message struct {
		Data interface{}
	}

	messageJSON struct {
		Data interface{} `json:"data"`
		Type messageType `json:"type"`
	}

	messageType string

	SignedInbound struct {
		Client Client
		Inbound
	}
)

func uncapitalize(str string) string {
	return strings.ToLower(str[0:1]) + str[1:]
}

func typeName(v interface{}) messageType {
	return messageType(uncapitalize(reflect.Indirect(reflect.ValueOf(v)).Type().Name()))
}

func registerInbound(inbounds ...Inbound) {
	for _, in := range inbounds {
		inboundMessageTypes[typeName(in)] = reflect.TypeOf(in)
	}
}

func registerOutbound(outbounds ...Outbound) {
	for _, out := range outbounds {
		outboundMessageTypes[reflect.TypeOf(out)] = typeName(out)
	}
}

func (message Message) messageJSON() messageJSON {
	typ := reflect.TypeOf(message.Data)

	// Outbounds are marshaled
	mType, ok := outboundMessageTypes[typ]
	if !ok {
		// Panic because outbounds only come from trusted sources
		panic("invalid outbound message type " + typ.String())
	}

	return messageJSON{Data: message.Data, Type: mType}
}

// Overridden by jsoniter
func (message Message) MarshalJSON() ([]byte, error) {
	panic("unimplemented")
}

// Overridden by jsoniter
func (message *Message) UnmarshalJSON([]byte) error {
	panic("unimplemented")
}

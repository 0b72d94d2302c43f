// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/go-gl/mathgl/mgl32"
	jsoniter "github.com/json-iterator/go"
	"io"
	"reflect"
	"unsafe"
)

// JSON is the codec of the wire protocol. Make sure functions get run first.
var JSON = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(mgl32.Mat4{}).String(), encodeMat4, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Vec2f{}).String(), encodeVec2f, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// Encodes a transform as a flat column-major array.
func encodeMat4(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	m := (*mgl32.Mat4)(ptr)
	stream.WriteArrayStart()
	for i, f := range m {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteFloat32Lossy(f)
	}
	stream.WriteArrayEnd()
}

func encodeVec2f(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	v := (*world.Vec2f)(ptr)
	stream.WriteObjectStart()
	stream.WriteObjectField("x")
	stream.WriteFloat32Lossy(v.X)
	stream.WriteMore()
	stream.WriteObjectField("y")
	stream.WriteFloat32Lossy(v.Y)
	stream.WriteObjectEnd()
}

// decodeMessage reads {"type","data"} in any order. Unknown types decode as InvalidInbound.
func decodeMessage(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var (
		mType messageType
		typed bool
		data  []byte
	)

	iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
		switch field {
		case "type":
			mType = messageType(i.ReadString())
			typed = true
		case "data":
			// Copy since the iterator reuses its buffer.
			data = append([]byte(nil), i.SkipAndReturnBytes()...)
		default:
			i.Skip()
		}
		return true
	})

	if iter.Error != nil {
		return
	}
	if !typed {
		iter.ReportError("decode message", "no inbound message type")
		return
	}

	inboundType, ok := inboundMessageTypes[mType]
	if !ok {
		(*Message)(ptr).Data = InvalidInbound{messageType: mType}
		return
	}

	in := reflect.New(inboundType)
	if len(data) > 0 {
		sub := iter.Pool().BorrowIterator(data)
		defer iter.Pool().ReturnIterator(sub)

		sub.ReadVal(in.Interface())
		if sub.Error != nil && sub.Error != io.EOF {
			iter.ReportError("decode message", sub.Error.Error())
			return
		}
	}

	(*Message)(ptr).Data = in.Elem().Interface()
}

package net

import (
	"fmt"

	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// PacketSize returns the encoded width of p including its header. ok is false for
// packets whose body width is not declared.
func PacketSize(p EncodablePacket) (size int, ok bool) {
	n, ok := codec.SizeOf(p)
	if !ok {
		return 0, false
	}
	return HeaderSize + n, true
}

// EncodePacket writes the header and body of p into a growable buffer.
func EncodePacket(p EncodablePacket) []byte {
	size, _ := PacketSize(p)
	b := buffer.NewByteBuffer(size)
	WriteHeader(b, p)
	p.Encode(b)
	return b.Bytes()
}

// EncodePacketFast writes p into a buffer allocated to exactly its width. A wrong
// width computation panics with buffer.ErrCapacityExceeded.
func EncodePacketFast(p EncodablePacket) []byte {
	size, ok := PacketSize(p)
	if !ok {
		return EncodePacket(p)
	}
	b := buffer.NewFastBuffer(size)
	WriteHeader(b, p)
	p.Encode(b)
	return b.Bytes()
}

// DecodePacket parses one plaintext packet. Encrypted bodies must be opened with a
// SessionBox first.
func DecodePacket(data []byte, reg *PacketRegistry) (PacketHeader, Packet, error) {
	r := buffer.NewByteReader(data)
	var h PacketHeader
	if err := h.Decode(r); err != nil {
		return h, nil, err
	}
	pi, ok := reg.Info(h.ID)
	if !ok {
		return h, nil, fmt.Errorf("%w: %d", ErrUnknownPacket, h.ID)
	}
	p := pi.New()
	d, ok := p.(codec.Decoder)
	if !ok {
		return h, nil, fmt.Errorf("%w: %s", ErrNotDecodable, pi.Name)
	}
	if err := d.Decode(r); err != nil {
		return h, nil, codec.Wrap(pi.Name, err)
	}
	return h, p, nil
}

package net

import (
	"fmt"

	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// HeaderSize is the encoded width of PacketHeader: id u16 followed by the encrypted flag.
const HeaderSize = codec.SizeU16 + codec.SizeBool

// PacketHeader starts every packet on the wire.
type PacketHeader struct {
	ID        uint16
	Encrypted bool
}

func (PacketHeader) StaticSize() int {
	return HeaderSize
}

func (h PacketHeader) Encode(w buffer.Writer) {
	w.WriteU16(h.ID)
	w.WriteBool(h.Encrypted)
}

func (h *PacketHeader) Decode(r buffer.Reader) (err error) {
	if h.ID, err = r.ReadU16(); err != nil {
		return codec.Wrap("PacketHeader.id", err)
	}
	if h.Encrypted, err = codec.ReadBool(r); err != nil {
		return codec.Wrap("PacketHeader.encrypted", err)
	}
	return nil
}

func (h PacketHeader) String() string {
	return fmt.Sprintf("packet %d (encrypted=%t)", h.ID, h.Encrypted)
}

// EncodeHeader returns the HeaderSize bytes of h.
func EncodeHeader(h PacketHeader) []byte {
	b := buffer.NewFastBuffer(HeaderSize)
	h.Encode(b)
	return b.Bytes()
}

// DecodeHeader parses the header at the start of buf.
func DecodeHeader(buf []byte) (PacketHeader, error) {
	var h PacketHeader
	if len(buf) < HeaderSize {
		return h, codec.Wrap("PacketHeader", codec.ErrUnexpectedEOF)
	}
	err := h.Decode(buffer.NewByteReader(buf))
	return h, err
}

// WriteHeader writes the header of p. Inline packet bodies start right after it,
// at position HeaderSize.
func WriteHeader(w buffer.Writer, p Packet) {
	HeaderOf(p).Encode(w)
}

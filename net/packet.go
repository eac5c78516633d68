// Package net frames wire packets: the fixed header, the packet capability a type
// implements to travel on the wire, the packet registry, body sealing for encrypted
// packets and the limiters that pace voice and group fan-out.
package net

import (
	"github.com/lcx/levelsync/codec"
)

// SizeKind classifies how a packet body's width is known.
type SizeKind uint8

const (
	// SizeInline marks a packet with no declared structure. Its body is written
	// directly into a buffer by the handler that produces it.
	SizeInline SizeKind = iota
	// SizeStatic marks a body whose width does not depend on the value.
	SizeStatic
	// SizeDynamic marks a body whose width is computed per value.
	SizeDynamic
)

func (k SizeKind) String() string {
	switch k {
	case SizeStatic:
		return "static"
	case SizeDynamic:
		return "dynamic"
	}
	return "inline"
}

// Packet ties a type to the wire: a unique id, the transport channel it travels on
// and whether its body is sealed.
type Packet interface {
	PacketID() uint16
	// Reliable reports whether the packet goes over the reliable ordered channel.
	Reliable() bool
	Encrypted() bool
}

// EncodablePacket is a packet with a declared body structure.
type EncodablePacket interface {
	Packet
	codec.Encoder
}

// KindOf reports the size classification of p.
func KindOf(p Packet) SizeKind {
	switch p.(type) {
	case codec.StaticSizer:
		return SizeStatic
	case codec.DynamicSizer:
		return SizeDynamic
	}
	return SizeInline
}

// HeaderOf returns the header that precedes p on the wire.
func HeaderOf(p Packet) PacketHeader {
	return PacketHeader{ID: p.PacketID(), Encrypted: p.Encrypted()}
}

// Embeddable channel markers. Embed exactly one as the first field of a packet type.
type (
	// ReliableChannel is a plain packet on the reliable ordered channel.
	ReliableChannel struct{}
	// UnreliableChannel is a plain packet on the unreliable channel.
	UnreliableChannel struct{}
	// SealedChannel is an encrypted packet on the reliable ordered channel.
	SealedChannel struct{}
)

func (ReliableChannel) Reliable() bool    { return true }
func (ReliableChannel) Encrypted() bool   { return false }
func (UnreliableChannel) Reliable() bool  { return false }
func (UnreliableChannel) Encrypted() bool { return false }
func (SealedChannel) Reliable() bool      { return true }
func (SealedChannel) Encrypted() bool     { return true }

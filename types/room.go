// Package types holds the domain records exchanged between clients and the server.
// Every record is statically sized; its width constant is the sum of its fields'.
package types

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
)

// Room setting flag bits.
const (
	roomInviteOnly    = 0
	roomPublicInvites = 1
)

// SizeRoomSettings is the encoded width of RoomSettings.
const SizeRoomSettings = codec.SizeBits + codec.SizeU64

// RoomSettings carries the room flags and a reserved region for future ones. The
// reserved region is always written as zero and ignored when read.
type RoomSettings struct {
	Flags codec.Bits
}

func (s RoomSettings) InviteOnly() bool {
	return s.Flags.Get(roomInviteOnly)
}

func (s *RoomSettings) SetInviteOnly(v bool) {
	s.Flags.Set(roomInviteOnly, v)
}

func (s RoomSettings) PublicInvites() bool {
	return s.Flags.Get(roomPublicInvites)
}

func (s *RoomSettings) SetPublicInvites(v bool) {
	s.Flags.Set(roomPublicInvites, v)
}

func (RoomSettings) StaticSize() int { return SizeRoomSettings }

func (s RoomSettings) Encode(w buffer.Writer) {
	s.Flags.Encode(w)
	w.WriteU64(0)
}

func (s *RoomSettings) Decode(r buffer.Reader) error {
	if err := s.Flags.Decode(r); err != nil {
		return codec.Wrap("flags", err)
	}
	if _, err := r.ReadU64(); err != nil {
		return codec.Wrap("reserved", err)
	}
	return nil
}

// SizeRoomInfo is the encoded width of RoomInfo.
const SizeRoomInfo = codec.SizeU32 + codec.SizeI32 + codec.SizeU32 + SizeRoomSettings

// RoomInfo identifies a room and how to join it.
type RoomInfo struct {
	ID       uint32
	Owner    int32
	Token    uint32
	Settings RoomSettings
}

func (RoomInfo) StaticSize() int { return SizeRoomInfo }

func (ri RoomInfo) Encode(w buffer.Writer) {
	w.WriteU32(ri.ID)
	w.WriteI32(ri.Owner)
	w.WriteU32(ri.Token)
	ri.Settings.Encode(w)
}

func (ri *RoomInfo) Decode(r buffer.Reader) (err error) {
	if ri.ID, err = r.ReadU32(); err != nil {
		return codec.Wrap("id", err)
	}
	if ri.Owner, err = r.ReadI32(); err != nil {
		return codec.Wrap("owner", err)
	}
	if ri.Token, err = r.ReadU32(); err != nil {
		return codec.Wrap("token", err)
	}
	return codec.Wrap("settings", ri.Settings.Decode(r))
}

package packets

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
	"github.com/lcx/levelsync/net"
	"github.com/lcx/levelsync/types"
)

// Server packet ids.
const (
	GlobalPlayerListID     uint16 = 21000
	RoomCreatedID          uint16 = 21001
	RoomJoinedID           uint16 = 21002
	RoomJoinFailedID       uint16 = 21003
	RoomPlayerListID       uint16 = 21004
	LevelListID            uint16 = 21005
	LevelPlayerCountID     uint16 = 21006
	RoomInfoID             uint16 = 21007
	RoomInviteID           uint16 = 21008
	PlayerProfilesID       uint16 = 22000
	LevelDataID            uint16 = 22001
	PlayerMetadataID       uint16 = 22002
	VoiceBroadcastID       uint16 = 22010
	ChatMessageBroadcastID uint16 = 22011
)

// The following packets have no declared structure. Their bodies are written in
// place by the handlers that produce them: a u32 record count followed by records.

// GlobalPlayerList body: count, then PlayerPreviewAccountData per online player.
type GlobalPlayerList struct{ net.ReliableChannel }

// RoomPlayerList body: RoomInfo, count, then PlayerRoomPreviewAccountData per member.
type RoomPlayerList struct{ net.ReliableChannel }

// LevelList body: count, then LevelEntry per tracked level.
type LevelList struct{ net.ReliableChannel }

// LevelPlayerCount body: count, then LevelEntry per requested level.
type LevelPlayerCount struct{ net.UnreliableChannel }

// PlayerProfiles body: count, then PlayerAccountData per requested account.
type PlayerProfiles struct{ net.ReliableChannel }

// LevelData body: count, then AssociatedPlayerData per other player on the level.
type LevelData struct{ net.UnreliableChannel }

// PlayerMetadata body: count, then AssociatedPlayerMetadata per other player on the level.
type PlayerMetadata struct{ net.UnreliableChannel }

func (GlobalPlayerList) PacketID() uint16 { return GlobalPlayerListID }
func (RoomPlayerList) PacketID() uint16   { return RoomPlayerListID }
func (LevelList) PacketID() uint16        { return LevelListID }
func (LevelPlayerCount) PacketID() uint16 { return LevelPlayerCountID }
func (PlayerProfiles) PacketID() uint16   { return PlayerProfilesID }
func (LevelData) PacketID() uint16        { return LevelDataID }
func (PlayerMetadata) PacketID() uint16   { return PlayerMetadataID }

// ListHeaderSize is the width of the header plus the record count of an inline list.
const ListHeaderSize = net.HeaderSize + codec.SizeU32

// ListSize is the exact width of an inline list packet holding n records of recordSize.
func ListSize(n, recordSize int) int {
	return ListHeaderSize + n*recordSize
}

type RoomCreated struct {
	net.UnreliableChannel
	Info types.RoomInfo
}

func (RoomCreated) PacketID() uint16 { return RoomCreatedID }
func (RoomCreated) StaticSize() int  { return types.SizeRoomInfo }

func (p RoomCreated) Encode(w buffer.Writer) {
	p.Info.Encode(w)
}

func (p *RoomCreated) Decode(r buffer.Reader) error {
	return codec.Wrap("info", p.Info.Decode(r))
}

type RoomJoined struct {
	net.UnreliableChannel
}

func (RoomJoined) PacketID() uint16              { return RoomJoinedID }
func (RoomJoined) StaticSize() int               { return 0 }
func (RoomJoined) Encode(buffer.Writer)          {}
func (*RoomJoined) Decode(r buffer.Reader) error { return nil }

type RoomJoinFailed struct {
	net.UnreliableChannel
	Message string
}

func (RoomJoinFailed) PacketID() uint16   { return RoomJoinFailedID }
func (p RoomJoinFailed) EncodedSize() int { return codec.StringSize(p.Message) }

func (p RoomJoinFailed) Encode(w buffer.Writer) {
	codec.WriteString(w, p.Message)
}

func (p *RoomJoinFailed) Decode(r buffer.Reader) (err error) {
	p.Message, err = codec.ReadString(r)
	return codec.Wrap("message", err)
}

type RoomInfo struct {
	net.UnreliableChannel
	Info types.RoomInfo
}

func (RoomInfo) PacketID() uint16 { return RoomInfoID }
func (RoomInfo) StaticSize() int  { return types.SizeRoomInfo }

func (p RoomInfo) Encode(w buffer.Writer) {
	p.Info.Encode(w)
}

func (p *RoomInfo) Decode(r buffer.Reader) error {
	return codec.Wrap("info", p.Info.Decode(r))
}

type RoomInvite struct {
	net.UnreliableChannel
	PlayerData types.PlayerRoomPreviewAccountData
	RoomID     uint32
	RoomToken  uint32
}

func (RoomInvite) PacketID() uint16 { return RoomInviteID }
func (RoomInvite) StaticSize() int {
	return types.SizePlayerRoomPreviewAccountData + codec.SizeU32 + codec.SizeU32
}

func (p RoomInvite) Encode(w buffer.Writer) {
	p.PlayerData.Encode(w)
	w.WriteU32(p.RoomID)
	w.WriteU32(p.RoomToken)
}

func (p *RoomInvite) Decode(r buffer.Reader) (err error) {
	if err = p.PlayerData.Decode(r); err != nil {
		return codec.Wrap("playerData", err)
	}
	if p.RoomID, err = r.ReadU32(); err != nil {
		return codec.Wrap("roomID", err)
	}
	if p.RoomToken, err = r.ReadU32(); err != nil {
		return codec.Wrap("roomToken", err)
	}
	return nil
}

// VoiceBroadcast relays one voice frame to the other players on a level.
type VoiceBroadcast struct {
	net.SealedChannel
	PlayerID int32
	Data     codec.RemainderBytes
}

func (VoiceBroadcast) PacketID() uint16   { return VoiceBroadcastID }
func (p VoiceBroadcast) EncodedSize() int { return codec.SizeI32 + p.Data.EncodedSize() }

func (p VoiceBroadcast) Encode(w buffer.Writer) {
	w.WriteI32(p.PlayerID)
	p.Data.Encode(w)
}

func (p *VoiceBroadcast) Decode(r buffer.Reader) (err error) {
	if p.PlayerID, err = r.ReadI32(); err != nil {
		return codec.Wrap("playerID", err)
	}
	return codec.Wrap("data", p.Data.Decode(r))
}

type ChatMessageBroadcast struct {
	net.ReliableChannel
	PlayerID int32
	Message  string
}

func (ChatMessageBroadcast) PacketID() uint16 { return ChatMessageBroadcastID }
func (p ChatMessageBroadcast) EncodedSize() int {
	return codec.SizeI32 + codec.StringSize(p.Message)
}

func (p ChatMessageBroadcast) Encode(w buffer.Writer) {
	w.WriteI32(p.PlayerID)
	codec.WriteString(w, p.Message)
}

func (p *ChatMessageBroadcast) Decode(r buffer.Reader) (err error) {
	if p.PlayerID, err = r.ReadI32(); err != nil {
		return codec.Wrap("playerID", err)
	}
	p.Message, err = codec.ReadString(r)
	return codec.Wrap("message", err)
}

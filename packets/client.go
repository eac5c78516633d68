// Package packets defines every packet exchanged between the game server and its
// clients. Client packets use ids in the 11000 range, server packets the 21000 and
// 22000 ranges.
package packets

import (
	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/codec"
	"github.com/lcx/levelsync/net"
	"github.com/lcx/levelsync/types"
)

// Client packet ids.
const (
	RequestProfilesID         uint16 = 11001
	LevelJoinID               uint16 = 11002
	LevelLeaveID              uint16 = 11003
	PlayerDataID              uint16 = 11004
	SyncPlayerMetadataID      uint16 = 11005
	VoiceID                   uint16 = 11010
	ChatMessageID             uint16 = 11011
	RequestGlobalPlayerListID uint16 = 11100
	RequestLevelListID        uint16 = 11101
	RequestPlayerCountID      uint16 = 11102
)

const (
	// MaxProfileRequests is how many account ids one profile request can carry.
	MaxProfileRequests = 128
	// MaxPlayerCountRequests caps the level ids of one player count request.
	MaxPlayerCountRequests = 128
)

// RequestProfiles asks for the profiles of up to MaxProfileRequests accounts. The
// list ends at the first zero id.
type RequestProfiles struct {
	net.ReliableChannel
	IDs [MaxProfileRequests]int32
}

func (RequestProfiles) PacketID() uint16 { return RequestProfilesID }
func (RequestProfiles) StaticSize() int  { return codec.ArraySize(MaxProfileRequests, codec.SizeI32) }

func (p RequestProfiles) Encode(w buffer.Writer) {
	codec.EncodeArrayWith(w, p.IDs[:], buffer.Writer.WriteI32)
}

func (p *RequestProfiles) Decode(r buffer.Reader) error {
	return codec.Wrap("ids", codec.DecodeArrayWith(r, p.IDs[:], buffer.Reader.ReadI32))
}

// Requested returns the ids before the first zero.
func (p *RequestProfiles) Requested() []int32 {
	for i, id := range p.IDs {
		if id == 0 {
			return p.IDs[:i]
		}
	}
	return p.IDs[:]
}

// NewRequestProfiles fills a request with ids, dropping any past the capacity.
func NewRequestProfiles(ids ...int32) RequestProfiles {
	var p RequestProfiles
	copy(p.IDs[:], ids)
	return p
}

type LevelJoin struct {
	net.ReliableChannel
	LevelID int32
}

func (LevelJoin) PacketID() uint16 { return LevelJoinID }
func (LevelJoin) StaticSize() int  { return codec.SizeI32 }

func (p LevelJoin) Encode(w buffer.Writer) {
	w.WriteI32(p.LevelID)
}

func (p *LevelJoin) Decode(r buffer.Reader) (err error) {
	p.LevelID, err = r.ReadI32()
	return codec.Wrap("levelID", err)
}

type LevelLeave struct {
	net.ReliableChannel
}

func (LevelLeave) PacketID() uint16              { return LevelLeaveID }
func (LevelLeave) StaticSize() int               { return 0 }
func (LevelLeave) Encode(buffer.Writer)          {}
func (*LevelLeave) Decode(r buffer.Reader) error { return nil }

// PlayerData is a movement update from a player on a level.
type PlayerData struct {
	net.UnreliableChannel
	Data types.PlayerData
}

func (PlayerData) PacketID() uint16 { return PlayerDataID }
func (PlayerData) StaticSize() int  { return types.SizePlayerData }

func (p PlayerData) Encode(w buffer.Writer) {
	p.Data.Encode(w)
}

func (p *PlayerData) Decode(r buffer.Reader) error {
	return codec.Wrap("data", p.Data.Decode(r))
}

type SyncPlayerMetadata struct {
	net.UnreliableChannel
	Data types.PlayerMetadata
}

func (SyncPlayerMetadata) PacketID() uint16 { return SyncPlayerMetadataID }
func (SyncPlayerMetadata) StaticSize() int  { return types.SizePlayerMetadata }

func (p SyncPlayerMetadata) Encode(w buffer.Writer) {
	p.Data.Encode(w)
}

func (p *SyncPlayerMetadata) Decode(r buffer.Reader) error {
	return codec.Wrap("data", p.Data.Decode(r))
}

// Voice carries one encoded audio frame. The frame is opaque to the server.
type Voice struct {
	net.SealedChannel
	Data codec.RemainderBytes
}

func (Voice) PacketID() uint16   { return VoiceID }
func (p Voice) EncodedSize() int { return p.Data.EncodedSize() }

func (p Voice) Encode(w buffer.Writer) {
	p.Data.Encode(w)
}

func (p *Voice) Decode(r buffer.Reader) error {
	return codec.Wrap("data", p.Data.Decode(r))
}

type ChatMessage struct {
	net.ReliableChannel
	Message string
}

func (ChatMessage) PacketID() uint16   { return ChatMessageID }
func (p ChatMessage) EncodedSize() int { return codec.StringSize(p.Message) }

func (p ChatMessage) Encode(w buffer.Writer) {
	codec.WriteString(w, p.Message)
}

func (p *ChatMessage) Decode(r buffer.Reader) (err error) {
	p.Message, err = codec.ReadString(r)
	return codec.Wrap("message", err)
}

type RequestGlobalPlayerList struct {
	net.ReliableChannel
}

func (RequestGlobalPlayerList) PacketID() uint16              { return RequestGlobalPlayerListID }
func (RequestGlobalPlayerList) StaticSize() int               { return 0 }
func (RequestGlobalPlayerList) Encode(buffer.Writer)          {}
func (*RequestGlobalPlayerList) Decode(r buffer.Reader) error { return nil }

type RequestLevelList struct {
	net.ReliableChannel
}

func (RequestLevelList) PacketID() uint16              { return RequestLevelListID }
func (RequestLevelList) StaticSize() int               { return 0 }
func (RequestLevelList) Encode(buffer.Writer)          {}
func (*RequestLevelList) Decode(r buffer.Reader) error { return nil }

// RequestPlayerCount asks for the player counts of specific levels.
type RequestPlayerCount struct {
	net.UnreliableChannel
	LevelIDs []int32
}

func (RequestPlayerCount) PacketID() uint16 { return RequestPlayerCountID }

func (p RequestPlayerCount) EncodedSize() int {
	return codec.SizeLenPrefix + len(p.LevelIDs)*codec.SizeI32
}

func (p RequestPlayerCount) Encode(w buffer.Writer) {
	codec.EncodeSliceWith(w, p.LevelIDs, buffer.Writer.WriteI32)
}

func (p *RequestPlayerCount) Decode(r buffer.Reader) (err error) {
	p.LevelIDs, err = codec.DecodeSliceWith(r, MaxPlayerCountRequests, buffer.Reader.ReadI32)
	return codec.Wrap("levelIDs", err)
}

package packets

import (
	"errors"

	"github.com/lcx/levelsync/net"
)

// Register adds every client and server packet to reg.
func Register(reg *net.PacketRegistry) error {
	return errors.Join(
		net.RegisterPacket[RequestProfiles](reg, "RequestProfiles"),
		net.RegisterPacket[LevelJoin](reg, "LevelJoin"),
		net.RegisterPacket[LevelLeave](reg, "LevelLeave"),
		net.RegisterPacket[PlayerData](reg, "PlayerData"),
		net.RegisterPacket[SyncPlayerMetadata](reg, "SyncPlayerMetadata"),
		net.RegisterPacket[Voice](reg, "Voice"),
		net.RegisterPacket[ChatMessage](reg, "ChatMessage"),
		net.RegisterPacket[RequestGlobalPlayerList](reg, "RequestGlobalPlayerList"),
		net.RegisterPacket[RequestLevelList](reg, "RequestLevelList"),
		net.RegisterPacket[RequestPlayerCount](reg, "RequestPlayerCount"),

		net.RegisterPacket[GlobalPlayerList](reg, "GlobalPlayerList"),
		net.RegisterPacket[RoomCreated](reg, "RoomCreated"),
		net.RegisterPacket[RoomJoined](reg, "RoomJoined"),
		net.RegisterPacket[RoomJoinFailed](reg, "RoomJoinFailed"),
		net.RegisterPacket[RoomPlayerList](reg, "RoomPlayerList"),
		net.RegisterPacket[LevelList](reg, "LevelList"),
		net.RegisterPacket[LevelPlayerCount](reg, "LevelPlayerCount"),
		net.RegisterPacket[RoomInfo](reg, "RoomInfo"),
		net.RegisterPacket[RoomInvite](reg, "RoomInvite"),
		net.RegisterPacket[PlayerProfiles](reg, "PlayerProfiles"),
		net.RegisterPacket[LevelData](reg, "LevelData"),
		net.RegisterPacket[PlayerMetadata](reg, "PlayerMetadata"),
		net.RegisterPacket[VoiceBroadcast](reg, "VoiceBroadcast"),
		net.RegisterPacket[ChatMessageBroadcast](reg, "ChatMessageBroadcast"),
	)
}

// NewRegistry returns a registry holding every packet.
func NewRegistry() *net.PacketRegistry {
	reg := net.NewPacketRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

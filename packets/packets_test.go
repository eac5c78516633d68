package packets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcx/levelsync/codec"
	"github.com/lcx/levelsync/net"
	"github.com/lcx/levelsync/types"
)

func TestRegistryContents(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 24, reg.Len())

	tests := []struct {
		id        uint16
		name      string
		reliable  bool
		encrypted bool
		kind      net.SizeKind
	}{
		{RequestProfilesID, "RequestProfiles", true, false, net.SizeStatic},
		{PlayerDataID, "PlayerData", false, false, net.SizeStatic},
		{VoiceID, "Voice", true, true, net.SizeDynamic},
		{ChatMessageID, "ChatMessage", true, false, net.SizeDynamic},
		{RequestPlayerCountID, "RequestPlayerCount", false, false, net.SizeDynamic},
		{GlobalPlayerListID, "GlobalPlayerList", true, false, net.SizeInline},
		{RoomCreatedID, "RoomCreated", false, false, net.SizeStatic},
		{LevelListID, "LevelList", true, false, net.SizeInline},
		{RoomInviteID, "RoomInvite", false, false, net.SizeStatic},
		{LevelDataID, "LevelData", false, false, net.SizeInline},
		{VoiceBroadcastID, "VoiceBroadcast", true, true, net.SizeDynamic},
		{ChatMessageBroadcastID, "ChatMessageBroadcast", true, false, net.SizeDynamic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi, ok := reg.Info(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.name, pi.Name)
			assert.Equal(t, tt.reliable, pi.Reliable)
			assert.Equal(t, tt.encrypted, pi.Encrypted)
			assert.Equal(t, tt.kind, pi.Kind)
		})
	}

	inline := reg.IDs(func(pi *net.PacketInfo) bool { return pi.Kind == net.SizeInline })
	assert.Equal(t, []uint16{
		GlobalPlayerListID, RoomPlayerListID, LevelListID, LevelPlayerCountID,
		PlayerProfilesID, LevelDataID, PlayerMetadataID,
	}, inline)
}

func TestPacketRoundTrip(t *testing.T) {
	reg := NewRegistry()
	info := types.RoomInfo{ID: 4, Owner: 10, Token: 99}

	tests := []struct {
		name string
		pkt  net.EncodablePacket
		want net.Packet
	}{
		{"LevelJoin", LevelJoin{LevelID: 5}, &LevelJoin{LevelID: 5}},
		{"LevelLeave", LevelLeave{}, &LevelLeave{}},
		{"SyncPlayerMetadata", SyncPlayerMetadata{Data: types.PlayerMetadata{LocalBest: 3}}, &SyncPlayerMetadata{Data: types.PlayerMetadata{LocalBest: 3}}},
		{"ChatMessage", ChatMessage{Message: "gg"}, &ChatMessage{Message: "gg"}},
		{"RequestPlayerCount", RequestPlayerCount{LevelIDs: []int32{1, 2}}, &RequestPlayerCount{LevelIDs: []int32{1, 2}}},
		{"RoomCreated", RoomCreated{Info: info}, &RoomCreated{Info: info}},
		{"RoomJoinFailed", RoomJoinFailed{Message: "full"}, &RoomJoinFailed{Message: "full"}},
		{"RoomInfo", RoomInfo{Info: info}, &RoomInfo{Info: info}},
		{"ChatMessageBroadcast", ChatMessageBroadcast{PlayerID: 8, Message: "hi"}, &ChatMessageBroadcast{PlayerID: 8, Message: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := net.EncodePacketFast(tt.pkt)
			size, ok := net.PacketSize(tt.pkt)
			require.True(t, ok)
			assert.Len(t, data, size)

			h, p, err := net.DecodePacket(data, reg)
			require.NoError(t, err)
			assert.Equal(t, tt.pkt.PacketID(), h.ID)
			assert.Equal(t, tt.pkt.Encrypted(), h.Encrypted)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestRequestProfiles(t *testing.T) {
	p := NewRequestProfiles(4, 5, 6)
	assert.Equal(t, []int32{4, 5, 6}, p.Requested())

	data := net.EncodePacketFast(p)
	assert.Len(t, data, net.HeaderSize+MaxProfileRequests*codec.SizeI32)

	_, got, err := net.DecodePacket(data, NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 5, 6}, got.(*RequestProfiles).Requested())

	full := NewRequestProfiles(make([]int32, MaxProfileRequests+10)...)
	for i := range full.IDs {
		full.IDs[i] = int32(i + 1)
	}
	assert.Len(t, full.Requested(), MaxProfileRequests)
}

func TestRequestPlayerCountLimit(t *testing.T) {
	p := RequestPlayerCount{LevelIDs: make([]int32, MaxPlayerCountRequests+1)}
	_, _, err := net.DecodePacket(net.EncodePacket(p), NewRegistry())
	assert.ErrorIs(t, err, codec.ErrInvalidValue)
}

func TestVoiceBroadcast(t *testing.T) {
	frame := []byte{0xde, 0xad, 0xbe, 0xef}
	p := VoiceBroadcast{PlayerID: 3, Data: codec.NewRemainderBytes(frame)}
	data := net.EncodePacketFast(p)
	assert.Len(t, data, net.HeaderSize+codec.SizeI32+len(frame))
	assert.Equal(t, byte(1), data[2], "encrypted flag set in header")

	_, got, err := net.DecodePacket(data, NewRegistry())
	require.NoError(t, err)
	vb := got.(*VoiceBroadcast)
	assert.Equal(t, int32(3), vb.PlayerID)
	assert.Equal(t, frame, vb.Data.Bytes())
}

func TestInlinePacketsNotDecodable(t *testing.T) {
	_, _, err := net.DecodePacket(net.EncodeHeader(net.HeaderOf(LevelData{})), NewRegistry())
	assert.ErrorIs(t, err, net.ErrNotDecodable)
	assert.Equal(t, net.HeaderSize+codec.SizeU32+2*types.SizeLevelEntry, ListSize(2, types.SizeLevelEntry))
}

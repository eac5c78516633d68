package game

import (
	"fmt"
	"sync/atomic"

	"github.com/lcx/levelsync/buffer"
	"github.com/lcx/levelsync/log"
	"github.com/lcx/levelsync/metrics"
	"github.com/lcx/levelsync/net"
	"github.com/lcx/levelsync/packets"
	"github.com/lcx/levelsync/state"
	"github.com/lcx/levelsync/types"
)

// ClientThread is the context of one connection. Its handlers are called from the
// connection's goroutine; the account and level ids are atomics only so other
// goroutines can read them for logging and lookups. Shared state is always
// re-checked under the registry lock.
type ClientThread struct {
	server *GameServer
	sender net.Sender
	voice  *net.ThroughputLimiter

	accountID atomic.Int32
	levelID   atomic.Int32
	logger    atomic.Pointer[log.PlayerLogger]
}

func newClientThread(s *GameServer, sender net.Sender) *ClientThread {
	bytesPerSec, burst := s.Config().voiceLimits()
	c := &ClientThread{
		server: s,
		sender: sender,
		voice:  net.NewThroughputLimiter(bytesPerSec, burst),
	}
	c.logger.Store(log.NewPlayerLogger(s.logger, 0))
	return c
}

// AccountID is 0 until the connection authenticates.
func (c *ClientThread) AccountID() int32 {
	return c.accountID.Load()
}

// LevelID is 0 when the player is not on a level.
func (c *ClientThread) LevelID() int32 {
	return c.levelID.Load()
}

func (c *ClientThread) Logger() *log.PlayerLogger {
	return c.logger.Load()
}

func (c *ClientThread) authenticated() (int32, error) {
	id := c.accountID.Load()
	if id == 0 {
		c.reject("auth_required")
		return 0, ErrAuthRequired
	}
	return id, nil
}

func (c *ClientThread) reject(reason string) {
	metrics.IncrCounterWithDimGroup(_metricGroup, "requests_rejected_total", 1, metrics.Dimension{"reason": reason})
}

func (c *ClientThread) send(p net.Packet, data []byte) error {
	metrics.IncrCounterWithDimGroup(_metricGroup, "packets_sent_total", 1, metrics.Dimension{"packet": c.server.PacketName(p.PacketID())})
	if err := c.sender.SendPacket(data, p.Reliable()); err != nil {
		return fmt.Errorf("send %s: %w", c.server.PacketName(p.PacketID()), err)
	}
	return nil
}

func (c *ClientThread) sendEncoded(p net.EncodablePacket) error {
	return c.send(p, net.EncodePacketFast(p))
}

// writeList encodes an inline list packet of at most budget records. fill streams
// records under the registry lock and returns how many it wrote; when that differs
// from budget the count after the header is rewritten.
func (c *ClientThread) writeList(p net.Packet, budget, recordSize int, fill func(w buffer.Writer) int) ([]byte, int) {
	buf := buffer.NewFastBuffer(packets.ListSize(budget, recordSize))
	net.WriteHeader(buf, p)
	buf.WriteU32(uint32(budget))

	written := fill(buf)
	if written != budget {
		buf.SetPos(net.HeaderSize)
		buf.WriteU32(uint32(written))
		metrics.IncrCounterWithDimGroup(_metricGroup, "count_fixup_total", 1, metrics.Dimension{"packet": c.server.PacketName(p.PacketID())})
	}
	return buf.Bytes(), written
}

// OnAuthenticated records the account, creating its registry entry and making
// this connection the one the account is reached on.
func (c *ClientThread) OnAuthenticated(account types.PlayerAccountData) {
	c.accountID.Store(account.AccountID)
	c.logger.Store(log.NewPlayerLogger(c.server.logger, account.AccountID))

	c.server.state.Players.CreatePlayer(account)
	c.server.register(account.AccountID, c)

	c.Logger().Info().Str("name", account.Name.String()).Int32("user", account.UserID).Msg("player authenticated")
}

// OnDisconnect leaves the current level and frees the account slot. In-flight
// fan-outs are unaffected.
func (c *ClientThread) OnDisconnect() {
	id := c.accountID.Swap(0)
	if id == 0 {
		return
	}
	c.levelID.Store(0)
	if c.server.unregister(id, c) {
		c.Logger().Info().Msg("player disconnected")
	}
}

// HandleRequestProfiles answers with the account data of the requested players,
// leaving out the requester.
func (c *ClientThread) HandleRequestProfiles(p *packets.RequestProfiles) error {
	self, err := c.authenticated()
	if err != nil {
		return err
	}

	ids := p.Requested()
	if limit := c.server.Config().MaxProfileRequests; len(ids) > limit {
		ids = ids[:limit]
	}
	if len(ids) == 0 {
		return nil
	}

	budget := len(ids)
	data, _ := c.writeList(packets.PlayerProfiles{}, budget, types.SizePlayerAccountData, func(w buffer.Writer) int {
		return c.server.state.Players.ForEachPlayer(ids, func(e *state.PlayerEntry, count int, w buffer.Writer) bool {
			if count >= budget || e.Account.AccountID == self {
				return false
			}
			e.Account.Encode(w)
			return true
		}, w)
	})
	return c.send(packets.PlayerProfiles{}, data)
}

// HandleLevelJoin moves the player to the level. Joining level 0 leaves the current one.
func (c *ClientThread) HandleLevelJoin(p *packets.LevelJoin) error {
	id, err := c.authenticated()
	if err != nil {
		return err
	}

	prev := c.levelID.Swap(p.LevelID)
	if p.LevelID == 0 {
		if prev != 0 {
			c.server.state.Players.RemoveFromLevel(prev, id)
		}
		return nil
	}
	if !c.server.state.Players.AddToLevel(p.LevelID, id) {
		c.levelID.Store(0)
		return fmt.Errorf("join level %d: account %d not registered", p.LevelID, id)
	}

	metrics.IncrCounterWithGroup(_metricGroup, "level_joins_total", 1)
	c.Logger().Debug().Int32("level", p.LevelID).Int32("prev", prev).Msg("joined level")
	return nil
}

func (c *ClientThread) HandleLevelLeave(*packets.LevelLeave) error {
	id, err := c.authenticated()
	if err != nil {
		return err
	}

	if prev := c.levelID.Swap(0); prev != 0 {
		c.server.state.Players.RemoveFromLevel(prev, id)
		c.Logger().Debug().Int32("level", prev).Msg("left level")
	}
	return nil
}

// HandlePlayerData stores the update and answers with the latest data of every
// other player on the level.
func (c *ClientThread) HandlePlayerData(p *packets.PlayerData) error {
	id, err := c.authenticated()
	if err != nil {
		return err
	}
	levelID := c.levelID.Load()
	if levelID == 0 {
		c.reject("not_on_level")
		return ErrUnexpectedPlayerData
	}

	c.server.state.Players.SetPlayerData(id, p.Data)

	return c.sendLevelList(levelID, id, packets.LevelData{}, types.SizeAssociatedPlayerData,
		func(e *state.PlayerEntry, w buffer.Writer) { e.Data.Encode(w) })
}

// HandleSyncPlayerMetadata is HandlePlayerData for metadata.
func (c *ClientThread) HandleSyncPlayerMetadata(p *packets.SyncPlayerMetadata) error {
	id, err := c.authenticated()
	if err != nil {
		return err
	}
	levelID := c.levelID.Load()
	if levelID == 0 {
		c.reject("not_on_level")
		return ErrUnexpectedPlayerData
	}

	c.server.state.Players.SetPlayerMetadata(id, p.Data)

	return c.sendLevelList(levelID, id, packets.PlayerMetadata{}, types.SizeAssociatedPlayerMetadata,
		func(e *state.PlayerEntry, w buffer.Writer) { e.Meta.Encode(w) })
}

// sendLevelList sends p holding one record per other player on levelID. Nothing is
// sent when the requester is alone.
func (c *ClientThread) sendLevelList(levelID, self int32, p net.Packet, recordSize int, encode func(*state.PlayerEntry, buffer.Writer)) error {
	players := c.server.state.Players

	n, _ := players.PlayerCountOnLevel(levelID)
	budget := n - 1
	if budget <= 0 {
		return nil
	}

	data, written := c.writeList(p, budget, recordSize, func(w buffer.Writer) int {
		return players.ForEachPlayerOnLevel(levelID, func(e *state.PlayerEntry, count int, w buffer.Writer) bool {
			if count >= budget || e.Account.AccountID == self {
				return false
			}
			encode(e, w)
			return true
		}, w)
	})
	if written == 0 {
		return nil
	}
	return c.send(p, data)
}

// HandleVoice relays a voice frame to the rest of the level.
func (c *ClientThread) HandleVoice(p *packets.Voice) error {
	id, err := c.authenticated()
	if err != nil {
		return err
	}
	levelID := c.levelID.Load()
	if levelID == 0 {
		return nil
	}

	cfg := c.server.Config()
	if p.Data.Len() > cfg.Voice.MaxPacketSize {
		c.reject("voice_too_large")
		return fmt.Errorf("%w: %d bytes, limit %d", ErrVoiceTooLarge, p.Data.Len(), cfg.Voice.MaxPacketSize)
	}
	if !c.voice.Allow(p.Data.Len()) {
		c.reject("voice_rate_limited")
		return ErrVoiceRateLimited
	}

	out := packets.VoiceBroadcast{PlayerID: id, Data: p.Data}
	return c.broadcast(levelID, id, out)
}

// HandleChatMessage relays a chat message to the rest of the level.
func (c *ClientThread) HandleChatMessage(p *packets.ChatMessage) error {
	id, err := c.authenticated()
	if err != nil {
		return err
	}
	levelID := c.levelID.Load()
	if levelID == 0 {
		return nil
	}

	if limit := c.server.Config().MaxChatLength; len(p.Message) > limit {
		c.reject("chat_too_long")
		return fmt.Errorf("%w: %d bytes, limit %d", ErrChatTooLong, len(p.Message), limit)
	}

	return c.broadcast(levelID, id, packets.ChatMessageBroadcast{PlayerID: id, Message: p.Message})
}

func (c *ClientThread) broadcast(levelID, self int32, p net.EncodablePacket) error {
	if n, _ := c.server.state.Players.PlayerCountOnLevel(levelID); n <= 1 {
		return nil
	}
	data := net.EncodePacketFast(p)
	if c.server.BroadcastToLevel(levelID, self, data, p.Reliable()) > 0 {
		metrics.IncrCounterWithDimGroup(_metricGroup, "packets_sent_total", 1, metrics.Dimension{"packet": c.server.PacketName(p.PacketID())})
	}
	return nil
}

// HandleRequestGlobalPlayerList answers with a preview of every online player.
func (c *ClientThread) HandleRequestGlobalPlayerList(*packets.RequestGlobalPlayerList) error {
	if _, err := c.authenticated(); err != nil {
		return err
	}

	players := c.server.state.Players
	budget := players.PlayerCount()
	data, _ := c.writeList(packets.GlobalPlayerList{}, budget, types.SizePlayerPreviewAccountData, func(w buffer.Writer) int {
		return players.ForEachAllPlayers(func(e *state.PlayerEntry, count int, w buffer.Writer) bool {
			if count >= budget {
				return false
			}
			e.Account.Preview(e.LevelID).Encode(w)
			return true
		}, w)
	})
	return c.send(packets.GlobalPlayerList{}, data)
}

// HandleRequestLevelList answers with every level that has players and its count.
func (c *ClientThread) HandleRequestLevelList(*packets.RequestLevelList) error {
	if _, err := c.authenticated(); err != nil {
		return err
	}

	players := c.server.state.Players
	budget := players.LevelCount()
	data, _ := c.writeList(packets.LevelList{}, budget, types.SizeLevelEntry, func(w buffer.Writer) int {
		return players.ForEachLevel(func(e types.LevelEntry, count int, w buffer.Writer) bool {
			if count >= budget {
				return false
			}
			e.Encode(w)
			return true
		}, w)
	})
	return c.send(packets.LevelList{}, data)
}

// HandleRequestPlayerCount answers with the player count of each requested level,
// in request order.
func (c *ClientThread) HandleRequestPlayerCount(p *packets.RequestPlayerCount) error {
	if _, err := c.authenticated(); err != nil {
		return err
	}

	entries := c.server.state.Players.LevelPlayerCounts(p.LevelIDs)
	buf := buffer.NewFastBuffer(packets.ListSize(len(entries), types.SizeLevelEntry))
	net.WriteHeader(buf, packets.LevelPlayerCount{})
	buf.WriteU32(uint32(len(entries)))
	for _, e := range entries {
		e.Encode(buf)
	}
	return c.send(packets.LevelPlayerCount{}, buf.Bytes())
}

func (c *ClientThread) SendRoomCreated(info types.RoomInfo) error {
	return c.sendEncoded(packets.RoomCreated{Info: info})
}

func (c *ClientThread) SendRoomInfo(info types.RoomInfo) error {
	return c.sendEncoded(packets.RoomInfo{Info: info})
}

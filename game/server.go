// Package game implements the per-connection handlers of the level sync server
// and the server object that owns the shared registry and the client directory.
package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lcx/levelsync/config"
	"github.com/lcx/levelsync/log"
	"github.com/lcx/levelsync/metrics"
	"github.com/lcx/levelsync/net"
	"github.com/lcx/levelsync/packets"
	"github.com/lcx/levelsync/state"
)

const _metricGroup = "game"

// GameServer owns the registry and routes group fan-outs to connected clients.
//
// Lock order: the registry lock is always released before the client directory
// lock is taken.
type GameServer struct {
	state    *state.ServerState
	registry *net.PacketRegistry
	logger   *log.GameLogger
	cfg      atomic.Pointer[ServerCfg]
	funnel   *net.FunnelLimiter

	mu      sync.RWMutex
	clients map[int32]*ClientThread

	fanOut sync.WaitGroup
}

// NewGameServer uses DefaultServerCfg when cfg is nil and the package logger when
// logger is nil.
func NewGameServer(st *state.ServerState, cfg *ServerCfg, logger *log.GameLogger) *GameServer {
	if cfg == nil {
		cfg = DefaultServerCfg()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &GameServer{
		state:    st,
		registry: packets.NewRegistry(),
		logger:   logger,
		funnel:   net.NewFunnelLimiter(cfg.BroadcastQPS),
		clients:  make(map[int32]*ClientThread),
	}
	s.cfg.Store(cfg)
	return s
}

func (s *GameServer) State() *state.ServerState {
	return s.state
}

func (s *GameServer) Config() *ServerCfg {
	return s.cfg.Load()
}

// PacketName names a packet id for logs and metrics.
func (s *GameServer) PacketName(id uint16) string {
	return s.registry.Name(id)
}

// NewClient creates the context of a new connection. It joins the client
// directory once authenticated.
func (s *GameServer) NewClient(sender net.Sender) *ClientThread {
	return newClientThread(s, sender)
}

// Client returns the authenticated connection of accountID.
func (s *GameServer) Client(accountID int32) (*ClientThread, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[accountID]
	return c, ok
}

func (s *GameServer) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// register makes c the connection of accountID, replacing an older one.
func (s *GameServer) register(accountID int32, c *ClientThread) {
	s.mu.Lock()
	prev, replaced := s.clients[accountID]
	s.clients[accountID] = c
	n := len(s.clients)
	s.mu.Unlock()

	if replaced && prev != c {
		s.logger.Warn().Int32("account", accountID).Msg("account authenticated on a new connection")
	}
	metrics.UpdateGaugeWithGroup(_metricGroup, "players_online", metrics.Value(n))
}

// unregister removes c if it is still the connection of accountID. The registry
// record is dropped with it.
func (s *GameServer) unregister(accountID int32, c *ClientThread) bool {
	s.mu.Lock()
	current := s.clients[accountID] == c
	if current {
		delete(s.clients, accountID)
	}
	n := len(s.clients)
	s.mu.Unlock()

	if !current {
		return false
	}
	s.state.Players.RemovePlayer(accountID)
	metrics.UpdateGaugeWithGroup(_metricGroup, "players_online", metrics.Value(n))
	return true
}

// BroadcastToLevel delivers data to every member of levelID except exclude. The
// roster is copied under the registry lock; delivery runs on its own goroutine and
// does not depend on the sender staying connected. data must not be modified
// afterwards. Returns the number of recipients.
func (s *GameServer) BroadcastToLevel(levelID, exclude int32, data []byte, reliable bool) int {
	recipients := s.state.Players.PlayersOnLevel(levelID, exclude)
	if len(recipients) == 0 {
		return 0
	}

	s.fanOut.Add(1)
	go func() {
		defer s.fanOut.Done()
		defer metrics.RecordStopwatchWithGroup(_metricGroup, "broadcast", time.Now())

		s.funnel.Take()
		for _, id := range recipients {
			c, ok := s.Client(id)
			if !ok {
				continue
			}
			if err := c.sender.SendPacket(data, reliable); err != nil {
				c.Logger().Debug().Err(err).Int32("level", levelID).Msg("broadcast delivery failed")
			}
		}
	}()

	metrics.IncrCounterWithGroup(_metricGroup, "broadcast_recipients_total", metrics.Value(len(recipients)))
	return len(recipients)
}

// Drain waits for in-flight fan-outs.
func (s *GameServer) Drain() {
	s.fanOut.Wait()
}

// OnConfigChanged applies a reloaded "game_server" configuration to the server and
// every connected client.
func (s *GameServer) OnConfigChanged(configName string, newConfig, oldConfig config.Config) error {
	if configName != "game_server" {
		return nil
	}
	cfg, ok := newConfig.(*ServerCfg)
	if !ok {
		return nil
	}

	s.cfg.Store(cfg)
	s.funnel.Reload(cfg.BroadcastQPS)

	bytesPerSec, burst := cfg.voiceLimits()
	s.mu.RLock()
	for _, c := range s.clients {
		c.voice.Reload(bytesPerSec, burst)
	}
	s.mu.RUnlock()

	s.logger.Info().
		Int("voiceMaxPacketSize", cfg.Voice.MaxPacketSize).
		Int("voiceKBps", cfg.Voice.MaxThroughputKBps).
		Int("maxChatLength", cfg.MaxChatLength).
		Int("broadcastQPS", cfg.BroadcastQPS).
		Msg("game server config reloaded")
	return nil
}

// LoadServerCfg loads "game_server" from cm and subscribes s to reloads.
func (s *GameServer) LoadServerCfg(cm config.ConfigManager) error {
	cfg := &ServerCfg{}
	if err := cm.LoadConfig(cfg.GetName(), cfg); err != nil {
		return err
	}
	if err := s.OnConfigChanged(cfg.GetName(), cfg, s.Config()); err != nil {
		return err
	}
	cm.AddChangeListener(s)
	return nil
}

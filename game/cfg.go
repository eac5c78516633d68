package game

import (
	"errors"

	"github.com/lcx/levelsync/packets"
)

// VoiceCfg caps voice traffic per client.
type VoiceCfg struct {
	// MaxPacketSize is the largest accepted voice frame in bytes.
	MaxPacketSize int `mapstructure:"maxPacketSize"`
	// MaxThroughputKBps is the sustained voice rate allowed per client.
	MaxThroughputKBps int `mapstructure:"maxThroughputKBps"`
}

// ServerCfg is loaded by the config manager under the name "game_server". Every
// field is hot-reloadable.
type ServerCfg struct {
	Voice VoiceCfg `mapstructure:"voice"`
	// MaxChatLength is the longest accepted chat message in bytes.
	MaxChatLength int `mapstructure:"maxChatLength"`
	// BroadcastQPS paces group fan-outs server-wide. 0 disables pacing.
	BroadcastQPS int `mapstructure:"broadcastQPS"`
	// MaxProfileRequests caps the ids served from one profile request.
	MaxProfileRequests int `mapstructure:"maxProfileRequests"`
}

const (
	MaxVoicePacketSize     = 4096
	MaxVoiceThroughputKBps = 8
	MaxChatLength          = 140
)

// DefaultServerCfg returns the limits used when no configuration is loaded.
func DefaultServerCfg() *ServerCfg {
	return &ServerCfg{
		Voice: VoiceCfg{
			MaxPacketSize:     MaxVoicePacketSize,
			MaxThroughputKBps: MaxVoiceThroughputKBps,
		},
		MaxChatLength:      MaxChatLength,
		MaxProfileRequests: packets.MaxProfileRequests,
	}
}

func (cfg *ServerCfg) GetName() string {
	return "game_server"
}

func (cfg *ServerCfg) Validate() error {
	if cfg.Voice.MaxPacketSize <= 0 {
		return errors.New("voice.maxPacketSize must be positive")
	}
	if cfg.Voice.MaxThroughputKBps <= 0 {
		return errors.New("voice.maxThroughputKBps must be positive")
	}
	if cfg.MaxChatLength <= 0 {
		return errors.New("maxChatLength must be positive")
	}
	if cfg.BroadcastQPS < 0 {
		return errors.New("broadcastQPS must not be negative")
	}
	if cfg.MaxProfileRequests <= 0 || cfg.MaxProfileRequests > packets.MaxProfileRequests {
		return errors.New("maxProfileRequests out of range")
	}
	return nil
}

// voiceLimits returns the byte rate and burst for a client's voice limiter. The
// burst admits at least one full-size frame.
func (cfg *ServerCfg) voiceLimits() (bytesPerSec, burst int) {
	bytesPerSec = cfg.Voice.MaxThroughputKBps * 1024
	return bytesPerSec, max(bytesPerSec, cfg.Voice.MaxPacketSize)
}

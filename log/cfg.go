package log

import (
	"errors"
	"slices"
)

// LogCfg is loaded by the config manager under the name "logger".
type LogCfg struct {
	// LogPath is the file written by the file appender.
	LogPath string `mapstructure:"path"`

	// LogLevel is the minimum level written. Hot-reloadable.
	LogLevel Level `mapstructure:"level"`

	// FileSplitMB rotates the log file once it grows past this size. 0 disables rotation.
	FileSplitMB int `mapstructure:"splitmb"`

	// IsAsync queues lines and writes them from a background goroutine.
	IsAsync           bool `mapstructure:"isasync"`
	AsyncCacheSize    int  `mapstructure:"asynccachesize"`
	AsyncWriteMillSec int  `mapstructure:"asyncwritemillsec"`

	// CallerSkip is added to the frames skipped when resolving caller info.
	CallerSkip int `mapstructure:"callerSkip"`

	FileAppender    bool `mapstructure:"fileAppender"`
	ConsoleAppender bool `mapstructure:"consoleAppender"`

	// LevelChange overrides the level of individual log statements.
	LevelChange []LevelChangeEntry `mapstructure:"levelChange"`

	// PlayerWhiteList holds account ids whose player loggers ignore LogLevel.
	PlayerWhiteList []int32 `mapstructure:"playerWhiteList"`

	EnabledCallerInfo bool `mapstructure:"enabledCallerInfo"`
}

func (cfg *LogCfg) GetName() string {
	return "logger"
}

func (cfg *LogCfg) Validate() error {
	if cfg.LogLevel > FatalLevel {
		return errors.New("log level out of range")
	}
	if cfg.FileAppender && cfg.LogPath == "" {
		return errors.New("file appender needs a path")
	}
	if cfg.FileSplitMB < 0 {
		return errors.New("splitmb must not be negative")
	}
	return nil
}

// IsInWhiteList reports whether accountID bypasses level filtering.
func (cfg *LogCfg) IsInWhiteList(accountID int32) bool {
	return slices.Contains(cfg.PlayerWhiteList, accountID)
}

var _defaultCfg = &LogCfg{
	LogPath:         "./levelsync.log",
	LogLevel:        InfoLevel,
	FileSplitMB:     50,
	IsAsync:         true,
	ConsoleAppender: true,
}

func getDefaultCfg() *LogCfg {
	return _defaultCfg
}

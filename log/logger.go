package log

import (
	"github.com/lcx/levelsync/config"
)

type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	Fatal() *LogEvent
	IgnoreCheckLevel() bool
	GetAppender() []LogAppender
	AddAppender(appender LogAppender)
	OnEventEnd(e *LogEvent)
}

var (
	_ Logger = (*GameLogger)(nil)
	_ Logger = (*PlayerLogger)(nil)
)

var _defaultLogger *GameLogger

func init() {
	_defaultLogger = NewLogger(nil)
}

// Default returns the package-level logger.
func Default() *GameLogger {
	return _defaultLogger
}

// AddAppender adds an appender to the default logger.
func AddAppender(appender LogAppender) {
	_defaultLogger.AddAppender(appender)
}

// Refresh flushes the default logger.
func Refresh() {
	_defaultLogger.Refresh()
}

// SetDefaultLogger replaces the default logger.
func SetDefaultLogger(logger *GameLogger) {
	_defaultLogger = logger
}

// InitializeWithConfigManager loads the "logger" configuration, installs a logger built
// from it as the default, and subscribes it to hot reloads.
func InitializeWithConfigManager(configManager config.ConfigManager) error {
	if configManager == nil {
		return nil
	}

	logCfg := &LogCfg{}
	if err := configManager.LoadConfig(logCfg.GetName(), logCfg); err != nil {
		return err
	}

	logger := NewLogger(logCfg)
	configManager.AddChangeListener(logger)
	SetDefaultLogger(logger)
	return nil
}

// Initialize uses the process-wide config manager.
func Initialize() error {
	return InitializeWithConfigManager(config.GetInstance())
}

func Debug() *LogEvent {
	return _defaultLogger.Debug()
}

func Info() *LogEvent {
	return _defaultLogger.Info()
}

func Warn() *LogEvent {
	return _defaultLogger.Warn()
}

func Error() *LogEvent {
	return _defaultLogger.Error()
}

// Fatal events panic once written.
func Fatal() *LogEvent {
	return _defaultLogger.Fatal()
}

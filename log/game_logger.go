package log

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lcx/levelsync/config"
)

// GameLogger writes chained structured events to its appenders.
//
//	logger.Info().Str("module", "game").Int("players", 42).Msg("server started")
//
// Events come from a sync.Pool. A disabled level returns a nil event, and every
// chained call on it is a no-op.
type GameLogger struct {
	appenders         []LogAppender
	minLevel          atomic.Uint32
	callerSkip        int
	eventPool         *sync.Pool
	levelChange       atomic.Pointer[levelChange]
	callerCache       sync.Map
	enabledCallerInfo atomic.Bool
	configMutex       sync.RWMutex
	currentConfig     *LogCfg
}

// NewLogger creates a logger from cfg, or from defaults when cfg is nil.
func NewLogger(cfg *LogCfg) *GameLogger {
	if cfg == nil {
		cfg = getDefaultCfg()
	}

	logger := &GameLogger{
		callerSkip:    cfg.CallerSkip,
		currentConfig: cfg,
	}
	logger.minLevel.Store(uint32(cfg.LogLevel))
	logger.levelChange.Store(newLevelChange(cfg.LevelChange))
	logger.enabledCallerInfo.Store(cfg.EnabledCallerInfo)
	logger.eventPool = &sync.Pool{
		New: func() any {
			return newEvent(logger)
		},
	}

	if cfg.FileAppender {
		logger.AddAppender(NewFileAppender(cfg))
	}
	if cfg.ConsoleAppender {
		logger.AddAppender(NewConsoleAppender())
	}
	return logger
}

// OnConfigChanged applies a reloaded "logger" configuration. The level, caller info
// and per-statement overrides change in place; appenders are kept.
func (x *GameLogger) OnConfigChanged(configName string, newConfig, oldConfig config.Config) error {
	if configName != "logger" {
		return nil
	}
	newLogCfg, ok := newConfig.(*LogCfg)
	if !ok {
		return nil
	}
	x.updateConfig(newLogCfg)
	return nil
}

func (x *GameLogger) updateConfig(newCfg *LogCfg) {
	x.configMutex.Lock()
	x.currentConfig = newCfg
	x.configMutex.Unlock()

	x.minLevel.Store(uint32(newCfg.LogLevel))
	x.enabledCallerInfo.Store(newCfg.EnabledCallerInfo)
	x.levelChange.Store(newLevelChange(newCfg.LevelChange))
	x.Refresh()
}

// GetCurrentConfig returns the configuration in effect.
func (x *GameLogger) GetCurrentConfig() *LogCfg {
	x.configMutex.RLock()
	defer x.configMutex.RUnlock()
	return x.currentConfig
}

func (x *GameLogger) checkLevel(level Level) bool {
	return Level(x.minLevel.Load()) <= level
}

// AddAppender must be called before the logger is shared.
func (x *GameLogger) AddAppender(appender LogAppender) {
	x.appenders = append(x.appenders, appender)
}

func (x *GameLogger) GetAppender() []LogAppender {
	return x.appenders
}

// Refresh flushes every appender.
func (x *GameLogger) Refresh() {
	for _, appender := range x.appenders {
		appender.Refresh()
	}
}

// Close flushes and closes every appender.
func (x *GameLogger) Close() error {
	var firstErr error
	for _, appender := range x.appenders {
		if err := appender.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (x *GameLogger) IgnoreCheckLevel() bool {
	return false
}

func (x *GameLogger) newEvent() *LogEvent {
	e := x.eventPool.Get().(*LogEvent)
	e.Reset()
	return e
}

// OnEventEnd writes a finished event and recycles it. Fatal events panic after
// being written.
func (x *GameLogger) OnEventEnd(e *LogEvent) {
	for _, appender := range x.appenders {
		_, _ = appender.Write(e.buf.Bytes())
	}

	if e.level == FatalLevel {
		x.Refresh()
		panic(string(e.buf.Bytes()))
	}

	x.eventPool.Put(e)
}

func (x *GameLogger) Debug() *LogEvent { return x.log(DebugLevel, false) }
func (x *GameLogger) Info() *LogEvent  { return x.log(InfoLevel, false) }
func (x *GameLogger) Warn() *LogEvent  { return x.log(WarnLevel, false) }
func (x *GameLogger) Error() *LogEvent { return x.log(ErrorLevel, false) }

// Fatal events panic once written.
func (x *GameLogger) Fatal() *LogEvent { return x.log(FatalLevel, false) }

func (x *GameLogger) getCallerInfo(skip int) *callerInfo {
	pc, file, line, ok := runtime.Caller(skip + x.callerSkip)
	if !ok {
		return _UnknownCallerInfo
	}

	if cached, found := x.callerCache.Load(pc); found {
		return cached.(*callerInfo)
	}

	funcName := runtime.FuncForPC(pc).Name()
	function := funcName
	if dotIdx := strings.LastIndexByte(funcName, '.'); dotIdx != -1 {
		function = funcName[dotIdx+1:]
	}

	// keep the last two path elements: pkg/file.go
	if lastSlash := strings.LastIndexByte(file, '/'); lastSlash > 0 {
		if secondLastSlash := strings.LastIndexByte(file[:lastSlash], '/'); secondLastSlash >= 0 {
			file = file[secondLastSlash+1:]
		}
	}

	c := newCallerInfo(file, function, line)
	x.callerCache.Store(pc, c)
	return c
}

// _callerDepth is the number of frames between the log statement and getCallerInfo:
// getCallerInfo, log, and the level method.
const _callerDepth = 3

// log starts an event at level. ignoreLevel bypasses the minimum level and the
// per-statement overrides.
func (x *GameLogger) log(level Level, ignoreLevel bool) *LogEvent {
	var info *callerInfo
	if !ignoreLevel && !x.checkLevel(level) {
		lc := x.levelChange.Load()
		if lc.Empty() {
			return nil
		}
		info = x.getCallerInfo(_callerDepth)
		level = lc.GetLevel(info.file, info.line, level)
		if !x.checkLevel(level) {
			return nil
		}
	}

	e := x.newEvent()
	e.level = level

	t := time.Now()
	e.Time("time", &t)
	e.Str("level", level.String())

	if x.enabledCallerInfo.Load() {
		if info == nil {
			info = x.getCallerInfo(_callerDepth)
		}
		e.Str("caller", info.String())
	}
	return e
}

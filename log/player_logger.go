package log

// PlayerLogger logs on behalf of one connected account. Every event carries the
// account id, and accounts in the configured whitelist are logged at every level.
type PlayerLogger struct {
	*GameLogger
	accountID int32
}

// NewPlayerLogger shares base's appenders and configuration.
func NewPlayerLogger(base *GameLogger, accountID int32) *PlayerLogger {
	if base == nil {
		base = _defaultLogger
	}
	return &PlayerLogger{GameLogger: base, accountID: accountID}
}

func (x *PlayerLogger) AccountID() int32 {
	return x.accountID
}

// IgnoreCheckLevel reports whether the account is whitelisted under the current configuration.
func (x *PlayerLogger) IgnoreCheckLevel() bool {
	return x.GetCurrentConfig().IsInWhiteList(x.accountID)
}

func (x *PlayerLogger) Debug() *LogEvent {
	return x.log(DebugLevel, x.IgnoreCheckLevel()).Int32("account", x.accountID)
}

func (x *PlayerLogger) Info() *LogEvent {
	return x.log(InfoLevel, x.IgnoreCheckLevel()).Int32("account", x.accountID)
}

func (x *PlayerLogger) Warn() *LogEvent {
	return x.log(WarnLevel, x.IgnoreCheckLevel()).Int32("account", x.accountID)
}

func (x *PlayerLogger) Error() *LogEvent {
	return x.log(ErrorLevel, x.IgnoreCheckLevel()).Int32("account", x.accountID)
}

func (x *PlayerLogger) Fatal() *LogEvent {
	return x.log(FatalLevel, x.IgnoreCheckLevel()).Int32("account", x.accountID)
}

// Package config loads named YAML configurations with environment overrides and
// hot-reloads them when their files change.
package config

// Config is implemented by every configuration struct. Validate runs on every load
// and reload; a failing reload keeps the previous value.
type Config interface {
	GetName() string
	Validate() error
}

// ConfigChangeListener is notified after a configuration has been reloaded.
type ConfigChangeListener interface {
	OnConfigChanged(configName string, newConfig, oldConfig Config) error
}

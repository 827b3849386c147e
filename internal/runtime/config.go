package runtime

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the values a Runtime is constructed with. Loadable from a
// TOML file; DefaultConfig supplies the hardcoded defaults below, which a
// zero Config does not carry.
type Config struct {
	DefaultChannelCapacity int           `toml:"default_channel_capacity"`
	MaxConcurrentTasks     int           `toml:"max_concurrent_tasks"`
	GCSweepInterval        time.Duration `toml:"gc_sweep_interval"`
	TraceLevel             string        `toml:"trace_level"`
}

// DefaultConfig returns the hardcoded defaults used when no config file is
// supplied.
func DefaultConfig() Config {
	return Config{
		DefaultChannelCapacity: 0,
		MaxConcurrentTasks:     256,
		GCSweepInterval:        0,
		TraceLevel:             "off",
	}
}

// LoadConfig reads a TOML config file, filling in defaults for any field it
// leaves zero.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, NewError(IOError, "load config %s: %v", path, err)
	}
	return cfg, nil
}

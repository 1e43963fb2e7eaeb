package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// EnvConfigPath overrides the config path passed on the command line.
const EnvConfigPath = "MAPCORE_CONFIG"

// Store backends for persisted status changes.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreNone     = "none"
)

// Battle holds status engine tunables (battle_athena.conf subset).
type Battle struct {
	// Natural regeneration
	NaturalHealHPInterval int64 `yaml:"natural_heal_hp_interval"` // ms between HP regen
	NaturalHealSPInterval int64 `yaml:"natural_heal_sp_interval"` // ms between SP regen

	// Caps
	MaxHP        int32 `yaml:"max_hp"`
	MaxSP        int32 `yaml:"max_sp"`
	MaxAspd      int32 `yaml:"max_aspd"`       // 190 = amotion 100ms
	MinWalkSpeed int32 `yaml:"min_walk_speed"` // ms per cell, fastest
	MaxWalkSpeed int32 `yaml:"max_walk_speed"` // ms per cell, slowest

	// Status resistance scaling, percent
	PCSCDefRate  int32 `yaml:"pc_sc_def_rate"`
	MobSCDefRate int32 `yaml:"mob_sc_def_rate"`
	PCMaxSCDef   int32 `yaml:"pc_max_sc_def"`  // max resist, percent
	MobMaxSCDef  int32 `yaml:"mob_max_sc_def"` // max resist, percent
}

// DefaultBattle returns Battle settings matching the classic server defaults.
func DefaultBattle() Battle {
	return Battle{
		NaturalHealHPInterval: 6000,
		NaturalHealSPInterval: 8000,
		MaxHP:                 1000000,
		MaxSP:                 1000000,
		MaxAspd:               190,
		MinWalkSpeed:          20,
		MaxWalkSpeed:          1000,
		PCSCDefRate:           100,
		MobSCDefRate:          100,
		PCMaxSCDef:            100,
		MobMaxSCDef:           100,
	}
}

// MapServer holds all configuration for the map server.
type MapServer struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Persistence of status changes between sessions
	SCStore  string         `yaml:"sc_store"` // postgres|redis|none
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`

	// Game loop resolution
	TickInterval time.Duration `yaml:"tick_interval"`

	// Static tables; empty path means the embedded defaults
	JobDBPath    string `yaml:"job_db"`
	SCConfigPath string `yaml:"sc_config"`

	Battle Battle `yaml:"battle"`
}

// DefaultMapServer returns MapServer config with sensible defaults.
func DefaultMapServer() MapServer {
	return MapServer{
		LogLevel:     "info",
		SCStore:      StorePostgres,
		TickInterval: 10 * time.Millisecond,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "mapcore",
			Password: "mapcore",
			DBName:   "mapcore",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
		},
		Battle: DefaultBattle(),
	}
}

// LoadMapServer loads map server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadMapServer(path string) (MapServer, error) {
	cfg := DefaultMapServer()

	if env := os.Getenv(EnvConfigPath); env != "" {
		path = env
	}

	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would break the engine at runtime.
func (c MapServer) Validate() error {
	switch c.SCStore {
	case StorePostgres, StoreRedis, StoreNone:
	default:
		return fmt.Errorf("unknown sc_store %q", c.SCStore)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.Battle.NaturalHealHPInterval <= 0 || c.Battle.NaturalHealSPInterval <= 0 {
		return fmt.Errorf("natural heal intervals must be positive")
	}
	if c.Battle.MinWalkSpeed > c.Battle.MaxWalkSpeed {
		return fmt.Errorf("min_walk_speed %d > max_walk_speed %d", c.Battle.MinWalkSpeed, c.Battle.MaxWalkSpeed)
	}
	return nil
}

// SlogLevel parses LogLevel. Unknown values fall back to info.
func (c MapServer) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

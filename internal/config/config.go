package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World       WorldConfig       `toml:"world"`
	AI          AIConfig          `toml:"ai"`
	Pathfinding PathfindingConfig `toml:"pathfinding"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
	Data        DataConfig        `toml:"data"`
	Logging     LoggingConfig     `toml:"logging"`
	Metrics     MetricsConfig     `toml:"metrics"`
}

type WorldConfig struct {
	ChunkSize     int32 `toml:"chunk_size"`
	TilePixelSize int32 `toml:"tile_pixel_size"`
	Seed          int64 `toml:"seed"`         // 0 = seeded from the clock at boot
	FocusRadius   int32 `toml:"focus_radius"` // chunk rings kept generated around the player
}

type AIConfig struct {
	SightRadius  float64 `toml:"sight_radius"`
	AttackAmount uint16  `toml:"attack_amount"`
	ActionCost   float32 `toml:"action_cost"`
	ScriptDir    string  `toml:"script_dir"` // empty disables the idle script hook
}

type PathfindingConfig struct {
	MaxExpansions int  `toml:"max_expansions"`
	Strict        bool `toml:"strict"` // panic instead of "no path" on ceiling
}

type SchedulerConfig struct {
	Ticks        int           `toml:"ticks"`         // headless run length
	TickInterval time.Duration `toml:"tick_interval"` // 0 runs ticks back to back
	LogCapacity  int           `toml:"log_capacity"`  // message log lines kept, 0 = all
}

type DataConfig struct {
	Terrain string `toml:"terrain"`
	Spawns  string `toml:"spawns"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type MetricsConfig struct {
	ListenAddress string `toml:"listen_address"` // empty disables /metrics
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.World.Seed == 0 {
		cfg.World.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// Default returns the built-in configuration, used when no file exists.
func Default() *Config {
	return defaults()
}

func (c *Config) Validate() error {
	var errs []error
	if c.World.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("world.chunk_size must be positive, got %d", c.World.ChunkSize))
	}
	if c.World.TilePixelSize <= 0 {
		errs = append(errs, fmt.Errorf("world.tile_pixel_size must be positive, got %d", c.World.TilePixelSize))
	}
	if c.World.FocusRadius < 0 {
		errs = append(errs, fmt.Errorf("world.focus_radius must not be negative, got %d", c.World.FocusRadius))
	}
	if c.AI.SightRadius < 0 {
		errs = append(errs, fmt.Errorf("ai.sight_radius must not be negative, got %v", c.AI.SightRadius))
	}
	if c.AI.ActionCost <= 0 {
		errs = append(errs, fmt.Errorf("ai.action_cost must be positive, got %v", c.AI.ActionCost))
	}
	if c.Pathfinding.MaxExpansions <= 0 {
		errs = append(errs, fmt.Errorf("pathfinding.max_expansions must be positive, got %d", c.Pathfinding.MaxExpansions))
	}
	if c.Scheduler.Ticks < 0 {
		errs = append(errs, fmt.Errorf("scheduler.ticks must not be negative, got %d", c.Scheduler.Ticks))
	}
	return errors.Join(errs...)
}

func defaults() *Config {
	return &Config{
		World: WorldConfig{
			ChunkSize:     40,
			TilePixelSize: 16,
			FocusRadius:   1,
		},
		AI: AIConfig{
			SightRadius:  10,
			AttackAmount: 1,
			ActionCost:   1.0,
			ScriptDir:    "scripts",
		},
		Pathfinding: PathfindingConfig{
			MaxExpansions: 10000,
		},
		Scheduler: SchedulerConfig{
			Ticks:       100,
			LogCapacity: 256,
		},
		Data: DataConfig{
			Terrain: "data/yaml/terrain.yaml",
			Spawns:  "data/yaml/spawn_list.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/kuelshammer/LogicCastle-sub010/internal/apperror"
	"github.com/kuelshammer/LogicCastle-sub010/internal/entity"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  string  `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis    Redis   `yaml:"redis"`
	AI       AI      `yaml:"ai"`
	Connect4 Variant `yaml:"connect4" env-prefix:"CONNECT4_"`
	Gomoku   Variant `yaml:"gomoku" env-prefix:"GOMOKU_"`
}

type Redis struct {
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

// AI settings shared by every variant.
type AI struct {
	Seed               int64  `yaml:"seed" env:"AI_SEED" env-default:"1"`
	Workers            int    `yaml:"workers" env:"AI_WORKERS" env-default:"0"`
	DoubleThreatPolicy string `yaml:"double-threat-policy" env:"AI_DOUBLE_THREAT_POLICY" env-default:"block-first"`
}

// Variant holds the board geometry and the hard-difficulty search budget of one game.
// Gravity is a pointer so that leaving it out keeps the variant's own rule.
type Variant struct {
	Rows            int           `yaml:"rows" env:"ROWS"`
	Cols            int           `yaml:"cols" env:"COLS"`
	WinLength       int           `yaml:"win-length" env:"WIN_LENGTH"`
	Gravity         *bool         `yaml:"gravity"`
	Strategy        string        `yaml:"strategy" env:"STRATEGY"`
	SearchDepth     int           `yaml:"search-depth" env:"SEARCH_DEPTH"`
	TimeBudget      time.Duration `yaml:"time-budget" env:"TIME_BUDGET" env-default:"2s"`
	MaxNodes        int64         `yaml:"max-nodes" env:"MAX_NODES"`
	Rollouts        int           `yaml:"rollouts" env:"ROLLOUTS"`
	CandidateRadius int           `yaml:"candidate-radius" env:"CANDIDATE_RADIUS"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path, applies environment overrides and fills unset variant fields with the built-in defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, err
	}

	config.Connect4 = config.Connect4.withDefaults(defaultConnect4)
	config.Gomoku = config.Gomoku.withDefaults(defaultGomoku)

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

var (
	defaultConnect4 = Variant{
		Rows: 6, Cols: 7, WinLength: 4, Gravity: flag(true),
		Strategy: "minimax", SearchDepth: 8, TimeBudget: 2 * time.Second, MaxNodes: 2_000_000,
		Rollouts: 200,
	}
	defaultGomoku = Variant{
		Rows: 15, Cols: 15, WinLength: 5, Gravity: flag(false),
		Strategy: "montecarlo", SearchDepth: 2, TimeBudget: 2 * time.Second,
		Rollouts: 64, CandidateRadius: 2,
	}
)

func flag(value bool) *bool {
	return &value
}

func (that Variant) withDefaults(defaults Variant) Variant {
	if that.Rows == 0 && that.Cols == 0 {
		that.Rows, that.Cols = defaults.Rows, defaults.Cols
	}
	if that.Gravity == nil {
		that.Gravity = defaults.Gravity
	}
	if that.WinLength == 0 {
		that.WinLength = defaults.WinLength
	}
	if that.Strategy == "" {
		that.Strategy = defaults.Strategy
	}
	if that.SearchDepth == 0 {
		that.SearchDepth = defaults.SearchDepth
	}
	if that.MaxNodes == 0 {
		that.MaxNodes = defaults.MaxNodes
	}
	if that.Rollouts == 0 {
		that.Rollouts = defaults.Rollouts
	}
	if that.CandidateRadius == 0 {
		that.CandidateRadius = defaults.CandidateRadius
	}

	return that
}

// GameConfig returns the hard-difficulty defaults for variant.
func (that *Config) GameConfig(variant entity.Variant) (entity.GameConfig, error) {
	var section Variant

	switch variant {
	case entity.VariantConnect4:
		section = that.Connect4
	case entity.VariantGomoku:
		section = that.Gomoku
	default:
		return entity.GameConfig{}, fmt.Errorf("%w: %q", apperror.ErrUnknownVariant, variant)
	}

	return entity.GameConfig{
		Variant: variant,
		Geometry: entity.Geometry{
			Rows:      section.Rows,
			Cols:      section.Cols,
			WinLength: section.WinLength,
			Gravity:   section.Gravity != nil && *section.Gravity,
		},
		StartingPlayer: entity.Player1,
		AI: entity.AIConfig{
			Strategy:           section.Strategy,
			SearchDepth:        section.SearchDepth,
			TimeBudget:         section.TimeBudget,
			MaxNodes:           section.MaxNodes,
			Rollouts:           section.Rollouts,
			CandidateRadius:    section.CandidateRadius,
			Workers:            that.AI.Workers,
			Seed:               that.AI.Seed,
			DoubleThreatPolicy: that.AI.DoubleThreatPolicy,
		},
	}, nil
}

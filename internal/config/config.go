package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/divitgupta/DTL-Timetable/internal/engine"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Engine EngineConfig
	Log    LogConfig
}

// EngineConfig tunes the generation heuristic.
type EngineConfig struct {
	Seed             int64
	EarlySlots       int
	LabBlockSize     int
	HalfDayCutoff    string
	CompactnessBonus int
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Engine = EngineConfig{
		Seed:             v.GetInt64("TIMETABLE_SEED"),
		EarlySlots:       v.GetInt("TIMETABLE_EARLY_SLOTS"),
		LabBlockSize:     v.GetInt("TIMETABLE_LAB_BLOCK_SIZE"),
		HalfDayCutoff:    v.GetString("TIMETABLE_HALF_DAY_CUTOFF"),
		CompactnessBonus: v.GetInt("TIMETABLE_COMPACTNESS_BONUS"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

// EngineOptions translates the loaded configuration into generator options.
func (cfg *Config) EngineOptions() engine.Options {
	return engine.Options{
		Seed:             cfg.Engine.Seed,
		EarlySlots:       cfg.Engine.EarlySlots,
		LabBlockSize:     cfg.Engine.LabBlockSize,
		HalfDayCutoff:    cfg.Engine.HalfDayCutoff,
		CompactnessBonus: cfg.Engine.CompactnessBonus,
	}
}

func setDefaults(v *viper.Viper) {
	defaults := engine.DefaultOptions()

	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("TIMETABLE_SEED", 0)
	v.SetDefault("TIMETABLE_EARLY_SLOTS", defaults.EarlySlots)
	v.SetDefault("TIMETABLE_LAB_BLOCK_SIZE", defaults.LabBlockSize)
	v.SetDefault("TIMETABLE_HALF_DAY_CUTOFF", defaults.HalfDayCutoff)
	v.SetDefault("TIMETABLE_COMPACTNESS_BONUS", defaults.CompactnessBonus)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

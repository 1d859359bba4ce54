package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen  string  `yaml:"listen" json:"listen" validate:"required"`
	DataDir string  `yaml:"data_dir" json:"data_dir" validate:"required"`
	Storage Storage `yaml:"storage" json:"storage"`
	Sim     Sim     `yaml:"sim" json:"sim"`
}

type Storage struct {
	// Backend selects where the JSON blobs live: one file per key under the
	// data dir, or a single sqlite database.
	Backend    string `yaml:"backend" json:"backend" validate:"oneof=file sqlite"`
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`
}

type Sim struct {
	TickSeconds int  `yaml:"tick_seconds" json:"tick_seconds" validate:"min=1"`
	StartPaused bool `yaml:"start_paused" json:"start_paused"`
}

func Default() Config {
	return Config{
		Listen:  ":8421",
		DataDir: "data",
		Storage: Storage{
			Backend:    "file",
			SQLitePath: "data/state.db",
		},
		Sim: Sim{
			TickSeconds: 1,
		},
	}
}

// Load reads the YAML config at path, applies env overrides and validates.
// A missing file is fine; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return Config{}, err
	}

	applyEnv(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Sim.TickSeconds) * time.Second
}

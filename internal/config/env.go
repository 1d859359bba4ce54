package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnv lets GTAVTIMER_* variables override file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("GTAVTIMER_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("GTAVTIMER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("GTAVTIMER_STORAGE"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("GTAVTIMER_SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}
	if v := getEnvInt("GTAVTIMER_TICK_SECONDS"); v > 0 {
		cfg.Sim.TickSeconds = v
	}
	if v := os.Getenv("GTAVTIMER_START_PAUSED"); v != "" {
		cfg.Sim.StartPaused = isTruthy(v)
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath    string
	Theme     string
	ChartDays int
	DebugLog  bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:    "daytrack.db",
		Theme:     "",
		ChartDays: 14,
		DebugLog:  false,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("DAYTRACK_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DAYTRACK_THEME"))); v == "light" || v == "dark" {
		cfg.Theme = v
	}
	if v, ok := getEnvInt("DAYTRACK_CHART_DAYS"); ok && v > 0 {
		cfg.ChartDays = v
	}
	if v, ok := getEnvBool("DAYTRACK_DEBUG_LOG"); ok {
		cfg.DebugLog = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

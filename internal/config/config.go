package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreRedis  StoreKind = "redis"
	StoreMemory StoreKind = "memory"
)

type RuntimeConfig struct {
	DesktopNotifications bool
	Store                StoreKind
	DBPath               string
	RedisURL             string
	RedisPrefix          string
	ReminderInterval     time.Duration
	SchedulerBuffer      int
	ClassifierURL        string
	ClassifierAPIKey     string
	ClassifierTimeout    time.Duration
	LogLevel             log.Level
	LogFile              string
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: false,
		Store:                StoreSQLite,
		DBPath:               "questd.db",
		RedisURL:             "redis://localhost:6379/0",
		RedisPrefix:          "questd:",
		ReminderInterval:     time.Minute,
		SchedulerBuffer:      64,
		ClassifierTimeout:    10 * time.Second,
		LogLevel:             log.InfoLevel,
		LogFile:              "questd.log",
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvBool("QUESTD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := getEnvString("QUESTD_STORE"); v != "" {
		switch kind := StoreKind(strings.ToLower(v)); kind {
		case StoreSQLite, StoreRedis, StoreMemory:
			cfg.Store = kind
		}
	}
	if v := getEnvString("QUESTD_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := getEnvString("QUESTD_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v, ok := os.LookupEnv("QUESTD_REDIS_PREFIX"); ok {
		cfg.RedisPrefix = strings.TrimSpace(v)
	}
	if v, ok := getEnvDuration("QUESTD_REMINDER_INTERVAL"); ok && v > 0 {
		cfg.ReminderInterval = v
	}
	if v, ok := getEnvInt("QUESTD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := getEnvString("QUESTD_CLASSIFIER_URL"); v != "" {
		cfg.ClassifierURL = v
	}
	if v := getEnvString("QUESTD_CLASSIFIER_API_KEY"); v != "" {
		cfg.ClassifierAPIKey = v
	}
	if v, ok := getEnvDuration("QUESTD_CLASSIFIER_TIMEOUT"); ok && v > 0 {
		cfg.ClassifierTimeout = v
	}
	if v := getEnvString("QUESTD_LOG_LEVEL"); v != "" {
		if lvl, err := log.ParseLevel(v); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := os.LookupEnv("QUESTD_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	return cfg
}

func getEnvString(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

func getEnvInt(name string) (int, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := getEnvString(name)
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.ToLower(getEnvString(name))
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

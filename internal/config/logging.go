package config

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogging points the standard logrus logger at cfg.LogFile, or at
// fallback when no file is configured. The terminal UI passes io.Discard
// so log lines never reach the screen.
func SetupLogging(cfg RuntimeConfig, fallback io.Writer) (io.Closer, error) {
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	if cfg.LogFile == "" {
		log.SetOutput(fallback)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

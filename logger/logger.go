package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config selects log level, format and destination
type Config struct {
	Level   string
	Format  string // text or json
	Enabled bool   // false discards every entry
	Dir     string // empty writes to stderr
	File    string
	MaxSize int64 // rotate the file when larger at startup
}

// New builds a logger from cfg
// The returned closer releases the log file and is never nil
func New(cfg Config) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: cfg.Dir != "",
		})
	}

	if !cfg.Enabled {
		log.SetOutput(io.Discard)
		return log, nopCloser{}, nil
	}
	if cfg.Dir == "" {
		log.SetOutput(os.Stderr)
		return log, nopCloser{}, nil
	}

	f, err := openRotated(cfg.Dir, cfg.File, cfg.MaxSize)
	if err != nil {
		log.SetOutput(io.Discard)
		return log, nopCloser{}, err
	}
	log.SetOutput(f)
	return log, f, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// openRotated opens dir/name for append, first moving it aside when above maxSize
func openRotated(dir, name string, maxSize int64) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && maxSize > 0 && info.Size() > maxSize {
		ext := filepath.Ext(name)
		rotated := filepath.Join(dir, fmt.Sprintf("%s_%s%s",
			strings.TrimSuffix(name, ext), time.Now().Format("20060102_150405"), ext))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

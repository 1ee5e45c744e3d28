package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"pdfpress/internal/engine"
)

// Config holds application configuration. All environment reads happen
// here; the compression engine itself is configured purely through the
// options this package hands it.
type Config struct {
	WorkingDir   string
	AppDataDir   string
	DatabasePath string
	Logger       *slog.Logger

	// Compression defaults, overridable per request.
	DefaultLevel int
	Rounds       int

	// HTTP API settings.
	APIAddr string
	APIKey  string
}

// New creates a new configuration instance.
func New() *Config {
	cfg := &Config{
		Logger:       newLogger(),
		DefaultLevel: 75,
		Rounds:       engine.DefaultRounds,
		APIAddr:      ":8080",
	}

	cfg.setupDirectories()
	cfg.loadEnvironment()

	return cfg
}

// EngineOptions builds the engine options for one compression call,
// injecting the configured round count and logger.
func (c *Config) EngineOptions(level int) engine.Options {
	return engine.Options{
		Level:  level,
		Rounds: c.Rounds,
		Logger: c.Logger,
	}
}

func (c *Config) setupDirectories() {
	// Working directory for temp files
	c.WorkingDir = filepath.Join(os.TempDir(), "pdfpress")
	os.MkdirAll(c.WorkingDir, 0755)

	// App data directory (database, settings)
	c.AppDataDir = getAppDataDir()
	os.MkdirAll(c.AppDataDir, 0755)

	c.DatabasePath = filepath.Join(c.AppDataDir, "database.sqlite3")
}

func (c *Config) loadEnvironment() {
	if v := os.Getenv("PDFPRESS_ROUNDS"); v != "" {
		rounds, err := strconv.Atoi(v)
		if err != nil || rounds < 1 {
			c.Logger.Warn("Ignoring invalid PDFPRESS_ROUNDS", "value", v)
		} else {
			if rounds > engine.MaxRounds {
				rounds = engine.MaxRounds
			}
			c.Rounds = rounds
		}
	}

	if v := os.Getenv("PDFPRESS_LEVEL"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			c.Logger.Warn("Ignoring invalid PDFPRESS_LEVEL", "value", v)
		} else {
			c.DefaultLevel = engine.ClampLevel(level)
		}
	}

	if v := os.Getenv("PDFPRESS_API_ADDR"); v != "" {
		c.APIAddr = v
	}
	c.APIKey = os.Getenv("PDFPRESS_API_KEY")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("PDFPRESS_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getAppDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "PDFPress")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".pdfpress")
}

// Package config loads settings shared by the commands from UTTT_* environment
// variables. Flags bound with BindFlags override them.
package config

import (
	"flag"
	"os"
	"runtime"
	"strconv"
	"time"
)

type Config struct {
	Depth      int           // max search depth
	MoveTime   time.Duration // per-move budget for iterative deepening
	DBPath     string        // SQLite game archive
	RecordsDir string        // parquet training records
	Listen     string        // websocket service address
	LogLevel   string
	LogFormat  string // "console" or "json"
	Workers    int    // self-play goroutines
}

func defaultWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// Load reads the environment. Values that do not parse keep their default.
func Load() *Config {
	return &Config{
		Depth:      getInt("UTTT_DEPTH", 4),
		MoveTime:   getDuration("UTTT_MOVE_TIME", time.Second),
		DBPath:     getEnv("UTTT_DB", "data/games.db"),
		RecordsDir: getEnv("UTTT_RECORDS", "data/records"),
		Listen:     getEnv("UTTT_LISTEN", ":8080"),
		LogLevel:   getEnv("UTTT_LOG_LEVEL", "info"),
		LogFormat:  getEnv("UTTT_LOG_FORMAT", "console"),
		Workers:    getInt("UTTT_WORKERS", defaultWorkers()),
	}
}

// BindFlags registers the common flags on fs with c's values as defaults.
// Parsing fs writes straight into c.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Depth, "depth", c.Depth, "max search depth")
	fs.DurationVar(&c.MoveTime, "movetime", c.MoveTime, "time budget per move")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "trace|debug|info|warn|error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "console|json")
}

// BindStorageFlags registers the archive and records locations.
func (c *Config) BindStorageFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite game archive")
	fs.StringVar(&c.RecordsDir, "records", c.RecordsDir, "parquet output directory")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

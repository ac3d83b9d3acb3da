// Package config resolves the application configuration from viper.
package config

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/common"
)

// Configuration keys.
const (
	KeyDataFile        = "data.file"
	KeyDataSheet       = "data.sheet"
	KeyCSVDelimiter    = "data.csv_delimiter"
	KeyServerAddr      = "server.addr"
	KeyServerWatch     = "server.watch"
	KeyReadTimeout     = "server.read_timeout"
	KeyShutdownTimeout = "server.shutdown_timeout"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
)

// Defaults.
const (
	DefaultDataFile        = "Status proyecto xtract.xlsx"
	DefaultServerAddr      = ":8501"
	DefaultReadTimeout     = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config is the resolved application configuration.
type Config struct {
	DataFile        string
	Sheet           string
	CSVDelimiter    string
	ServerAddr      string
	LogLevel        string
	LogFormat       string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
	Watch           bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataFile, DefaultDataFile)
	v.SetDefault(KeyDataSheet, "")
	v.SetDefault(KeyCSVDelimiter, ",")
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetDefault(KeyServerWatch, true)
	v.SetDefault(KeyReadTimeout, DefaultReadTimeout)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// FromViper reads the configuration out of v.
func FromViper(v *viper.Viper) Config {
	return Config{
		DataFile:        ExpandPath(v.GetString(KeyDataFile)),
		Sheet:           v.GetString(KeyDataSheet),
		CSVDelimiter:    v.GetString(KeyCSVDelimiter),
		ServerAddr:      v.GetString(KeyServerAddr),
		Watch:           v.GetBool(KeyServerWatch),
		ReadTimeout:     v.GetDuration(KeyReadTimeout),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("%w: data file path is empty", common.ErrInvalidConfig)
	}

	if c.CSVDelimiter != "" && utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("%w: csv delimiter must be a single character, got %q", common.ErrInvalidConfig, c.CSVDelimiter)
	}

	if c.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read timeout must be positive", common.ErrInvalidConfig)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", common.ErrInvalidConfig)
	}

	return nil
}

// Delimiter returns the csv delimiter as a rune, 0 when unset.
func (c Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// DataFileName returns the base name of the workbook, for messages.
func (c Config) DataFileName() string {
	return filepath.Base(c.DataFile)
}

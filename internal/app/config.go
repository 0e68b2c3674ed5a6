package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"didwallet/internal/log"
	"didwallet/internal/protocol/envelope"
)

const (
	// DefaultHome is the wallet directory used when none is configured.
	DefaultHome = ".did"
	// HomeEnv overrides DefaultHome.
	HomeEnv = "DID_WALLET_HOME"
	// LogLevelEnv sets the log spec when no flag is given.
	LogLevelEnv = "LOG_LEVEL"
	// ConfigFilename is read from the wallet home.
	ConfigFilename = "config.yaml"

	// StoreFile keeps records as one file per envelope.
	StoreFile = "file"
	// StoreSQLite keeps records in a SQLite database in the wallet home.
	StoreSQLite = "sqlite"
)

// ErrInvalidConfig is returned for config values that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string `yaml:"-"` // wallet directory, e.g. ./.did
	Passphrase string `yaml:"-"` // key file passphrase; empty for a plain key file

	TTL         time.Duration `yaml:"ttl"`          // envelope expiry hint
	LogLevel    string        `yaml:"log_level"`    // log spec, e.g. "envelope=debug:warning"
	LogEncoding string        `yaml:"log_encoding"` // console or json
	Store       string        `yaml:"store"`        // file or sqlite
}

// DefaultConfig returns the configuration used when home has no config file.
func DefaultConfig(home string) Config {
	return Config{
		Home:        home,
		TTL:         envelope.DefaultTTL,
		LogEncoding: log.Console,
		Store:       StoreFile,
	}
}

// ResolveHome picks the wallet directory: flag, then HomeEnv, then DefaultHome.
func ResolveHome(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return env
	}
	return DefaultHome
}

// LoadConfig reads <home>/config.yaml over the defaults. A missing file is
// not an error. Unknown keys are.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig(home)

	path := filepath.Join(home, ConfigFilename)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	cfg.Home = home

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field that has a restricted set of values.
func (c Config) Validate() error {
	if c.TTL < 0 {
		return fmt.Errorf("%w: ttl must not be negative", ErrInvalidConfig)
	}
	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("%w: store %q (want %s or %s)", ErrInvalidConfig, c.Store, StoreFile, StoreSQLite)
	}
	switch strings.ToLower(c.LogEncoding) {
	case log.Console, log.JSON:
	default:
		return fmt.Errorf("%w: log_encoding %q", ErrInvalidConfig, c.LogEncoding)
	}
	return nil
}

// ConfigureLogging applies the log encoding and level. A non-empty override
// (from a flag or LogLevelEnv) wins over the configured level.
func (c Config) ConfigureLogging(override string) error {
	log.SetDefaultEncoding(c.LogEncoding)

	spec := override
	if spec == "" {
		spec = os.Getenv(LogLevelEnv)
	}
	if spec == "" {
		spec = c.LogLevel
	}
	if spec == "" {
		return nil
	}
	if err := log.SetSpec(spec); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}
	return nil
}

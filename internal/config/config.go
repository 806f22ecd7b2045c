package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scrutinously/chia-vanity-address/pkg/generator"
	"github.com/scrutinously/chia-vanity-address/pkg/generator/chia"
)

// EnvPrefix is prepended to flag names for environment overrides,
// e.g. CHIAVANITY_MAX_INDEX.
const EnvPrefix = "CHIAVANITY"

// Errors
var (
	ErrNoSuffix          = errors.New("vanity text must not be empty")
	ErrInvalidSuffix     = errors.New("vanity text contains characters that never appear in an address")
	ErrUnreachableSuffix = errors.New("none of the selected variants can appear in an address")
	ErrInvalidWorkers    = errors.New("workers must not be negative")
	ErrInvalidMaxIndex   = errors.New("max-index must be at least 1")
	ErrInvalidInterval   = errors.New("report-interval must be positive")
	ErrUnknownNetwork    = errors.New("network must be mainnet or testnet")
)

// Config holds the application configuration
type Config struct {
	Workers        int
	MaxIndex       uint32
	ReportInterval time.Duration
	Network        string
	Suffix         string // Empty means prompt interactively
	Entropy        string
	Variants       bool // Accept every reachable leetspeak variant of Suffix
	Export         bool // Export without asking
	ExportDir      string
	Verbose        bool
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Workers:        runtime.NumCPU(),
		MaxIndex:       generator.DefaultMaxIndex,
		ReportInterval: generator.DefaultReportInterval,
		Network:        "mainnet",
		ExportDir:      ".",
	}
}

// RegisterFlags defines the command line flags, defaulting to c's values.
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntP("workers", "w", c.Workers, "Number of worker goroutines")
	flags.Uint32P("max-index", "m", c.MaxIndex, "Receiving addresses probed per key")
	flags.DurationP("report-interval", "i", c.ReportInterval, "Progress reporting interval")
	flags.StringP("network", "n", c.Network, "Address network (mainnet, testnet)")
	flags.StringP("suffix", "s", c.Suffix, "Vanity text the address must end with (prompts when empty)")
	flags.StringP("entropy", "e", c.Entropy, "Extra text mixed into key generation")
	flags.BoolP("variants", "V", c.Variants, "Accept all 1337 speak variants of the suffix")
	flags.BoolP("export", "x", c.Export, "Export the public keys without asking")
	flags.StringP("export-dir", "d", c.ExportDir, "Directory for exported key files")
	flags.BoolP("verbose", "v", c.Verbose, "Verbose output")
}

// Load reads the configuration from flags, letting CHIAVANITY_* environment
// variables fill in anything not set on the command line.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	return &Config{
		Workers:        v.GetInt("workers"),
		MaxIndex:       v.GetUint32("max-index"),
		ReportInterval: v.GetDuration("report-interval"),
		Network:        v.GetString("network"),
		Suffix:         v.GetString("suffix"),
		Entropy:        v.GetString("entropy"),
		Variants:       v.GetBool("variants"),
		Export:         v.GetBool("export"),
		ExportDir:      v.GetString("export-dir"),
		Verbose:        v.GetBool("verbose"),
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.MaxIndex == 0 {
		return ErrInvalidMaxIndex
	}
	if c.ReportInterval <= 0 {
		return ErrInvalidInterval
	}
	if _, err := c.GetNetwork(); err != nil {
		return err
	}
	if c.Suffix != "" && !c.Variants {
		if invalid := chia.InvalidBech32Chars(c.Suffix); len(invalid) > 0 {
			return fmt.Errorf("%w: %q", ErrInvalidSuffix, string(invalid))
		}
	}
	return nil
}

// Interactive reports whether the vanity text has to be prompted for.
func (c *Config) Interactive() bool {
	return c.Suffix == ""
}

// GetNetwork parses the network name.
func (c *Config) GetNetwork() (generator.Network, error) {
	switch strings.ToLower(c.Network) {
	case "", "mainnet", "xch":
		return generator.Mainnet, nil
	case "testnet", "txch":
		return generator.Testnet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNetwork, c.Network)
	}
}

// MatchSet turns the selected suffixes into the set searched for, dropping
// the ones no address can end with.
func MatchSet(selected []string) (reachable, dropped []string, err error) {
	if len(selected) == 0 {
		return nil, nil, ErrNoSuffix
	}
	for _, s := range selected {
		if s == "" {
			return nil, nil, ErrNoSuffix
		}
	}

	lowered := make([]string, len(selected))
	for i, s := range selected {
		lowered[i] = strings.ToLower(s)
	}

	reachable, dropped = chia.SplitReachable(lowered)
	if len(reachable) == 0 {
		return nil, dropped, ErrUnreachableSuffix
	}
	return reachable, dropped, nil
}

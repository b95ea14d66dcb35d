// Package config resolves millertug settings from defaults, a YAML or TOML file,
// MILLERTUG_* environment variables and command line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/datatug/millertug/pkg/fsutils"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

const UserDir = "~/.millertug"

const (
	FlagConfig       = "config"
	FlagLogFile      = "log-file"
	FlagLogLevel     = "log-level"
	FlagPollInterval = "poll-interval"
	FlagWatch        = "watch"
	FlagPreview      = "preview"
	FlagMaxEntries   = "max-entries"
	FlagLanguage     = "language"
)

const envPrefix = "MILLERTUG_"

var osUserHomeDir = os.UserHomeDir

var (
	readYAMLFile = fsutils.ReadYAMLFile
	readTOMLFile = fsutils.ReadTOMLFile
)

// userConfigFiles are looked up in UserDir in this order; the first present wins.
var userConfigFiles = []string{"config.yaml", "config.toml"}

type Config struct {
	StartPath         string        `yaml:"start_path" toml:"start_path"`
	LogFile           string        `yaml:"log_file" toml:"log_file"`
	LogLevel          string        `yaml:"log_level" toml:"log_level"`
	PollInterval      time.Duration `yaml:"poll_interval" toml:"poll_interval"`
	Watch             bool          `yaml:"watch" toml:"watch"`
	Preview           bool          `yaml:"preview" toml:"preview"`
	MaxEntries        int           `yaml:"max_entries" toml:"max_entries"`
	ColumnProportions []int         `yaml:"column_proportions,flow" toml:"column_proportions"`
	// Language is a BCP 47 tag selecting how names are ordered, e.g. "sv" or "de-u-co-phonebk".
	Language string `yaml:"language" toml:"language"`
}

// GetUserDir returns the expanded UserDir.
// On error the unexpanded UserDir is returned with it.
func GetUserDir() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(home, UserDir[2:]), nil
}

func Default() Config {
	userDir, _ := GetUserDir()
	return Config{
		LogFile:           filepath.Join(userDir, "millertug.log"),
		LogLevel:          "info",
		PollInterval:      16 * time.Millisecond,
		Watch:             true,
		Preview:           true,
		ColumnProportions: []int{15, 45, 30},
	}
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "path to a YAML or TOML config file (default "+UserDir+"/config.yaml or config.toml)")
	fs.String(FlagLogFile, d.LogFile, "file to write logs to, empty to disable logging")
	fs.String(FlagLogLevel, d.LogLevel, "log level: trace, debug, info, warn, error")
	fs.Duration(FlagPollInterval, d.PollInterval, "how long to wait for input before redrawing")
	fs.Bool(FlagWatch, d.Watch, "refresh the current directory when it changes on disk")
	fs.Bool(FlagPreview, d.Preview, "preview the highlighted file")
	fs.Int(FlagMaxEntries, d.MaxEntries, "maximum entries listed per directory, 0 for no limit")
	fs.String(FlagLanguage, d.Language, "BCP 47 language tag used to sort names, empty for the root collation")
}

// Load resolves the configuration. fs must have been set up with RegisterFlags and parsed.
func Load(fs *pflag.FlagSet, getenv func(string) string) (cfg Config, err error) {
	cfg = Default()

	configFile, required, err := configFilePath(fs)
	if err != nil {
		return cfg, err
	}
	if configFile != "" {
		if err = readConfigFile(configFile, required, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}
	if err = cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}
	if err = cfg.applyFlags(fs); err != nil {
		return cfg, err
	}
	cfg.LogFile = expandHome(cfg.LogFile)
	cfg.StartPath = expandHome(cfg.StartPath)
	return cfg, cfg.Validate()
}

func configFilePath(fs *pflag.FlagSet) (name string, required bool, err error) {
	if fs != nil && fs.Changed(FlagConfig) {
		if name, err = fs.GetString(FlagConfig); err != nil {
			return "", false, err
		}
		return expandHome(name), true, nil
	}
	userDir, err := GetUserDir()
	if err != nil {
		// no home directory, nothing to read
		return "", false, nil
	}
	for _, base := range userConfigFiles {
		name = filepath.Join(userDir, base)
		if _, statErr := os.Stat(name); statErr == nil {
			return name, false, nil
		}
	}
	return filepath.Join(userDir, userConfigFiles[0]), false, nil
}

// readConfigFile picks the decoder by file extension, YAML unless ".toml".
func readConfigFile(name string, required bool, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		return readTOMLFile(name, required, cfg)
	}
	return readYAMLFile(name, required, cfg)
}

func expandHome(p string) string {
	return fsutils.ExpandHomeFunc(p, osUserHomeDir)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if getenv == nil {
		return nil
	}
	lookup := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(envPrefix + name))
		return v, v != ""
	}
	if v, ok := lookup("LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("POLL_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sPOLL_INTERVAL: %w", envPrefix, err)
		}
		c.PollInterval = d
	}
	if v, ok := lookup("WATCH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sWATCH: %w", envPrefix, err)
		}
		c.Watch = b
	}
	if v, ok := lookup("PREVIEW"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sPREVIEW: %w", envPrefix, err)
		}
		c.Preview = b
	}
	if v, ok := lookup("LANGUAGE"); ok {
		c.Language = v
	}
	return nil
}

func (c *Config) applyFlags(fs *pflag.FlagSet) (err error) {
	if fs == nil {
		return nil
	}
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagLogFile:
			c.LogFile, err = fs.GetString(f.Name)
		case FlagLogLevel:
			c.LogLevel, err = fs.GetString(f.Name)
		case FlagPollInterval:
			c.PollInterval, err = fs.GetDuration(f.Name)
		case FlagWatch:
			c.Watch, err = fs.GetBool(f.Name)
		case FlagPreview:
			c.Preview, err = fs.GetBool(f.Name)
		case FlagMaxEntries:
			c.MaxEntries, err = fs.GetInt(f.Name)
		case FlagLanguage:
			c.Language, err = fs.GetString(f.Name)
		}
	})
	return err
}

var (
	ErrPollInterval      = errors.New("poll interval must be positive")
	ErrMaxEntries        = errors.New("max entries must not be negative")
	ErrColumnProportions = errors.New("column proportions must be three positive numbers")
	ErrLanguage          = errors.New("invalid language tag")
)

func (c Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: %v", ErrPollInterval, c.PollInterval)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("%w: %d", ErrMaxEntries, c.MaxEntries)
	}
	if len(c.ColumnProportions) != 3 {
		return fmt.Errorf("%w: got %d", ErrColumnProportions, len(c.ColumnProportions))
	}
	for _, p := range c.ColumnProportions {
		if p <= 0 {
			return fmt.Errorf("%w: %v", ErrColumnProportions, c.ColumnProportions)
		}
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("%w %q: %v", ErrLanguage, c.Language, err)
		}
	}
	return nil
}

// LanguageTag parses Language. An empty or invalid value gives language.Und.
func (c Config) LanguageTag() language.Tag {
	if c.Language == "" {
		return language.Und
	}
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

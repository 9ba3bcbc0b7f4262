package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"timeclock/internal/platform/money"
)

const (
	EnvFile      = "TIMECLOCK_FILE"
	EnvWage      = "TIMECLOCK_WAGE"
	EnvBackupDir = "TIMECLOCK_BACKUP_DIR"
	EnvDBPath    = "TIMECLOCK_DB"
	EnvLogLevel  = "TIMECLOCK_LOG_LEVEL"
	EnvLogFormat = "TIMECLOCK_LOG_FORMAT"

	stateDirName   = ".timeclock"
	configFileName = "config.yaml"
	dbFileName     = "timeclock.db"
)

type Config struct {
	FilePath   string
	HourlyWage decimal.Decimal
	BackupDir  string
	DBPath     string
	LogLevel   string
	LogFormat  string
}

// Options carries what the command line knows. Zero fields fall back to the environment,
// then to the config file, then to defaults.
type Options struct {
	FilePath   string
	ConfigPath string
	LogLevel   string

	// LookupEnv and HomeDir default to os.LookupEnv and os.UserHomeDir.
	LookupEnv func(string) (string, bool)
	HomeDir   func() (string, error)
}

type fileConfig struct {
	File      string   `yaml:"file"`
	Wage      *float64 `yaml:"wage"`
	BackupDir string   `yaml:"backup_dir"`
	DBPath    string   `yaml:"db_path"`
	LogLevel  string   `yaml:"log_level"`
	LogFormat string   `yaml:"log_format"`
}

func Load(opts Options) (Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	homeDir := opts.HomeDir
	if homeDir == nil {
		homeDir = os.UserHomeDir
	}
	home, err := homeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home dir: %w", err)
	}
	stateDir := filepath.Join(home, stateDirName)

	cfg := Config{
		HourlyWage: decimal.Zero,
		BackupDir:  stateDir,
		DBPath:     filepath.Join(stateDir, dbFileName),
		LogLevel:   "info",
		LogFormat:  "text",
	}

	configPath := opts.ConfigPath
	required := configPath != ""
	if !required {
		configPath = filepath.Join(stateDir, configFileName)
	}
	if err := cfg.applyFile(configPath, required); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}

	if opts.FilePath != "" {
		cfg.FilePath = opts.FilePath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	cfg.FilePath = expandHome(cfg.FilePath, home)
	cfg.BackupDir = expandHome(cfg.BackupDir, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	if fc.File != "" {
		c.FilePath = fc.File
	}
	if fc.Wage != nil {
		c.HourlyWage = decimal.NewFromFloat(*fc.Wage)
	}
	if fc.BackupDir != "" {
		c.BackupDir = fc.BackupDir
	}
	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.FilePath = v
	}
	if v, ok := lookup(EnvWage); ok && strings.TrimSpace(v) != "" {
		wage, err := money.ParseWage(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWage, v, err)
		}
		c.HourlyWage = wage
	}
	if v, ok := lookup(EnvBackupDir); ok && v != "" {
		c.BackupDir = v
	}
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		c.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.LogFormat = v
	}
	return nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.FilePath) == "" {
		problems = append(problems, "no filename passed and "+EnvFile+" is not set")
	}
	if c.HourlyWage.IsNegative() {
		problems = append(problems, fmt.Sprintf("hourly wage %s must not be negative", c.HourlyWage))
	}
	if c.BackupDir == "" {
		problems = append(problems, "backup dir cannot be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

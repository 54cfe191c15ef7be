package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Mail link settings
	Mail MailConfig `yaml:"mail"`

	// Text-generation settings
	Assist AssistConfig `yaml:"assist"`

	// Log file settings
	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type InvoiceConfig struct {
	DefaultDueDays int    `yaml:"default_due_days"` // Days until invoice due
	NumberPrefix   string `yaml:"number_prefix"`    // Invoice number prefix (e.g., "INV")
	OutputDir      string `yaml:"output_dir"`       // Directory for generated PDFs
}

type MailConfig struct {
	MaxLinkLength int `yaml:"max_link_length"` // Longest mailto link handed to the mail client
}

type AssistConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Path  string `yaml:"path"`  // Empty disables logging
	Level string `yaml:"level"` // debug, info, warn, error
}

func baseDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "lumina")
}

// DefaultConfigPath returns ~/.config/lumina/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := baseDir()

	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "lumina.db"),
		},
		Invoice: InvoiceConfig{
			DefaultDueDays: 14,
			NumberPrefix:   "INV",
			OutputDir:      filepath.Join(dir, "invoices"),
		},
		Mail: MailConfig{
			MaxLinkLength: 1800,
		},
		Assist: AssistConfig{
			Endpoint: "https://generativelanguage.googleapis.com/v1beta",
			Model:    "gemini-2.5-flash",
			Timeout:  20 * time.Second,
		},
		Log: LogConfig{
			Path:  filepath.Join(dir, "lumina.log"),
			Level: "info",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (for database, invoices, etc.)
func (c *Config) EnsureDirectories() error {
	dbDir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}

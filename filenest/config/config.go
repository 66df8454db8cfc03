package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	internal "github.com/Rizirfan/FileNest/filenest"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	FileNest FileNestConfig `mapstructure:"filenest" yaml:"filenest"`
}

// FileNestConfig stores organizer specific configurations.
type FileNestConfig struct {
	WatchDir            string           `mapstructure:"watchDir" yaml:"watchDir"`
	Categories          []CategoryConfig `mapstructure:"categories" yaml:"categories"`
	PollIntervalSeconds int              `mapstructure:"pollIntervalSeconds" yaml:"pollIntervalSeconds"`
	SettleDelayMs       int              `mapstructure:"settleDelayMs" yaml:"settleDelayMs"`
	History             HistoryConfig    `mapstructure:"history" yaml:"history"`
}

// CategoryConfig is one row of the category table: a folder name and the
// extensions routed into it. Extensions are lowercase with a leading dot.
type CategoryConfig struct {
	Name       string   `mapstructure:"name" yaml:"name"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// HistoryConfig stores move journal settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

var AppConfig Config

// DefaultCategories returns the shipped category table. Extensions are
// disjoint across categories; anything unmatched lands in Others.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".ico", ".tiff", ".tif", ".raw", ".psd", ".ai"}},
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".ppt", ".pptx", ".csv", ".md", ".epub"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".opus", ".aiff"}},
		{Name: "Videos", Extensions: []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg", ".3gp"}},
		{Name: "Archives", Extensions: []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"}},
		{Name: "Code", Extensions: []string{".py", ".js", ".java", ".c", ".cpp", ".h", ".cs", ".php", ".rb", ".go", ".rs", ".swift", ".kt", ".html", ".css", ".json", ".xml", ".yaml", ".yml"}},
		{Name: "Executables", Extensions: []string{".exe", ".msi", ".dmg", ".app", ".deb", ".rpm", ".sh", ".bat", ".cmd"}},
	}
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Set default values
	v.SetDefault("filenest.watchDir", internal.DefaultWatchDir)
	v.SetDefault("filenest.pollIntervalSeconds", 5)
	v.SetDefault("filenest.settleDelayMs", 500)
	v.SetDefault("filenest.history.enabled", true)
	v.SetDefault("filenest.history.path", internal.DefaultHistoryDB)

	v.AutomaticEnv()                                   // Read in environment variables that match
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. filenest.watchDir becomes FILENEST_WATCHDIR

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No config file on the search path; defaults apply.
		case configPath != "" && errors.Is(err, fs.ErrNotExist):
			// An explicitly named but absent file also falls back to defaults.
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// The category table is a Go literal rather than a viper default so
	// folder names keep their exact casing on disk.
	if len(AppConfig.FileNest.Categories) == 0 {
		AppConfig.FileNest.Categories = DefaultCategories()
	}

	return &AppConfig, nil
}

// Default returns a fully populated configuration without touching viper.
func Default() *Config {
	return &Config{
		FileNest: FileNestConfig{
			WatchDir:            internal.DefaultWatchDir,
			Categories:          DefaultCategories(),
			PollIntervalSeconds: 5,
			SettleDelayMs:       500,
			History: HistoryConfig{
				Enabled: true,
				Path:    internal.DefaultHistoryDB,
			},
		},
	}
}

// WriteDefault writes the default configuration as YAML to path, creating
// parent directories as needed. Refuses to clobber an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// PollInterval returns the polling interval as a duration.
func (c *FileNestConfig) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// SettleDelay returns the notify-mode settle delay as a duration.
func (c *FileNestConfig) SettleDelay() time.Duration {
	if c.SettleDelayMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// CategoryTable converts the configured category list into the mapping
// consumed by the organize registry.
func (c *FileNestConfig) CategoryTable() map[string][]string {
	table := make(map[string][]string, len(c.Categories))
	for _, cat := range c.Categories {
		table[cat.Name] = append(table[cat.Name], cat.Extensions...)
	}
	return table
}

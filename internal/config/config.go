package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kilikali/kilikali/internal/domain"
	"github.com/kilikali/kilikali/internal/types"
)

// Config represents the full kilikali configuration
type Config struct {
	Version               int                 `yaml:"version"`
	DefaultMusicDirectory string              `yaml:"default_music_directory"`
	Wild                  string              `yaml:"wild"`
	MaxDirEntries         int                 `yaml:"max_dir_entries"`
	SearchCaseSensitivity string              `yaml:"search_case_sensitivity"`
	PlaylistSaveAtExit    bool                `yaml:"playlist_save_at_exit"`
	Bindings              map[string][]string `yaml:"bindings"`
	ReservedKeys          []string            `yaml:"reserved_keys"`
	Log                   LogConfig           `yaml:"log"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Binding names understood by the application
const (
	BindingAbort          = "abort"
	BindingCommandMode    = "command_mode"
	BindingSearchMode     = "search_mode"
	BindingSearchNext     = "search_next"
	BindingSearchPrevious = "search_previous"
	BindingMoveUp         = "move_up"
	BindingMoveDown       = "move_down"
	BindingHalfPageUp     = "move_half_page_up"
	BindingHalfPageDown   = "move_half_page_down"
	BindingPageUp         = "move_full_page_up"
	BindingPageDown       = "move_full_page_down"
	BindingMoveTop        = "move_top"
	BindingMoveBottom     = "move_bottom"
	BindingCenter         = "center_screen_on_cursor"
	BindingRemove         = "playlist_remove_songs"
	BindingFileBrowser    = "open_filebrowser"
	BindingBrowserAdd     = "filebrowser_add"
	BindingBrowserEnter   = "filebrowser_change_directory"
	BindingBrowserRefresh = "filebrowser_refresh"
	BindingBrowserParent  = "filebrowser_previous_directory"
	BindingHelp           = "help"
	BindingQuit           = "quit"
)

// DefaultBindings returns the built-in key bindings. Key names follow the
// terminal key names used by the input layer ("ctrl+u", "up", "G").
func DefaultBindings() map[string][]string {
	return map[string][]string{
		BindingAbort:          {"esc", "ctrl+c"},
		BindingCommandMode:    {":"},
		BindingSearchMode:     {"/"},
		BindingSearchNext:     {"n"},
		BindingSearchPrevious: {"N"},
		BindingMoveUp:         {"k", "up"},
		BindingMoveDown:       {"j", "down"},
		BindingHalfPageUp:     {"ctrl+u"},
		BindingHalfPageDown:   {"ctrl+d"},
		BindingPageUp:         {"ctrl+b", "pgup"},
		BindingPageDown:       {"ctrl+f", "pgdown"},
		BindingMoveTop:        {"gg"},
		BindingMoveBottom:     {"G"},
		BindingCenter:         {"zz"},
		BindingRemove:         {"delete", "dd"},
		BindingFileBrowser:    {"a"},
		BindingBrowserAdd:     {" "},
		BindingBrowserEnter:   {"enter"},
		BindingBrowserRefresh: {"u"},
		BindingBrowserParent:  {"-"},
		BindingHelp:           {"h"},
		BindingQuit:           {"q", "ZZ"},
	}
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Version:               CurrentVersion,
		DefaultMusicDirectory: filepath.Join(homeDir, "Music"),
		Wild:                  "none",
		MaxDirEntries:         1024,
		SearchCaseSensitivity: "smart",
		Bindings:              DefaultBindings(),
		ReservedKeys:          []string{"ctrl+z"},
		Log: LogConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kilikali/config.yaml
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "kilikali.yaml"
	}
	return filepath.Join(dir, "kilikali", "config.yaml")
}

// DefaultLogPath returns $XDG_STATE_HOME/kilikali/kilikali.log
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "kilikali", "kilikali.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "kilikali", "kilikali.log")
	}
	return filepath.Join(os.TempDir(), "kilikali.log")
}

// DefaultPlaylistPath returns $XDG_DATA_HOME/kilikali/default.pls, the file
// written by a bare write command and loaded at start-up
func DefaultPlaylistPath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "kilikali", "default.pls")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "kilikali", "default.pls")
	}
	return filepath.Join(os.TempDir(), "kilikali-default.pls")
}

// LoadConfig loads configuration from path. A missing file yields the
// defaults; anything else that fails is returned as an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := ParseVersionedConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg = MergeWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults. Bindings merge per
// name, so a file only needs to list the bindings it changes.
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}
	if cfg.DefaultMusicDirectory == "" {
		cfg.DefaultMusicDirectory = defaults.DefaultMusicDirectory
	}
	if cfg.Wild == "" {
		cfg.Wild = defaults.Wild
	}
	if cfg.MaxDirEntries == 0 {
		cfg.MaxDirEntries = defaults.MaxDirEntries
	}
	if cfg.SearchCaseSensitivity == "" {
		cfg.SearchCaseSensitivity = defaults.SearchCaseSensitivity
	}
	if cfg.ReservedKeys == nil {
		cfg.ReservedKeys = defaults.ReservedKeys
	}

	if cfg.Bindings == nil {
		cfg.Bindings = make(map[string][]string)
	}
	for name, keys := range defaults.Bindings {
		if _, ok := cfg.Bindings[name]; !ok {
			cfg.Bindings[name] = keys
		}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaults.Log.File
	}

	return cfg
}

// Validate checks option values. Binding problems are reported by
// NewBindings.
func (c *Config) Validate() error {
	switch c.Wild {
	case "list", "none", "full":
	default:
		return &domain.ConfigError{Key: "wild", Err: fmt.Errorf("unknown value %q, want list, none or full", c.Wild)}
	}
	if c.MaxDirEntries < 1 {
		return &domain.ConfigError{Key: "max_dir_entries", Err: fmt.Errorf("must be positive, got %d", c.MaxDirEntries)}
	}
	switch c.SearchCaseSensitivity {
	case "yes", "no", "smart":
	default:
		return &domain.ConfigError{Key: "search_case_sensitivity", Err: fmt.Errorf("unknown value %q, want yes, no or smart", c.SearchCaseSensitivity)}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return &domain.ConfigError{Key: "log.level", Err: fmt.Errorf("unknown level %q", c.Log.Level)}
	}
	_, err := NewBindings(c.Bindings, c.ReservedKeys)
	return err
}

// MenuMode maps the wild option onto the completion menu mode
func (c *Config) MenuMode() types.MenuMode {
	return types.ParseMenuMode(c.Wild)
}

// MusicDirectory returns DefaultMusicDirectory with a leading ~ expanded
func (c *Config) MusicDirectory() string {
	dir := c.DefaultMusicDirectory
	if dir == "~" || len(dir) > 1 && dir[0] == '~' && os.IsPathSeparator(dir[1]) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[1:])
		}
	}
	return dir
}

package config

import (
	"fmt"
	"strings"

	"github.com/kilikali/kilikali/internal/domain"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// legacyKeyPrefix marks bindings in version 0 files, which listed each
// binding as a top-level "key_<name>" option
const legacyKeyPrefix = "key_"

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// 0 -> 1: move top-level key_<name> options under bindings
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			bindings, _ := data["bindings"].(map[string]any)
			if bindings == nil {
				bindings = make(map[string]any)
			}
			for k, v := range data {
				name, ok := strings.CutPrefix(k, legacyKeyPrefix)
				if !ok {
					continue
				}
				// A single sequence was allowed as a plain string
				if s, isString := v.(string); isString {
					v = []any{s}
				}
				bindings[name] = v
				delete(data, k)
			}
			if len(bindings) > 0 {
				data["bindings"] = bindings
			}
			data["version"] = 1
			return data, nil
		},
	},
}

// ParseVersionedConfig parses YAML config data, migrating older versions
func ParseVersionedConfig(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := raw["version"].(int); ok {
		version = v
	}

	if version > CurrentVersion {
		return nil, &domain.ConfigError{
			Key: "version",
			Err: fmt.Errorf("%w: %d is newer than %d", domain.ErrUnsupportedConfig, version, CurrentVersion),
		}
	}
	if version < CurrentVersion {
		var err error
		raw, err = ApplyMigrations(raw, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal to decode into the typed struct
	migrated, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(migrated, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config stamped with CurrentVersion
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	out := *cfg
	out.Version = CurrentVersion
	return yaml.Marshal(&out)
}

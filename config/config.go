// Package config holds runtime settings for the rating pipeline: logging
// options and the per-dataset profile table.
//
// Historically the dataset profile (embedding frequency threshold and
// spot-check item ids) was inferred by substring-matching the trial file
// name. That dispatch is now an explicit lookup table keyed by dataset
// name, selected by the caller; the old filename patterns are retained in
// the table as documentation of intent.
//
// Settings resolve in three layers: built-in defaults, then an optional
// YAML file, then environment variables with the SENTIMENT_ prefix
// (SENTIMENT_LOG_LEVEL=debug, for example).
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where the optional config file is searched, in
// priority order.
var DefaultConfigPaths = []string{
	"sentimental.yaml",
	"sentimental.yml",
}

// envPrefix namespaces the environment variables this program reads.
const envPrefix = "SENTIMENT_"

// Profile describes how one dataset family is processed.
type Profile struct {
	// Pattern is the trial-filename substring that historically selected
	// this profile. Informational only; selection is by dataset name.
	Pattern string `koanf:"pattern"`

	// MinTokenCount is the embedding trainer's vocabulary frequency
	// threshold for this dataset.
	MinTokenCount int `koanf:"min_token_count"`

	// CheckItems are the item ids spot-checked in the report.
	CheckItems []int `koanf:"check_items"`
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel string             `koanf:"log_level"`
	Datasets map[string]Profile `koanf:"datasets"`
}

// defaultSettings returns the built-in settings, applied before any file
// or environment overrides. Expressed as a nested map so koanf can merge
// partial overrides (a file changing one profile field keeps the rest).
func defaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"log_level": "info",
		"datasets": map[string]interface{}{
			"food": map[string]interface{}{
				"pattern":         "food_",
				"min_token_count": 5,
				"check_items":     []int{548, 4258, 4766, 5800},
			},
			"music": map[string]interface{}{
				"pattern":         "music_",
				"min_token_count": 10,
				"check_items":     []int{329, 11419, 14023, 14912},
			},
			"musicAndPetsup": map[string]interface{}{
				"pattern":         "musicAndPetsup_",
				"min_token_count": 20,
			},
		},
	}
}

// Load resolves configuration from defaults, the first config file found
// (or configPath when non-empty), and environment variables, in that
// order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultSettings(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	path := configPath
	if path == "" {
		for _, candidate := range DefaultConfigPaths {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Double underscores delimit nesting so single underscores survive in
	// key names: SENTIMENT_LOG_LEVEL -> log_level,
	// SENTIMENT_DATASETS__FOOD__MIN_TOKEN_COUNT -> datasets.food.min_token_count.
	envProvider := env.Provider(envPrefix, ".", func(key string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, envPrefix)), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Profile looks up the named dataset profile. Unknown names list the known
// datasets in the error so a typo is easy to spot.
func (c *Config) Profile(dataset string) (Profile, error) {
	profile, ok := c.Datasets[dataset]
	if !ok {
		return Profile{}, fmt.Errorf("unknown dataset %q (known: %s)",
			dataset, strings.Join(c.DatasetNames(), ", "))
	}
	return profile, nil
}

// DatasetNames returns the configured dataset names, sorted.
func (c *Config) DatasetNames() []string {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the run configuration.
//
// Scalar settings come from viper (file, DOMAIN_FINDER_* environment
// variables, defaults). The override, whitelist and blacklist tables are
// read from the same file with yaml directly: their keys are institution
// names, which viper would lowercase and split on dots.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/domain-finder/internal/httputil"
	"github.com/pdiddy/domain-finder/internal/probe"
	"github.com/pdiddy/domain-finder/internal/search"
	"github.com/pdiddy/domain-finder/pkg/types"
)

// Config file and environment naming.
const (
	FileName  = "domain-finder"
	EnvPrefix = "DOMAIN_FINDER"
)

// Credential sources, in addition to search.api_key and search.engine_id.
const (
	EnvAPIKey      = "GOOGLE_API_KEY"
	EnvEngineID    = "GOOGLE_CSE_ID"
	SecretAPIKey   = "google-api-key"
	SecretEngineID = "google-cse-id"
)

// ErrMissingCredentials is returned when the search API key or engine id
// cannot be resolved. It aborts the run before any institution is read.
var ErrMissingCredentials = errors.New("missing search credentials")

// Default file locations, relative to the working directory.
const (
	DefaultInputFile  = "data/input/institutions.csv"
	DefaultOutputFile = "data/output/domain_results.csv"
)

// DefaultBlacklist holds social, media and recruiting sites that are never
// an institution's own athletics domain.
var DefaultBlacklist = []string{
	"wikipedia.org", "facebook.com", "twitter.com", "instagram.com",
	"youtube.com", "linkedin.com", "ncaa.com", "maxpreps.com", "athletic.net",
	"hudl.com", "fieldlevel.com", "blogspot.com", "prestosports.com",
	"sideline.bsnsports.com", "streamlineathletes.com", "sportsrecruits.com",
	"tripadvisor.com", "postandcourier.com",
}

// SetDefaults registers a default for every scalar key. Keys without a
// default are invisible to environment overrides during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.endpoint", search.DefaultEndpoint)
	v.SetDefault("search.timeout", 10*time.Second)
	v.SetDefault("search.user_agent", httputil.DefaultUserAgent)
	v.SetDefault("search.result_count", types.MaxResultCount)
	v.SetDefault("search.rate_limit_delay", 1500*time.Millisecond)
	v.SetDefault("search.rate_limit_cooldown", httputil.DefaultCooldown)
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.engine_id", "")

	v.SetDefault("probe.timeout", probe.DefaultTimeout)
	v.SetDefault("probe.user_agent", httputil.DefaultUserAgent)
	v.SetDefault("probe.fallback", false)

	v.SetDefault("scoring.sport_keywords", []string{})
	v.SetDefault("scoring.strong_keywords", []string{})
	v.SetDefault("scoring.non_athletics_domains", []string{})

	v.SetDefault("input.input_file", DefaultInputFile)
	v.SetDefault("output.output_file", DefaultOutputFile)
	v.SetDefault("output.auto_save_interval", 10)
	v.SetDefault("output.audit_file", "")
	v.SetDefault("output.metrics_file", "")

	v.SetDefault("performance.progress_interval", 25)

	v.SetDefault("resume.auto_detect", true)
	v.SetDefault("resume.skip_processed", true)
	v.SetDefault("resume.show_stats", true)
}

// ConfigureEnv binds DOMAIN_FINDER_SECTION_KEY variables to section.key.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes the scalar settings held by v and reads the tables from the
// config file v was loaded from, if any. Defaults must already be set.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	tables, err := LoadTables(v.ConfigFileUsed())
	if err != nil {
		return cfg, err
	}
	cfg.Tables = tables
	return cfg, nil
}

// tableFile is the part of the config file that viper does not handle.
type tableFile struct {
	Overrides  map[string]string `yaml:"manual_overrides"`
	Whitelist  map[string]string `yaml:"domain_map"`
	Validation struct {
		ExcludedDomains []string `yaml:"excluded_domains"`
	} `yaml:"validation"`
}

// LoadTables reads manual_overrides, domain_map and
// validation.excluded_domains from path. An empty path or missing file
// yields empty tables and DefaultBlacklist. An explicit blacklist in the
// file replaces the default.
func LoadTables(path string) (types.Tables, error) {
	tables := types.Tables{
		Overrides: map[string]string{},
		Whitelist: map[string]string{},
		Blacklist: append([]string(nil), DefaultBlacklist...),
	}
	if path == "" {
		return tables, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tables, nil
		}
		return tables, fmt.Errorf("reading config tables %s: %w", path, err)
	}

	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return tables, fmt.Errorf("parsing config tables %s: %w", path, err)
	}
	for k, d := range tf.Overrides {
		tables.Overrides[strings.TrimSpace(k)] = strings.TrimSpace(d)
	}
	for k, d := range tf.Whitelist {
		tables.Whitelist[strings.TrimSpace(k)] = strings.TrimSpace(d)
	}
	if tf.Validation.ExcludedDomains != nil {
		tables.Blacklist = tf.Validation.ExcludedDomains
	}
	return tables, nil
}

// ResolveCredentials fills cfg.Search.APIKey and cfg.Search.EngineID. A value
// already set from the config file or DOMAIN_FINDER_SEARCH_* wins, then the
// GOOGLE_* environment variables, then the secrets directory. getenv is
// usually os.Getenv.
func ResolveCredentials(cfg *types.Config, secrets map[string]string, getenv func(string) string) error {
	pick := func(current, env, secret string) string {
		if current != "" {
			return current
		}
		if v := strings.TrimSpace(getenv(env)); v != "" {
			return v
		}
		return secrets[secret]
	}
	cfg.Search.APIKey = pick(cfg.Search.APIKey, EnvAPIKey, SecretAPIKey)
	cfg.Search.EngineID = pick(cfg.Search.EngineID, EnvEngineID, SecretEngineID)

	var missing []string
	if cfg.Search.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if cfg.Search.EngineID == "" {
		missing = append(missing, EnvEngineID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s or add .secrets/%s and .secrets/%s",
			ErrMissingCredentials, strings.Join(missing, " and "), SecretAPIKey, SecretEngineID)
	}
	return nil
}

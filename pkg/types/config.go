package types

import (
	"errors"
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "domain-finder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the keyword-search collaborator.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the Custom Search JSON API URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// APIKey and EngineID are the search credentials. They are usually
	// supplied by environment or the secrets directory rather than the file.
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
	EngineID string `json:"engine_id,omitempty" yaml:"engine_id,omitempty" mapstructure:"engine_id"`

	// ResultCount is the number of results requested per query (default and maximum 10).
	ResultCount int `json:"result_count" yaml:"result_count" mapstructure:"result_count"`

	// RateLimitDelay is the fixed delay inserted before every institution (default 1.5s).
	RateLimitDelay time.Duration `json:"rate_limit_delay" yaml:"rate_limit_delay" mapstructure:"rate_limit_delay"`

	// RateLimitCooldown is the pause after the service answers HTTP 429 (default 60s).
	RateLimitCooldown time.Duration `json:"rate_limit_cooldown" yaml:"rate_limit_cooldown" mapstructure:"rate_limit_cooldown"`
}

// ProbeConfig holds settings for the domain liveness probe.
type ProbeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Fallback enables probing FOUND_NOT_CONFIDENT candidates too. Off by
	// default: fallback matches are accepted without a probe.
	Fallback bool `json:"fallback" yaml:"fallback" mapstructure:"fallback"`
}

// ScoringConfig holds keyword lists used by the candidate scorer.
type ScoringConfig struct {
	// SportKeywords are sport-specific terms (e.g. "volleyball") that count as
	// strong keywords when found in a domain or URL.
	SportKeywords []string `json:"sport_keywords" yaml:"sport_keywords" mapstructure:"sport_keywords"`

	// StrongKeywords are generic athletics terms and common team nicknames.
	StrongKeywords []string `json:"strong_keywords" yaml:"strong_keywords" mapstructure:"strong_keywords"`

	// NonAthleticsDomains are substrings of reference and merchandise sites
	// that are always rejected.
	NonAthleticsDomains []string `json:"non_athletics_domains" yaml:"non_athletics_domains" mapstructure:"non_athletics_domains"`
}

// InputConfig locates the institution list.
type InputConfig struct {
	InputFile string `json:"input_file" yaml:"input_file" mapstructure:"input_file"`
}

// OutputConfig controls where and how often results are written.
type OutputConfig struct {
	// OutputFile receives FOUND and FOUND_NOT_CONFIDENT rows. NOT_FOUND rows
	// go to the sibling "<stem>_errors.csv".
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file"`

	// AutoSaveInterval is the number of processed records between appends (default 10).
	AutoSaveInterval int `json:"auto_save_interval" yaml:"auto_save_interval" mapstructure:"auto_save_interval"`

	// AuditFile, when set, receives a YAML document per institution with
	// every scored candidate.
	AuditFile string `json:"audit_file,omitempty" yaml:"audit_file,omitempty" mapstructure:"audit_file"`

	// MetricsFile, when set, receives a Prometheus text exposition of the
	// run counters at the end of the run.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}

// PerformanceConfig controls progress reporting.
type PerformanceConfig struct {
	// ProgressInterval is the number of records between progress lines (default 25).
	ProgressInterval int `json:"progress_interval" yaml:"progress_interval" mapstructure:"progress_interval"`
}

// ResumeConfig controls continuation from a previous, interrupted run.
type ResumeConfig struct {
	// AutoDetect reads the existing output file at startup when present.
	AutoDetect bool `json:"auto_detect" yaml:"auto_detect" mapstructure:"auto_detect"`

	// SkipProcessed removes already resolved institutions from the work queue.
	SkipProcessed bool `json:"skip_processed" yaml:"skip_processed" mapstructure:"skip_processed"`

	// ShowStats prints how many institutions were already processed.
	ShowStats bool `json:"show_stats" yaml:"show_stats" mapstructure:"show_stats"`
}

// Tables holds the lookup tables consulted before any search.
type Tables struct {
	// Overrides maps "name|division" to a forced domain.
	Overrides map[string]string `json:"manual_overrides" yaml:"manual_overrides"`

	// Whitelist maps an institution name to a known-good domain.
	Whitelist map[string]string `json:"domain_map" yaml:"domain_map"`

	// Blacklist lists domain substrings that can never be selected.
	Blacklist []string `json:"excluded_domains" yaml:"excluded_domains"`
}

// Config groups every setting for a run.
type Config struct {
	Search      SearchConfig      `json:"search" yaml:"search" mapstructure:"search"`
	Probe       ProbeConfig       `json:"probe" yaml:"probe" mapstructure:"probe"`
	Scoring     ScoringConfig     `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Input       InputConfig       `json:"input" yaml:"input" mapstructure:"input"`
	Output      OutputConfig      `json:"output" yaml:"output" mapstructure:"output"`
	Performance PerformanceConfig `json:"performance" yaml:"performance" mapstructure:"performance"`
	Resume      ResumeConfig      `json:"resume" yaml:"resume" mapstructure:"resume"`
	Tables      Tables            `json:"-" yaml:"-" mapstructure:"-"`
}

// MaxResultCount is the largest page the search service returns.
const MaxResultCount = 10

// Validate checks the configuration once at startup. Credentials are
// checked separately so that tools which never search can still validate.
func (c Config) Validate() error {
	var errs []error
	if c.Search.Endpoint == "" {
		errs = append(errs, fmt.Errorf("search.endpoint is empty"))
	}
	if c.Search.ResultCount <= 0 || c.Search.ResultCount > MaxResultCount {
		errs = append(errs, fmt.Errorf("search.result_count must be between 1 and %d, got %d", MaxResultCount, c.Search.ResultCount))
	}
	if c.Search.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("search.timeout must be positive"))
	}
	if c.Search.RateLimitDelay < 0 || c.Search.RateLimitCooldown < 0 {
		errs = append(errs, fmt.Errorf("search rate-limit durations must not be negative"))
	}
	if c.Probe.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("probe.timeout must be positive"))
	}
	if c.Output.AutoSaveInterval <= 0 {
		errs = append(errs, fmt.Errorf("output.auto_save_interval must be positive, got %d", c.Output.AutoSaveInterval))
	}
	if c.Output.OutputFile == "" {
		errs = append(errs, fmt.Errorf("output.output_file is empty"))
	}
	return errors.Join(errs...)
}

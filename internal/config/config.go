// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Inputs
	Sources    []types.SourceSpec `json:"sources" validate:"omitempty,dive"`
	ResumePath string             `json:"resume,omitempty"` // Path to resume text file (converted from PDF upstream)

	// Outputs
	OutputPath string `json:"output,omitempty"`    // Path for the CSV artifact
	Recipient  string `json:"recipient,omitempty"` // Email address the artifact is delivered to (optional)

	// Summarization thresholds
	SummaryMinInputLen int `json:"summary_min_input_len,omitempty" validate:"min=0"` // Below this, confidence degrades
	SummaryMaxLen      int `json:"summary_max_len,omitempty" validate:"min=0"`       // Summaries are truncated to this many chars

	// Retry bounds
	FetchMaxAttempts int `json:"fetch_max_attempts,omitempty" validate:"min=0,max=10"` // HTTP attempts per fetch
	FetchBackoffMs   int `json:"fetch_backoff_ms,omitempty" validate:"min=0"`          // Base backoff between HTTP attempts
	LLMMaxAttempts   int `json:"llm_max_attempts,omitempty" validate:"min=0,max=10"`   // Text-generation attempts per call site

	// Rate limiting and concurrency
	MaxConcurrentCalls int `json:"max_concurrent_calls,omitempty" validate:"min=0"` // Process-wide cap on in-flight external calls
	CallsPerSecond     int `json:"calls_per_second,omitempty" validate:"min=0"`     // Process-wide external call rate
	SourceWorkers      int `json:"source_workers,omitempty" validate:"min=0"`       // Concurrent source enumerations
	RecordWorkers      int `json:"record_workers,omitempty" validate:"min=0"`       // Concurrent per-faculty workers
	RunTimeoutSec      int `json:"run_timeout_s,omitempty" validate:"min=0"`        // Whole-run deadline; 0 disables

	// Behavior
	APIKey     string `json:"api_key,omitempty"`      // Gemini API key (prefer GEMINI_API_KEY env var)
	APIKeyFile string `json:"api_key_file,omitempty"` // File containing the Gemini API key
	UseBrowser bool   `json:"use_browser,omitempty"`  // Render JS-heavy directory pages in a headless browser
	Verbose    bool   `json:"verbose,omitempty"`      // Print detailed debug information
	JSONLogs   bool   `json:"json_logs,omitempty"`    // Emit logs as JSON

	// SMTP delivery (used only when Recipient is set)
	SMTP SMTPConfig `json:"smtp,omitempty"`
}

// SMTPConfig holds the delivery collaborator's settings. The password is
// resolved via the secrets loader (inline file or SMTP_PASSWORD env var).
type SMTPConfig struct {
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty" validate:"min=0,max=65535"`
	From         string `json:"from,omitempty" validate:"omitempty,email"`
	PasswordFile string `json:"password_file,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required-field
// checks happen after CLI flag merging; this validates shapes and ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: field %s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	for i, src := range c.Sources {
		if !src.AdapterKind.Valid() {
			return fmt.Errorf("config error: sources[%d] (%s) has unknown adapter_kind %q", i, src.InstitutionName, src.AdapterKind)
		}
	}

	if c.ResumePath != "" {
		if _, err := os.Stat(c.ResumePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumePath)
		}
	}

	if c.Recipient != "" {
		if err := validator.New().Var(c.Recipient, "email"); err != nil {
			return fmt.Errorf("config error: recipient %q is not a valid email address", c.Recipient)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags are applied before this, so flags always win.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Sources) == 0 {
		result.Sources = defaults.Sources
	}
	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.OutputPath == "" {
		result.OutputPath = defaults.OutputPath
	}
	if result.Recipient == "" {
		result.Recipient = defaults.Recipient
	}
	if result.SummaryMinInputLen == 0 {
		result.SummaryMinInputLen = defaults.SummaryMinInputLen
	}
	if result.SummaryMaxLen == 0 {
		result.SummaryMaxLen = defaults.SummaryMaxLen
	}
	if result.FetchMaxAttempts == 0 {
		result.FetchMaxAttempts = defaults.FetchMaxAttempts
	}
	if result.FetchBackoffMs == 0 {
		result.FetchBackoffMs = defaults.FetchBackoffMs
	}
	if result.LLMMaxAttempts == 0 {
		result.LLMMaxAttempts = defaults.LLMMaxAttempts
	}
	if result.MaxConcurrentCalls == 0 {
		result.MaxConcurrentCalls = defaults.MaxConcurrentCalls
	}
	if result.CallsPerSecond == 0 {
		result.CallsPerSecond = defaults.CallsPerSecond
	}
	if result.SourceWorkers == 0 {
		result.SourceWorkers = defaults.SourceWorkers
	}
	if result.RecordWorkers == 0 {
		result.RecordWorkers = defaults.RecordWorkers
	}
	if result.RunTimeoutSec == 0 {
		result.RunTimeoutSec = defaults.RunTimeoutSec
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.APIKeyFile == "" {
		result.APIKeyFile = defaults.APIKeyFile
	}
	if result.SMTP.Host == "" {
		result.SMTP.Host = defaults.SMTP.Host
	}
	if result.SMTP.Port == 0 {
		result.SMTP.Port = defaults.SMTP.Port
	}
	if result.SMTP.From == "" {
		result.SMTP.From = defaults.SMTP.From
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in defaults applied after config file and
// flag merging. The retry and quota bounds here are the configuration
// constants the design leaves tunable rather than hard-coded.
func Defaults() Config {
	return Config{
		OutputPath:         "research_outreach_emails.csv",
		SummaryMinInputLen: 200,
		SummaryMaxLen:      400,
		FetchMaxAttempts:   3,
		FetchBackoffMs:     500,
		LLMMaxAttempts:     2,
		MaxConcurrentCalls: 4,
		CallsPerSecond:     2,
		SourceWorkers:      3,
		RecordWorkers:      8,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
	}
}

// RunTimeout converts the configured run deadline to a duration; zero
// means no deadline.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.RunTimeoutSec) * time.Second
}

// FetchBackoff converts the configured base backoff to a duration.
func (c *Config) FetchBackoff() time.Duration {
	return time.Duration(c.FetchBackoffMs) * time.Millisecond
}

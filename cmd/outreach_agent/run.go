package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/config"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/llm"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/logger"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/mailer"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/observability"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/pipeline"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/report"
	"github.com/muneer-a-khan/Automatic-ResearchLabEmailer/internal/secrets"

	"go.uber.org/zap"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full outreach pipeline end-to-end",
	Long: `Orchestrates the entire outreach process: resume structuring -> directory enumeration -> profile fetching -> research summarization -> email synthesis -> CSV artifact -> optional delivery.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath string
	runResume     string
	runOutput     string
	runRecipient  string
	runAPIKey     string
	runTimeoutSec int
	runUseBrowser bool
	runVerbose    bool
	runJSONLogs   bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to resume text file (PDF converted to text upstream)")
	runCommand.Flags().StringVarP(&runOutput, "output", "o", "", "Path for the CSV artifact")
	runCommand.Flags().StringVar(&runRecipient, "recipient", "", "Email address the artifact is delivered to (optional)")
	runCommand.Flags().IntVar(&runTimeoutSec, "run-timeout", 0, "Whole-run deadline in seconds (0 disables)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Render JS-heavy directory pages in a headless browser (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")
	runCommand.Flags().BoolVar(&runJSONLogs, "json-logs", false, "Emit logs as JSON")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.ResumePath = runResume
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = runOutput
	}
	if cmd.Flags().Changed("recipient") {
		cfg.Recipient = runRecipient
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("run-timeout") {
		cfg.RunTimeoutSec = runTimeoutSec
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("json-logs") {
		cfg.JSONLogs = runJSONLogs
	}

	// Step 3: Apply defaults for unset values, then validate
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 4: Validate required fields
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source must be configured (via --config)")
	}
	if cfg.ResumePath == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}

	// Step 5: Secrets
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "Gemini API key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	resumeBytes, err := os.ReadFile(cfg.ResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", cfg.ResumePath, err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	runner := pipeline.New(cfg, client, log)
	runReport, err := runner.Run(ctx, string(resumeBytes))
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintApplicantProfile(runReport.Applicant)
		printer.PrintSourceResults(runReport.Sources)
		printer.PrintRunReport(runReport)
	}

	if err := report.WriteFile(cfg.OutputPath, runReport); err != nil {
		return err
	}
	log.Info("artifact written", zap.String("path", cfg.OutputPath), zap.Int("rows", len(runReport.Records)))

	if cfg.Recipient != "" {
		if err := deliverArtifact(cfg, runReport.RunID); err != nil {
			return fmt.Errorf("artifact written but delivery failed: %w", err)
		}
		log.Info("artifact delivered", zap.String("recipient", cfg.Recipient))
	}

	return nil
}

// deliverArtifact emails the finished CSV to the configured recipient.
func deliverArtifact(cfg config.Config, runID string) error {
	password, err := secrets.Load(secrets.Source{
		Name: "SMTP password",
		File: cfg.SMTP.PasswordFile,
		Env:  "SMTP_PASSWORD",
	})
	if err != nil {
		return err
	}

	artifact, err := os.ReadFile(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to re-read artifact: %w", err)
	}

	m := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		From:     cfg.SMTP.From,
		Password: password,
	})
	body := fmt.Sprintf("Attached is your generated research outreach email CSV (run %s).", runID)
	return m.SendArtifact(cfg.Recipient, "Research Outreach Emails", body, cfg.OutputPath, artifact)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-agent/internal/config"
	"github.com/jonathan/outreach-agent/internal/db"
	"github.com/jonathan/outreach-agent/internal/enrich"
	"github.com/jonathan/outreach-agent/internal/followup"
	"github.com/jonathan/outreach-agent/internal/generate"
	"github.com/jonathan/outreach-agent/internal/listings"
	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/outreach"
	"github.com/jonathan/outreach-agent/internal/pipeline"
	"github.com/jonathan/outreach-agent/internal/research"
	"github.com/jonathan/outreach-agent/internal/retry"
	"github.com/jonathan/outreach-agent/internal/sheets"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full outreach pipeline end-to-end",
	Long: `Orchestrates the entire outreach process: listing search -> detail fetch -> contact resolution -> company research -> profile generation -> message generation -> delivery -> follow-up scheduling.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runRole        string
	runLocation    string
	runMaxJobs     int
	runAPIKey      string
	runDatabaseURL string
	runVerbose     bool
	runDryRun      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runRole, "role", "r", "", "Job role to search for (e.g. \"Software Engineer\")")
	runCommand.Flags().StringVarP(&runLocation, "location", "l", "", "Location to search in; see the locations command for supported values")
	runCommand.Flags().IntVar(&runMaxJobs, "max-jobs", 10, "Maximum number of listings to process")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed stage output")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Generate everything but do not send messages")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := runCommand.MarkFlagRequired("role"); err != nil {
		panic(err)
	}
	if err := runCommand.MarkFlagRequired("location"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := &config.Config{}
	if runConfigPath != "" {
		loaded, err := config.Load(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// CLI overrides take priority over config file values.
	if cmd.Flags().Changed("api-key") {
		cfg.GeminiAPIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = runDryRun
	}

	cfg.FillFromEnv()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, ok := config.GeoID(runLocation); !ok {
		return fmt.Errorf("unsupported location %q (supported: %v)", runLocation, config.LocationNames())
	}

	p, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = p.Run(ctx, runRole, runLocation, runMaxJobs)
	return err
}

// buildPipeline assembles the stage collaborators from configuration. The
// returned cleanup closes everything that holds a connection.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	llmClient, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closers = append(closers, func() { _ = llmClient.Close() })

	// Optional enrichment tiers degrade to nil collaborators.
	var searcher enrich.ProfileSearcher
	if cfg.SearchAPIKey != "" && cfg.SearchCX != "" {
		web, err := enrich.NewWebSearcher(ctx, cfg.SearchAPIKey, cfg.SearchCX)
		if err != nil {
			fmt.Printf("Warning: profile search unavailable: %v\n", err)
		} else {
			searcher = web
		}
	}
	var emailFinder enrich.EmailFinder
	if cfg.HunterAPIKey != "" {
		emailFinder = enrich.NewHunterClient(cfg.HunterAPIKey, cfg.HunterBaseURL, cfg.LookupTimeout)
	}

	var artifacts pipeline.ArtifactStore
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			closers = append(closers, database.Close)
			artifacts = database
		}
	}

	rows := sheets.NewClient(cfg.LookupTimeout)
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.MaxRetries

	p := pipeline.New(pipeline.Options{
		Source:    listings.NewClient(cfg),
		Resolver:  enrich.NewResolver(searcher, emailFinder),
		Research:  research.NewResearcher(llmClient, research.NewNewsClient(cfg.NewsAPIKey, cfg.NewsBaseURL, cfg.LookupTimeout)),
		Generator: generate.NewGenerator(llmClient),
		Email:     outreach.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailAddress, cfg.EmailPassword),
		Network:   newMessenger(cfg),
		Rows:      rows,
		Followups: followup.NewScheduler(rows, cfg.FollowupSheetURL),
		Artifacts: artifacts,

		SheetURL:       cfg.SheetURL,
		Policy:         policy,
		RateLimitDelay: cfg.RateLimitDelay,
		Verbose:        cfg.Verbose,
		DryRun:         cfg.DryRun,
	})
	return p, cleanup, nil
}

// newMessenger returns the network messenger, or nil when no token is
// configured; the pipeline then reports the channel as failed rather than
// attempting it.
func newMessenger(cfg *config.Config) pipeline.NetworkMessenger {
	if cfg.LinkedInToken == "" || cfg.LinkedInBaseURL == "" {
		return nil
	}
	return outreach.NewLinkedInMessenger(cfg.LinkedInBaseURL, cfg.LinkedInToken, cfg.LookupTimeout)
}

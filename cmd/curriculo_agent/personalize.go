package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rmarques/curriculo-agent/internal/jobdata"
	"github.com/rmarques/curriculo-agent/internal/observability"
	"github.com/rmarques/curriculo-agent/internal/personalize"
	"github.com/rmarques/curriculo-agent/internal/skillbank"
)

var personalizeCmd = &cobra.Command{
	Use:   "personalize",
	Short: "Generate personalized résumé sections for a parsed job",
	Long:  "Generate summary, skills and projects sections tailored to a parsed job, reject fabricated content and report the ATS score of the result.",
	RunE:  runPersonalize,
}

var (
	personalizeJobFile      string
	personalizeTemplateFile string
	personalizeOutputFile   string
)

func init() {
	personalizeCmd.Flags().StringVarP(&personalizeJobFile, "job", "j", "", "Path to validated job data JSON (required)")
	personalizeCmd.Flags().StringVarP(&personalizeTemplateFile, "template", "t", "", "Path to base résumé template JSON")
	personalizeCmd.Flags().StringVarP(&personalizeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	_ = personalizeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(personalizeCmd)
}

func runPersonalize(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	templatePath := personalizeTemplateFile
	if templatePath == "" {
		templatePath = cfg.Template
	}
	if templatePath == "" {
		return fmt.Errorf("résumé template is required (use --template or set it in the config file)")
	}

	job, err := loadJobFile(personalizeJobFile)
	if err != nil {
		return err
	}
	tpl, err := personalize.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	bank, err := loadSkillBank(ctx, cfg.DatabaseURL, cfg.UserID)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	outcome, err := personalize.Personalize(ctx, client, personalize.Request{
		Profile:  cfg.Profile(),
		Template: tpl,
		Bank:     bank,
		Job:      job,
		Models:   cfg.ModelChain(),
	})
	if err != nil {
		return fmt.Errorf("personalization failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintSections(&outcome.Sections)
		printer.PrintScore(outcome.ATS)
		fmt.Fprintf(os.Stderr, "Tokens: %d\n", outcome.Usage.TotalTokens)
	}

	output, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode outcome: %w", err)
	}
	return writeOutput(personalizeOutputFile, string(output))
}

// loadJobFile reads previously parsed job data and re-validates it, so a
// hand-edited file cannot smuggle invalid values into the prompts.
func loadJobFile(path string) (*jobdata.StructuredJobData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	job, err := jobdata.Validate(data)
	if err != nil {
		return nil, fmt.Errorf("job file is not valid job data: %w", err)
	}
	return job, nil
}

// loadSkillBank fetches the user's skill bank when a database is configured.
// Both settings are optional; without them personalization runs on the
// template alone.
func loadSkillBank(ctx context.Context, databaseURL, userID string) ([]skillbank.Entry, error) {
	if databaseURL == "" || userID == "" {
		return nil, nil
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id %q: %w", userID, err)
	}

	store, err := skillbank.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to skill bank: %w", err)
	}
	defer store.Close()

	return store.ListByUser(ctx, uid)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmarques/curriculo-agent/internal/observability"
	"github.com/rmarques/curriculo-agent/internal/pipeline"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse a job posting into validated structured JSON",
	Long:  "Parse a raw job posting (plain text or HTML, from a file or stdin) into schema-validated structured job data.",
	RunE:  runParseJob,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseKeywords   bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to job posting file (default: stdin)")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseJobCmd.Flags().BoolVar(&parseKeywords, "keywords", false, "Also extract ATS keywords")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	posting, err := readInput(parseInputFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := pipeline.ParseJob(ctx, client, posting, pipeline.ParseOptions{
		Models:          cfg.ModelChain(),
		ExtractKeywords: parseKeywords,
		Timeout:         cfg.RequestTimeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to parse job posting: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJobData(result.Job)
		printer.PrintKeywords(result.Keywords)
		fmt.Fprintf(os.Stderr, "Model: %s  Tokens: %d  Elapsed: %v\n",
			result.Model, result.Usage.TotalTokens, result.Elapsed)
	}

	output, err := pipeline.MarshalJobData(result.Job)
	if err != nil {
		return err
	}
	return writeOutput(parseOutputFile, output)
}

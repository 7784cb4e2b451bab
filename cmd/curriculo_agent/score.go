package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmarques/curriculo-agent/internal/ats"
	"github.com/rmarques/curriculo-agent/internal/keywords"
	"github.com/rmarques/curriculo-agent/internal/observability"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score résumé content against a parsed job",
	Long:  "Extract ATS keywords from validated job data and score résumé text against them, printing the 0-100 total with its per-category breakdown.",
	RunE:  runScore,
}

var (
	scoreJobFile    string
	scoreResumeFile string
	scoreJSON       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to validated job data JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to résumé text file (default: stdin)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Emit the result as JSON instead of formatted output")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	job, err := loadJobFile(scoreJobFile)
	if err != nil {
		return err
	}
	content, err := readInput(scoreResumeFile)
	if err != nil {
		return err
	}

	kw := keywords.Extract(job)
	result := ats.Score(content, kw)

	if scoreJSON {
		output, err := json.MarshalIndent(map[string]any{
			"keywords": kw,
			"score":    result,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode score: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintKeywords(kw)
	printer.PrintScore(result)
	return nil
}

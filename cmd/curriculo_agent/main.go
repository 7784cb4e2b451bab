// Package main provides the entry point for the curriculo agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "curriculo_agent",
	Short: "Job posting parser and résumé personalization agent",
	Long:  "Curriculo Agent parses Brazilian job postings into validated structured data, extracts ATS keywords, scores résumé content and generates fabrication-guarded personalized sections.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rmarques/curriculo-agent/internal/config"
	"github.com/rmarques/curriculo-agent/internal/llm"
)

var (
	configPath string
	flagAPIKey string
	flagModels []string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringSliceVar(&flagModels, "models", nil, "Ranked model fallback chain, first is preferred")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed pipeline artifacts")
}

// loadConfig merges CLI flags over the optional config file. Flags win,
// then file values, then defaults.
func loadConfig() (config.Config, error) {
	flags := config.Config{
		APIKey:  flagAPIKey,
		Models:  flagModels,
		Verbose: verbose,
	}

	if configPath == "" {
		return flags, nil
	}

	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := fileCfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return flags.MergeWithDefaults(*fileCfg), nil
}

// resolveAPIKey returns the configured key or the environment fallback.
func resolveAPIKey(cfg config.Config) (string, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return key, nil
}

// newClient builds the Gemini client from resolved configuration.
func newClient(ctx context.Context, cfg config.Config) (*llm.GeminiClient, error) {
	key, err := resolveAPIKey(cfg)
	if err != nil {
		return nil, err
	}
	return llm.NewGeminiClient(ctx, key, llm.DefaultOptions())
}

// readInput reads a file path, or stdin when path is "-" or empty.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

// writeOutput writes content to a file, or stdout when path is empty.
func writeOutput(path, content string) error {
	if path == "" {
		fmt.Println(strings.TrimRight(content, "\n"))
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

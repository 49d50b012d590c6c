package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	docnorm "github.com/ewdocs/go-docnorm"
	"github.com/ewdocs/go-docnorm/internal/config"
	"github.com/ewdocs/go-docnorm/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input files found")
	ErrReadInput      = errors.New("failed to read input file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrMissingAPIKey  = errors.New("OPENAI_API_KEY is not set")
)

const usage = `docnorm normalizes technical documents into clean Markdown.

Usage:
  docnorm convert [flags] [input-dir]   convert HTML exports to cleaned Markdown
  docnorm clean   [flags] <files...>    clean Markdown files
  docnorm group   [flags] [input-dir]   group similar Markdown files by embedding
  docnorm version                       print the version

Run 'docnorm <command> --help' for command flags.`

// run dispatches the subcommand. stdout receives results, stderr progress.
func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 2 {
		fmt.Fprintln(stderr, usage)
		return nil
	}

	switch args[1] {
	case "convert":
		return runConvert(args[2:], stderr)
	case "clean":
		return runClean(args[2:], stdout)
	case "group":
		return runGroup(args[2:], stdout, stderr)
	case "version", "--version":
		fmt.Fprintln(stdout, Version)
		return nil
	case "help", "--help", "-h":
		fmt.Fprintln(stdout, usage)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[1])
	}
}

// loadConfig loads the named config and applies environment overrides.
func loadConfig(name string) (*config.Config, error) {
	cfg, err := config.Load(name)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// serviceOptions builds the service options from config plus flag overrides.
func serviceOptions(cfg *config.Config, company string) []docnorm.Option {
	if company == "" {
		company = cfg.Company
	}
	opts := []docnorm.Option{
		docnorm.WithBucketThresholds(docnorm.BucketThresholds{
			Short:  cfg.Buckets.Short,
			Medium: cfg.Buckets.Medium,
		}),
	}
	if company != "" {
		opts = append(opts, docnorm.WithCompany(company))
	}
	return opts
}

// resolveContentType picks the flag value over the config value.
func resolveContentType(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.ContentType
}

// resolveInputDir picks the positional argument over the config default.
func resolveInputDir(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", fmt.Errorf("%w: no input directory given", ErrNoInput)
}

// outputPath routes a file into its bucket folder under outDir.
func outputPath(outDir, name, bucket string, route bool) (string, error) {
	if !route {
		return filepath.Join(outDir, name), nil
	}
	bucketDir := filepath.Join(outDir, bucket)
	if err := fileutil.EnsureDir(bucketDir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return filepath.Join(bucketDir, name), nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from user-supplied input dirs
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// processFile runs one document through a pooled service.
func processFile(ctx context.Context, pool *docnorm.ServicePool, input docnorm.Input) (*docnorm.Result, error) {
	svc, err := pool.Acquire()
	if err != nil {
		return nil, err
	}
	defer pool.Release(svc)
	return svc.Process(ctx, input)
}

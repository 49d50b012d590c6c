package main

import (
	"os"

	"github.com/ewdocs/go-docnorm/internal/config"
)

// Environment variables recognized by the CLI. They override the config
// file but lose to explicit flags.
const (
	envCompany     = "DOCNORM_COMPANY"
	envContentType = "DOCNORM_CONTENT_TYPE"
)

func applyEnvOverrides(cfg *config.Config) {
	if company := os.Getenv(envCompany); company != "" {
		cfg.Company = company
	}
	if contentType := os.Getenv(envContentType); contentType != "" {
		cfg.ContentType = contentType
	}
}

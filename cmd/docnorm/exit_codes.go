package main

import (
	"errors"
	"os"

	docnorm "github.com/ewdocs/go-docnorm"
	"github.com/ewdocs/go-docnorm/internal/config"
)

// Exit codes returned to the shell.
const (
	exitOK       = 0
	exitGeneral  = 1
	exitUsage    = 2
	exitIO       = 3
	exitUpstream = 4
)

// usageErrors are caused by bad invocations or bad input documents.
var usageErrors = []error{
	ErrUnknownCommand,
	config.ErrConfigNotFound,
	config.ErrConfigParse,
	config.ErrInvalidField,
	docnorm.ErrInvalidInput,
	docnorm.ErrEmptyDocument,
	docnorm.ErrMissingCompany,
	docnorm.ErrInvalidCompany,
	docnorm.ErrInvalidContentType,
	docnorm.ErrInvalidThresholds,
	docnorm.ErrDocumentTooLong,
	ErrMissingAPIKey,
}

// ioErrors are filesystem failures.
var ioErrors = []error{
	ErrNoInput,
	ErrReadInput,
	ErrWriteOutput,
	docnorm.ErrCacheRead,
	docnorm.ErrCacheWrite,
	os.ErrNotExist,
	os.ErrPermission,
}

// upstreamErrors come from remote API calls.
var upstreamErrors = []error{
	docnorm.ErrChat,
	docnorm.ErrEmbedding,
	docnorm.ErrHTMLConversion,
	docnorm.ErrTokenCount,
}

// exitCodeFor maps an error to a process exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	for _, target := range usageErrors {
		if errors.Is(err, target) {
			return exitUsage
		}
	}
	for _, target := range ioErrors {
		if errors.Is(err, target) {
			return exitIO
		}
	}
	for _, target := range upstreamErrors {
		if errors.Is(err, target) {
			return exitUpstream
		}
	}
	return exitGeneral
}

package main

import (
	"fmt"
	"io"
	"path/filepath"

	docnorm "github.com/ewdocs/go-docnorm"
	"github.com/ewdocs/go-docnorm/internal/fileutil"
)

// runClean cleans the given Markdown files. With --output the results are
// written next to their names under the output directory; otherwise the
// cleaned text goes to stdout. No token counting happens here, so the
// command works without network access.
func runClean(args []string, stdout io.Writer) error {
	var flags cleanFlags
	fs := newCleanFlagSet(&flags)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no files given", ErrNoInput)
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	cleaner := docnorm.NewCleaner()
	var normalizer *docnorm.Normalizer
	if resolveContentType(flags.contentType, cfg) == docnorm.ContentTypeReleaseNotes {
		company := flags.company
		if company == "" {
			company = cfg.Company
		}
		normalizer, err = docnorm.NewNormalizer(company)
		if err != nil {
			return err
		}
	}

	if flags.output != "" {
		if err := fileutil.EnsureDir(flags.output); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	for _, path := range fs.Args() {
		content, err := readFile(path)
		if err != nil {
			return err
		}

		cleaned, err := cleaner.Clean(content)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if normalizer != nil {
			cleaned, err = normalizer.Normalize(cleaned)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}

		if flags.output == "" {
			fmt.Fprintln(stdout, cleaned)
			continue
		}
		target := filepath.Join(flags.output, filepath.Base(path))
		if err := writeFile(target, cleaned); err != nil {
			return err
		}
	}
	return nil
}

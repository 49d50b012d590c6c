package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	docnorm "github.com/ewdocs/go-docnorm"
	"github.com/ewdocs/go-docnorm/internal/fileutil"
)

// runConvert converts every HTML file in the input directory to cleaned
// Markdown, routed into short/medium/long folders by token count.
func runConvert(args []string, stderr io.Writer) error {
	var flags convertFlags
	fs := newConvertFlagSet(&flags)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}

	inputDir, err := resolveInputDir(fs.Args(), cfg)
	if err != nil {
		return err
	}
	outDir := flags.output
	if outDir == "" {
		outDir = cfg.Output.DefaultDir
	}
	if outDir == "" {
		outDir = inputDir
	}
	if err := fileutil.EnsureDir(outDir); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	files, err := fileutil.DiscoverFiles(inputDir, ".html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .html files in %s", ErrNoInput, inputDir)
	}

	contentType := resolveContentType(flags.contentType, cfg)
	pool := docnorm.NewServicePool(docnorm.ResolvePoolSize(flags.workers), serviceOptions(cfg, flags.company)...)
	defer pool.Close()

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	fail := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	for i := 0; i < pool.Size(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := convertOne(context.Background(), pool, path, outDir, contentType, !flags.noRoute); err != nil {
					fail(fmt.Errorf("%s: %w", path, err))
					continue
				}
				if flags.common.verbose {
					fmt.Fprintf(stderr, "Converted: %s\n", path)
				}
			}
		}()
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if !flags.common.quiet {
		fmt.Fprintf(stderr, "Converted %d of %d files\n", len(files)-len(errs), len(files))
	}
	return errors.Join(errs...)
}

// convertOne converts a single HTML file and writes the routed output.
func convertOne(ctx context.Context, pool *docnorm.ServicePool, path, outDir, contentType string, route bool) error {
	content, err := readFile(path)
	if err != nil {
		return err
	}

	result, err := processFile(ctx, pool, docnorm.Input{HTML: content, ContentType: contentType})
	if err != nil {
		return err
	}

	name := fileutil.WithExtension(filepath.Base(path), ".md")
	target, err := outputPath(outDir, name, result.Bucket, route)
	if err != nil {
		return err
	}
	return writeFile(target, result.Markdown)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	docnorm "github.com/ewdocs/go-docnorm"
	"github.com/ewdocs/go-docnorm/internal/fileutil"
)

// runGroup embeds the Markdown files in a directory and reports which files
// are similar to which. Embeddings are cached by content checksum so a
// second run only pays for changed files.
func runGroup(args []string, stdout, stderr io.Writer) error {
	var flags groupFlags
	fs := newGroupFlagSet(&flags)
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

	threshold := flags.threshold
	if threshold == 0 {
		threshold = cfg.Grouping.Threshold
	}
	cachePath := flags.cache
	if cachePath == "" {
		cachePath = cfg.Grouping.CacheFile
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return ErrMissingAPIKey
	}

	files, err := fileutil.DiscoverFiles(inputDir, ".md")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .md files in %s", ErrNoInput, inputDir)
	}

	cache, err := docnorm.LoadEmbeddingCache(cachePath)
	if err != nil {
		return err
	}

	embedder := docnorm.NewOpenAIEmbedder(apiKey)
	counter := docnorm.NewTiktokenCounter()

	names, vectors, err := embedFiles(context.Background(), files, embedder, counter, cache, stderr, flags.common.quiet)
	if err != nil {
		return err
	}
	if err := cache.Save(); err != nil {
		return err
	}
	if len(names) < 2 {
		fmt.Fprintln(stderr, "not enough files to compare")
		return nil
	}

	matrix := docnorm.SimilarityMatrix(vectors)
	groups := docnorm.GroupSimilar(matrix, threshold)
	report := formatGroups(names, groups)

	if flags.output != "" {
		return writeFile(flags.output, report)
	}
	fmt.Fprint(stdout, report)
	return nil
}

// embedFiles returns the embedding for each file, consulting the cache
// first. Files over the embedding token limit are skipped with a note.
func embedFiles(ctx context.Context, files []string, embedder docnorm.Embedder, counter docnorm.TokenCounter, cache *docnorm.EmbeddingCache, stderr io.Writer, quiet bool) ([]string, [][]float32, error) {
	names := make([]string, 0, len(files))
	vectors := make([][]float32, 0, len(files))

	for _, path := range files {
		content, err := readFile(path)
		if err != nil {
			return nil, nil, err
		}
		name := filepath.Base(path)

		checksum := docnorm.Checksum(content)
		if embedding, ok := cache.Get(checksum); ok {
			names = append(names, name)
			vectors = append(vectors, embedding)
			continue
		}

		tokens, err := counter.CountTokens(content)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if tokens > docnorm.MaxEmbeddingTokens {
			fmt.Fprintf(stderr, "skipping %s: %d tokens exceeds the embedding limit\n", name, tokens)
			continue
		}

		embedding, err := embedder.Embed(ctx, content)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		cache.Put(checksum, embedding)
		if !quiet {
			fmt.Fprintf(stderr, "embedded %s (%d tokens)\n", name, tokens)
		}

		names = append(names, name)
		vectors = append(vectors, embedding)
	}
	return names, vectors, nil
}

// formatGroups renders the similarity report, one block per file that has
// at least one similar neighbour.
func formatGroups(names []string, groups map[int][]int) string {
	var b strings.Builder
	for i, name := range names {
		similar, ok := groups[i]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "File: %s is similar to:\n", name)
		for _, j := range similar {
			fmt.Fprintf(&b, " - %s\n", names[j])
		}
	}
	if b.Len() == 0 {
		return "no similar files found\n"
	}
	return b.String()
}

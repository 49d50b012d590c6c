// Package docnorm normalizes heterogeneous technical documents (wiki HTML
// exports and issue-tracker release-note dumps) into clean Markdown
// suitable for summarization and embedding.
//
// # Quick Start
//
// Create a service, process a document, and route it by token bucket:
//
//	svc, err := docnorm.New(docnorm.WithCompany("acme"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := svc.Process(ctx, docnorm.Input{
//	    Markdown:    content,
//	    ContentType: docnorm.ContentTypeReleaseNotes,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Bucket, result.Tokens)
//
// # Processing Pipeline
//
// Each document flows through these stages:
//
//  1. HTML to Markdown conversion (when raw HTML is supplied)
//  2. Structural cleaning: truncate to the first header, drop attachment
//     sections and references, clean up lines, promote indented blocks to
//     code fences, collapse excessive line breaks
//  3. Release-note normalization (for release-note content): one line per
//     issue row, literal task type and priority, canonical key URLs
//  4. Token counting and short/medium/long bucket routing
//
// The cleaning and normalization transforms are pure functions over text:
// no I/O, no shared mutable state, and idempotent. Running a document
// through the pipeline twice yields the first pass's output.
//
// # Parallel Processing
//
// For batch work, use ServicePool to share services across workers:
//
//	pool := docnorm.NewServicePool(4, docnorm.WithCompany("acme"))
//	defer pool.Close()
//
//	svc, err := pool.Acquire()
//	defer pool.Release(svc)
//
// # Summarization and Grouping
//
// Summarizer sends cleaned documents to a chat model tier chosen by token
// count and extracts technical categories from the response. Embedder plus
// EmbeddingCache and GroupSimilar implement checksum-cached embedding and
// cosine-similarity grouping of related documents.
package docnorm

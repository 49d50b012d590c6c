package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	company     string
	contentType string
	noRoute     bool
}

// cleanFlags holds all flags for the clean command.
type cleanFlags struct {
	common      commonFlags
	output      string
	company     string
	contentType string
}

// groupFlags holds all flags for the group command.
type groupFlags struct {
	common    commonFlags
	output    string
	threshold float64
	cache     string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file details")
}

// newConvertFlagSet builds the flag set for the convert command.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: input directory)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "worker count (0 = auto)")
	fs.StringVar(&f.company, "company", "", "issue-tracker company name")
	fs.StringVar(&f.contentType, "type", "", "content type: documentation or release_notes")
	fs.BoolVar(&f.noRoute, "no-route", false, "write all files flat instead of short/medium/long folders")
	return fs
}

// newCleanFlagSet builds the flag set for the clean command.
func newCleanFlagSet(f *cleanFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: stdout)")
	fs.StringVar(&f.company, "company", "", "issue-tracker company name")
	fs.StringVar(&f.contentType, "type", "", "content type: documentation or release_notes")
	return fs
}

// newGroupFlagSet builds the flag set for the group command.
func newGroupFlagSet(f *groupFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("group", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "write groupings to this file (default: stdout)")
	fs.Float64Var(&f.threshold, "threshold", 0, "cosine similarity threshold (0 = config value)")
	fs.StringVar(&f.cache, "cache", "", "embedding cache file (default: config value)")
	return fs
}

package main

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
	"golang.org/x/net/publicsuffix"
)

// Options is the command-line surface, parsed by go-flags
type Options struct {
	// Generation options
	Number        int     `short:"n" long:"number" description:"Number of queries to generate" default:"4"`
	MaxSize       int     `short:"m" long:"maxsize" description:"Maximum length of random labels" default:"10"`
	PercentRandom float64 `short:"p" long:"percentrandom" description:"Fraction of random queries when a zone file is given" default:"0.3"`
	TLD           string  `short:"t" long:"tld" description:"Top-level domain appended to every query" default:"org"`
	ZoneFile      string  `short:"f" long:"zonefile" description:"Zone file to sample real domain names from"`

	// Output options
	Output string `short:"o" long:"output" description:"Write queries to this file (default: stdout)"`
	Rate   int    `short:"r" long:"rate" description:"Maximum queries written per second (0 = unlimited)" default:"0"`
	Seed   int64  `short:"s" long:"seed" description:"Seed for the random source (default: current time)"`

	// Feature flags
	Quiet   bool   `short:"q" long:"quiet" description:"Do not echo domain names found in the zone file"`
	Verbose bool   `short:"v" long:"verbose" description:"Verbose logging and final statistics"`
	LogFile string `short:"l" long:"log" description:"Log file (default: stderr)"`
	Version bool   `long:"version" description:"Show version information"`
}

// Config holds the validated settings for one run. It is built once by
// newConfig and never modified afterwards.
type Config struct {
	Count         int
	MaxLabelSize  int
	PercentRandom float64
	TLD           string
	ZoneFile      string

	Output string
	Rate   int
	Seed   int64
	Seeded bool

	Quiet   bool
	Verbose bool
	LogFile string
}

// newConfig validates opts. seeded reports whether --seed was given.
func newConfig(opts *Options, seeded bool) (*Config, error) {
	if opts.Number <= 0 {
		return nil, &ArgumentError{Err: fmt.Errorf("number of queries must be positive, got %d", opts.Number)}
	}
	if opts.MaxSize <= 0 {
		return nil, &ArgumentError{Err: fmt.Errorf("maximum label size must be positive, got %d", opts.MaxSize)}
	}
	// Written so NaN fails as well
	if !(opts.PercentRandom >= 0 && opts.PercentRandom <= 1) {
		return nil, &ArgumentError{Err: fmt.Errorf("percent random must be between 0 and 1, got %g", opts.PercentRandom)}
	}
	if opts.Rate < 0 {
		return nil, &ArgumentError{Err: fmt.Errorf("rate must not be negative, got %d", opts.Rate)}
	}

	tld := strings.TrimSpace(opts.TLD)
	if tld == "" || strings.HasSuffix(tld, ".") {
		return nil, &ArgumentError{Err: fmt.Errorf("invalid TLD %q", opts.TLD)}
	}
	if _, ok := dns.IsDomainName(tld); !ok {
		return nil, &ArgumentError{Err: fmt.Errorf("invalid TLD %q", opts.TLD)}
	}

	return &Config{
		Count:         opts.Number,
		MaxLabelSize:  opts.MaxSize,
		PercentRandom: opts.PercentRandom,
		TLD:           tld,
		ZoneFile:      opts.ZoneFile,
		Output:        opts.Output,
		Rate:          opts.Rate,
		Seed:          opts.Seed,
		Seeded:        seeded,
		Quiet:         opts.Quiet,
		Verbose:       opts.Verbose,
		LogFile:       opts.LogFile,
	}, nil
}

// isPublicSuffix reports whether tld is an ICANN-managed public suffix
func isPublicSuffix(tld string) bool {
	suffix, icann := publicsuffix.PublicSuffix(strings.ToLower(tld))
	return icann && suffix == strings.ToLower(tld)
}

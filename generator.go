package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/miekg/dns"
)

// recordSeparator sits between the query name and its type. queryperf
// input files use five spaces.
const recordSeparator = "     "

// queryType is the record type of every generated query
const queryType = dns.TypeA

// Query is a single generated query line
type Query struct {
	Name   string
	TLD    string
	Qtype  uint16
	Random bool
}

// String renders the query in queryperf input format
func (q Query) String() string {
	return "www." + q.Name + "." + q.TLD + recordSeparator + dns.Type(q.Qtype).String()
}

// Generator produces query lines from random labels and, when a zone file
// was loaded, from the domain names found in it.
type Generator struct {
	config  *Config
	domains *DomainSet
	rng     *rand.Rand
}

// NewGenerator creates a generator. A nil domain set means every query uses
// a random label; a non-nil set must hold at least one name.
func NewGenerator(config *Config, domains *DomainSet, rng *rand.Rand) (*Generator, error) {
	if domains != nil && domains.Len() == 0 {
		return nil, &EmptyDomainSetError{Path: config.ZoneFile}
	}

	return &Generator{
		config:  config,
		domains: domains,
		rng:     rng,
	}, nil
}

// Next generates one query
func (g *Generator) Next() Query {
	if g.domains != nil && g.rng.Float64() >= g.config.PercentRandom {
		return Query{Name: g.domains.Pick(g.rng), TLD: g.config.TLD, Qtype: queryType}
	}

	return Query{
		Name:   RandomLabel(g.rng, g.config.MaxLabelSize),
		TLD:    g.config.TLD,
		Qtype:  queryType,
		Random: true,
	}
}

// Run writes config.Count queries to out, pacing them with limiter.
func (g *Generator) Run(ctx context.Context, out *OutputHandler, limiter *RateLimiter, stats *Stats) error {
	for i := 0; i < g.config.Count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("generation interrupted after %d queries: %w", i, err)
		}

		query := g.Next()
		if err := out.WriteQuery(query); err != nil {
			return err
		}
		stats.Record(query)

		// Paced output is usually piped into a live consumer
		if limiter != nil {
			if err := out.Flush(); err != nil {
				return fmt.Errorf("failed to flush output: %w", err)
			}
		}
	}

	return nil
}

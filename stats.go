package main

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"
)

// Stats tracks statistics for query generation
type Stats struct {
	zoneDomains    int64
	generated      int64
	randomQueries  int64
	sampledQueries int64
	startTime      time.Time
}

// NewStats creates a new statistics tracker
func NewStats() *Stats {
	return &Stats{
		startTime: time.Now(),
	}
}

// SetZoneDomains records how many distinct domains the zone file provided
func (s *Stats) SetZoneDomains(n int) {
	atomic.StoreInt64(&s.zoneDomains, int64(n))
}

// Record counts one generated query
func (s *Stats) Record(query Query) {
	atomic.AddInt64(&s.generated, 1)
	if query.Random {
		atomic.AddInt64(&s.randomQueries, 1)
	} else {
		atomic.AddInt64(&s.sampledQueries, 1)
	}
}

// GetZoneDomains returns the number of zone file domains
func (s *Stats) GetZoneDomains() int64 {
	return atomic.LoadInt64(&s.zoneDomains)
}

// GetGenerated returns the number of generated queries
func (s *Stats) GetGenerated() int64 {
	return atomic.LoadInt64(&s.generated)
}

// GetRandom returns the number of random-label queries
func (s *Stats) GetRandom() int64 {
	return atomic.LoadInt64(&s.randomQueries)
}

// GetSampled returns the number of queries sampled from the zone file
func (s *Stats) GetSampled() int64 {
	return atomic.LoadInt64(&s.sampledQueries)
}

// GetElapsedTime returns the elapsed time since start
func (s *Stats) GetElapsedTime() time.Duration {
	return time.Since(s.startTime)
}

// GetQueriesPerSecond calculates the current generation rate
func (s *Stats) GetQueriesPerSecond() float64 {
	elapsed := s.GetElapsedTime().Seconds()
	if elapsed == 0 {
		return 0
	}
	return float64(s.GetGenerated()) / elapsed
}

// PrintCurrentStats prints current statistics
func (s *Stats) PrintCurrentStats(logger *log.Logger) {
	logger.Printf("Stats: Generated=%d, Random=%d, Sampled=%d, Elapsed=%s, QPS=%.2f",
		s.GetGenerated(), s.GetRandom(), s.GetSampled(), FormatDuration(s.GetElapsedTime()), s.GetQueriesPerSecond())
}

// PrintFinalStats prints the final statistics summary
func (s *Stats) PrintFinalStats(logger *log.Logger) {
	generated := s.GetGenerated()
	random := s.GetRandom()
	sampled := s.GetSampled()

	logger.Println("=== Final Statistics ===")
	if domains := s.GetZoneDomains(); domains > 0 {
		logger.Printf("Zone file domains: %d", domains)
	}
	logger.Printf("Queries generated: %d", generated)
	logger.Printf("Random queries: %d (%.2f%%)", random, percentage(random, generated))
	logger.Printf("Zone file queries: %d (%.2f%%)", sampled, percentage(sampled, generated))
	logger.Printf("Total elapsed time: %s", FormatDuration(s.GetElapsedTime()))
	logger.Printf("Average queries per second: %.2f", s.GetQueriesPerSecond())
}

// StartReporter periodically reports statistics until ctx is done
func (s *Stats) StartReporter(ctx context.Context, logger *log.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.PrintCurrentStats(logger)
		case <-ctx.Done():
			return
		}
	}
}

// percentage calculates percentage with zero division protection
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// FormatDuration formats a duration in a human-readable format
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

package main

import "math/rand"

// DomainSet is a deduplicated set of domain names. Names keep their
// insertion order so sampling with a fixed seed is reproducible.
type DomainSet struct {
	index map[string]struct{}
	list  []string
}

// NewDomainSet creates an empty domain set
func NewDomainSet() *DomainSet {
	return &DomainSet{
		index: make(map[string]struct{}),
	}
}

// Add inserts name and reports whether it was not already present
func (s *DomainSet) Add(name string) bool {
	if _, exists := s.index[name]; exists {
		return false
	}
	s.index[name] = struct{}{}
	s.list = append(s.list, name)
	return true
}

// contains reports whether name is in the set
func (s *DomainSet) contains(name string) bool {
	_, exists := s.index[name]
	return exists
}

// Len returns the number of distinct names
func (s *DomainSet) Len() int {
	return len(s.list)
}

// names returns a copy of the names in insertion order
func (s *DomainSet) names() []string {
	names := make([]string, len(s.list))
	copy(names, s.list)
	return names
}

// Pick returns a uniformly chosen name. The set must not be empty.
func (s *DomainSet) Pick(rng *rand.Rand) string {
	return s.list[rng.Intn(len(s.list))]
}

package adsearch

import (
	"strings"

	"github.com/go-ldap/ldap/v3"
)

// MatchMode controls how textual criteria are compared. The mode applies
// per call; there is no client-wide setting.
type MatchMode int

const (
	// MatchWildcard surrounds each criterion with wildcards, matching
	// the value anywhere in the attribute.
	MatchWildcard MatchMode = iota
	// MatchExact requires the attribute to equal the criterion.
	MatchExact
)

func (m MatchMode) String() string {
	if m == MatchExact {
		return "exact"
	}
	return "wildcard"
}

// filterBuilder collects attribute criteria into a single AND-combined
// filter. Every value is escaped, so criteria can never inject filter
// syntax.
type filterBuilder struct {
	mode    MatchMode
	clauses []string
}

func newFilterBuilder(mode MatchMode) *filterBuilder {
	return &filterBuilder{mode: mode}
}

// Add appends one clause for the attribute in the builder's match mode.
// Empty values are skipped so absent criteria never constrain the result.
func (b *filterBuilder) Add(attribute, value string) {
	if value == "" {
		return
	}
	if b.mode == MatchExact {
		b.AddExact(attribute, value)
		return
	}
	b.clauses = append(b.clauses, "("+attribute+"=*"+ldap.EscapeFilter(value)+"*)")
}

// AddExact appends an exact-match clause regardless of the builder's mode.
func (b *filterBuilder) AddExact(attribute, value string) {
	if value == "" {
		return
	}
	b.clauses = append(b.clauses, "("+attribute+"="+ldap.EscapeFilter(value)+")")
}

// Len reports the number of criterion clauses added so far.
func (b *filterBuilder) Len() int {
	return len(b.clauses)
}

// Build returns the combined filter, prefixed by the given base clauses.
// With no criteria the filter is the base clauses alone, which matches
// every object of the class.
func (b *filterBuilder) Build(base ...string) string {
	clauses := append(append([]string{}, base...), b.clauses...)
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(&" + strings.Join(clauses, "") + ")"
}

// Package testutil provides an in-memory directory for exercising searches
// without a live server.
package testutil

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-ldap/ldap/v3"
)

// ADCapabilityOID mirrors the OID an Active Directory RootDSE advertises in
// supportedCapabilities.
const ADCapabilityOID = "1.2.840.113556.1.4.800"

// MockDirectoryConn is an in-memory stand-in for a directory connection. It
// serves the RootDSE capability probe and evaluates the flat conjunctive
// filters the search adapter generates against its seeded entries.
type MockDirectoryConn struct {
	mu sync.Mutex

	// Capabilities is served as the RootDSE supportedCapabilities values.
	Capabilities []string
	// Entries are the seeded directory entries searches match against.
	Entries []*ldap.Entry

	// SearchFunc overrides the default search behavior when set.
	SearchFunc func(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	// SearchErr fails every search when set.
	SearchErr error

	// SearchRequests records every search request in order.
	SearchRequests []*ldap.SearchRequest
	// Closed reports whether Close was called.
	Closed bool
}

// Search implements the connection surface the adapter depends on.
func (m *MockDirectoryConn) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	m.mu.Lock()
	m.SearchRequests = append(m.SearchRequests, req)
	m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if m.SearchFunc != nil {
		return m.SearchFunc(req)
	}

	// RootDSE capability probe
	if req.BaseDN == "" && req.Scope == ldap.ScopeBaseObject {
		return &ldap.SearchResult{Entries: []*ldap.Entry{
			ldap.NewEntry("", map[string][]string{
				"supportedCapabilities": m.Capabilities,
			}),
		}}, nil
	}

	var matched []*ldap.Entry
	for _, entry := range m.Entries {
		if MatchesFilter(entry, req.Filter) {
			matched = append(matched, entry)
		}
	}

	if req.SizeLimit > 0 && len(matched) > req.SizeLimit {
		matched = matched[:req.SizeLimit]
	}

	return &ldap.SearchResult{Entries: matched}, nil
}

// Close implements the connection surface. The mock stays usable after
// Close so a single instance can serve several one-shot queries.
func (m *MockDirectoryConn) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// LastSearch returns the most recent recorded search request, or nil.
func (m *MockDirectoryConn) LastSearch() *ldap.SearchRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SearchRequests) == 0 {
		return nil
	}
	return m.SearchRequests[len(m.SearchRequests)-1]
}

// clauseRegexp captures attribute=value clauses from the flat AND-combined
// filters the adapter builds. Nested boolean operators are not supported.
var clauseRegexp = regexp.MustCompile(`\(([a-zA-Z0-9-]+)=([^()]*)\)`)

// MatchesFilter reports whether entry satisfies a flat AND-combined filter.
// objectCategory and objectClass clauses pass for entries that do not
// declare the attribute at all, which keeps fixtures small.
func MatchesFilter(entry *ldap.Entry, filter string) bool {
	for _, clause := range clauseRegexp.FindAllStringSubmatch(filter, -1) {
		if !matchAttribute(entry, clause[1], clause[2]) {
			return false
		}
	}
	return true
}

func matchAttribute(entry *ldap.Entry, attribute, pattern string) bool {
	values := entry.GetAttributeValues(attribute)
	if len(values) == 0 && (attribute == "objectCategory" || attribute == "objectClass") {
		return true
	}
	for _, v := range values {
		if matchPattern(v, pattern) {
			return true
		}
	}
	return false
}

// matchPattern implements the matching subset the adapter emits: exact
// values, *v*, v*, *v and the match-all *. Comparison is case-insensitive
// like a directory server's.
func matchPattern(value, pattern string) bool {
	value = strings.ToLower(value)
	pattern = strings.ToLower(pattern)

	switch {
	case pattern == "*":
		return true
	case strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") && len(pattern) > 1:
		return strings.Contains(value, strings.Trim(pattern, "*"))
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(value, strings.TrimPrefix(pattern, "*"))
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(value, strings.TrimSuffix(pattern, "*"))
	default:
		return value == pattern
	}
}

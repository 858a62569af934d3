package adsearch

import (
	"context"

	"github.com/go-ldap/ldap/v3"
)

// Backend identifies one of the closed set of directory backend variants.
type Backend int

const (
	// BackendAuto probes the directory once at client construction and
	// picks the variant matching its capabilities.
	BackendAuto Backend = iota
	// BackendActiveDirectory is the managed variant for Active Directory
	// domain controllers.
	BackendActiveDirectory
	// BackendLDAP is the raw-protocol variant for directories without
	// Active Directory capabilities.
	BackendLDAP
)

// activeDirectoryOID (LDAP_CAP_ACTIVE_DIRECTORY_OID) is advertised in the
// RootDSE supportedCapabilities of every Active Directory domain controller.
const activeDirectoryOID = "1.2.840.113556.1.4.800"

// directoryBackend is the single query interface both variants implement.
// The variant is chosen once at client construction; queries never switch
// backends mid-flight.
type directoryBackend interface {
	Name() string
	SearchUsers(ctx context.Context, query UserQuery) ([]UserRecord, error)
	SearchComputers(ctx context.Context, query ComputerQuery) ([]ComputerRecord, error)
}

// selectBackend returns the configured backend variant, running the
// capability probe when none is pinned.
func (c *Client) selectBackend(ctx context.Context) (directoryBackend, error) {
	switch c.config.Backend {
	case BackendActiveDirectory:
		return &adBackend{c: c}, nil
	case BackendLDAP:
		return &ldapBackend{c: c}, nil
	default:
		return c.detectBackend(ctx)
	}
}

// detectBackend performs the one-time capability probe against the RootDSE.
// An unreachable directory is fatal here; there is no further fallback.
func (c *Client) detectBackend(ctx context.Context) (directoryBackend, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, wrapDirectoryError("DetectBackend", c.config.Server, err)
	}
	defer conn.Close()

	r, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       "",
		Scope:        ldap.ScopeBaseObject,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       "(objectClass=*)",
		Attributes:   []string{"supportedCapabilities"},
	})
	if err != nil {
		return nil, wrapDirectoryError("DetectBackend", c.config.Server, err)
	}
	if len(r.Entries) == 0 {
		return nil, wrapDirectoryError("DetectBackend", c.config.Server, ErrNoBackend)
	}

	for _, oid := range r.Entries[0].GetAttributeValues("supportedCapabilities") {
		if oid == activeDirectoryOID {
			return &adBackend{c: c}, nil
		}
	}

	return &ldapBackend{c: c}, nil
}

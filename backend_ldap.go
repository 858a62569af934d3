package adsearch

import (
	"context"
	"fmt"
	"strings"
)

// ldapBackend issues raw filter strings against a directory without Active
// Directory capabilities. It has no native way to compare an IP-address
// criterion, so the address is reverse-resolved to a host name first; that
// resolution failing fails the whole query.
type ldapBackend struct {
	c *Client
}

func (b *ldapBackend) Name() string {
	return "ldap"
}

func (b *ldapBackend) SearchUsers(ctx context.Context, query UserQuery) ([]UserRecord, error) {
	fb := newFilterBuilder(query.Match)
	fb.Add("givenName", query.FirstName)
	fb.Add("sn", query.LastName)
	fb.Add("sAMAccountName", query.UserName)
	fb.Add("mail", query.Email)
	filter := fb.Build("(objectCategory=user)")

	entries, err := b.c.search(ctx, "SearchUsers", filter, userAttributes)
	if err != nil {
		return nil, err
	}

	records := make([]UserRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entryToUserRecord(entry))
	}

	return records, nil
}

func (b *ldapBackend) SearchComputers(ctx context.Context, query ComputerQuery) ([]ComputerRecord, error) {
	fb := newFilterBuilder(query.Match)
	fb.Add("name", query.ComputerName)
	if query.IPAddress != "" {
		host, err := b.resolveCriterionHost(ctx, query.IPAddress)
		if err != nil {
			return nil, err
		}
		fb.AddExact("dNSHostName", host)
	}
	filter := fb.Build("(objectCategory=computer)")

	entries, err := b.c.search(ctx, "SearchComputers", filter, computerAttributes)
	if err != nil {
		return nil, err
	}

	records := make([]ComputerRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, b.c.entryToComputerRecord(ctx, entry))
	}

	return records, nil
}

// resolveCriterionHost turns an IP-address criterion into the host name the
// raw protocol can actually filter on.
func (b *ldapBackend) resolveCriterionHost(ctx context.Context, addr string) (string, error) {
	names, err := b.c.resolver.LookupAddr(ctx, addr)
	if err != nil {
		return "", wrapDirectoryError("SearchComputers", b.c.config.Server,
			fmt.Errorf("%w: %s: %v", ErrAddressUnresolved, addr, err))
	}
	if len(names) == 0 {
		return "", wrapDirectoryError("SearchComputers", b.c.config.Server,
			fmt.Errorf("%w: %s", ErrAddressUnresolved, addr))
	}

	return strings.TrimSuffix(names[0], "."), nil
}

package adsearch

import (
	"context"
)

// adBackend queries an Active Directory domain controller the way the
// managed client libraries do: objectCategory-scoped filters, full property
// retrieval and client-side derivation of computed properties such as a
// computer's IP address.
type adBackend struct {
	c *Client
}

func (b *adBackend) Name() string {
	return "activedirectory"
}

func (b *adBackend) SearchUsers(ctx context.Context, query UserQuery) ([]UserRecord, error) {
	fb := newFilterBuilder(query.Match)
	fb.Add("givenName", query.FirstName)
	fb.Add("sn", query.LastName)
	fb.Add("sAMAccountName", query.UserName)
	fb.Add("mail", query.Email)
	filter := fb.Build("(objectCategory=person)", "(objectClass=user)")

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

func (b *adBackend) SearchComputers(ctx context.Context, query ComputerQuery) ([]ComputerRecord, error) {
	fb := newFilterBuilder(query.Match)
	fb.Add("name", query.ComputerName)
	// The address is a computed property without a directory attribute on
	// Active Directory, so an IP criterion is applied after mapping,
	// always as an exact match.
	filter := fb.Build("(objectCategory=computer)")

	entries, err := b.c.search(ctx, "SearchComputers", filter, computerAttributes)
	if err != nil {
		return nil, err
	}

	records := make([]ComputerRecord, 0, len(entries))
	for _, entry := range entries {
		rec := b.c.entryToComputerRecord(ctx, entry)
		if query.IPAddress != "" && rec.IPAddress != query.IPAddress {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

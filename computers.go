package adsearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// ComputerRecord is the normalized projection of a directory computer entry.
type ComputerRecord struct {
	ComputerName string
	// IPAddress is taken from the ipHostNumber attribute when the
	// directory carries one, otherwise derived by a forward lookup of the
	// host name. It stays empty when neither source yields an address.
	IPAddress         string
	OperatingSystem   string
	OSVersion         string
	LastLogon         time.Time
	DistinguishedName string
	SID               string
	GUID              string
}

// ComputerDisplayFields names the display-priority subset of ComputerRecord
// fields for compact tabular presentation, in column order.
func ComputerDisplayFields() []string {
	return []string{"ComputerName", "IPAddress", "OperatingSystem", "LastLogon"}
}

// DisplayRow returns the record's display-priority values in the order of
// ComputerDisplayFields.
func (c ComputerRecord) DisplayRow() []string {
	return []string{c.ComputerName, c.IPAddress, c.OperatingSystem, formatTimestamp(c.LastLogon)}
}

// ComputerQuery carries the optional search criteria for a computer search.
// Empty fields are omitted from the generated filter rather than compared.
type ComputerQuery struct {
	ComputerName string
	// IPAddress is always compared exactly, regardless of Match: wildcard
	// matching against an address does not degrade gracefully.
	IPAddress string
	Match     MatchMode
}

// SearchComputers queries the selected backend for computers matching query.
// Supplying a zero-value query returns the full computer listing.
func (c *Client) SearchComputers(query ComputerQuery) ([]ComputerRecord, error) {
	return c.SearchComputersContext(context.Background(), query)
}

// SearchComputersContext queries the selected backend for computers matching
// query with context support.
func (c *Client) SearchComputersContext(ctx context.Context, query ComputerQuery) ([]ComputerRecord, error) {
	start := time.Now()
	c.logger.Debug("computer_search_started",
		slog.String("backend", c.backend.Name()),
		slog.String("match", query.Match.String()))

	computers, err := c.backend.SearchComputers(ctx, query)
	if err != nil {
		c.logger.Error("computer_search_failed",
			slog.String("backend", c.backend.Name()),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	c.logger.Debug("computer_search_completed",
		slog.Int("results", len(computers)),
		slog.Duration("duration", time.Since(start)))

	return computers, nil
}

// computerAttributes is the full property set retrieved for computer entries.
var computerAttributes = []string{
	"cn", "name", "dNSHostName", "ipHostNumber",
	"operatingSystem", "operatingSystemVersion",
	"lastLogon", "objectSid", "objectGUID",
}

// entryToComputerRecord maps a raw directory entry onto a ComputerRecord,
// deriving the IP address from the ipHostNumber attribute when present and
// otherwise from a forward lookup of the host name. Lookup failure leaves
// the field empty rather than failing the record.
func (c *Client) entryToComputerRecord(ctx context.Context, entry *ldap.Entry) ComputerRecord {
	name := entry.GetAttributeValue("cn")
	if name == "" {
		name = entry.GetAttributeValue("name")
	}

	rec := ComputerRecord{
		ComputerName:      name,
		IPAddress:         entry.GetAttributeValue("ipHostNumber"),
		OperatingSystem:   entry.GetAttributeValue("operatingSystem"),
		OSVersion:         entry.GetAttributeValue("operatingSystemVersion"),
		LastLogon:         parseFileTime(entry.GetAttributeValue("lastLogon")),
		DistinguishedName: entry.DN,
		SID:               normalizeSID(entry),
		GUID:              guidFromEntry(entry),
	}

	if rec.IPAddress != "" {
		return rec
	}

	host := entry.GetAttributeValue("dNSHostName")
	if host == "" {
		host = name
	}
	if host == "" {
		return rec
	}

	addrs, err := c.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		c.logger.Debug("computer_address_lookup_failed",
			slog.String("host", host),
			slog.String("error", err.Error()))
		return rec
	}
	rec.IPAddress = firstIPv4(addrs)

	return rec
}

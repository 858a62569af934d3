package adsearch

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-ldap/ldap/v3"
)

// UserRecord is the normalized projection of a directory user entry with
// schema attribute names remapped to display-friendly fields. Records are
// never mutated after construction; every query returns a fresh slice.
type UserRecord struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	// LastLogon and PasswordLastSet are zero when the directory has no
	// usable value for them.
	LastLogon       time.Time
	PasswordLastSet time.Time
	// Enabled is derived from the userAccountControl bitmask; entries
	// without the attribute count as enabled.
	Enabled           bool
	DistinguishedName string
	SID               string
	GUID              string
	// Groups holds the distinguished names of the user's groups, taken
	// as-is from memberOf and never expanded recursively.
	Groups []string
}

// UserDisplayFields names the display-priority subset of UserRecord fields
// for compact tabular presentation, in column order.
func UserDisplayFields() []string {
	return []string{"FirstName", "LastName", "UserName", "Email", "LastLogon"}
}

// DisplayRow returns the record's display-priority values in the order of
// UserDisplayFields.
func (u UserRecord) DisplayRow() []string {
	return []string{u.FirstName, u.LastName, u.UserName, u.Email, formatTimestamp(u.LastLogon)}
}

// UserQuery carries the optional search criteria for a user search. Empty
// fields are omitted from the generated filter rather than compared.
type UserQuery struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	// Match selects wildcard or exact comparison for all criteria.
	Match MatchMode
}

// SearchUsers queries the selected backend for users matching query.
// Supplying a zero-value query returns the full user listing.
func (c *Client) SearchUsers(query UserQuery) ([]UserRecord, error) {
	return c.SearchUsersContext(context.Background(), query)
}

// SearchUsersContext queries the selected backend for users matching query
// with context support.
func (c *Client) SearchUsersContext(ctx context.Context, query UserQuery) ([]UserRecord, error) {
	start := time.Now()
	c.logger.Debug("user_search_started",
		slog.String("backend", c.backend.Name()),
		slog.String("match", query.Match.String()))

	users, err := c.backend.SearchUsers(ctx, query)
	if err != nil {
		c.logger.Error("user_search_failed",
			slog.String("backend", c.backend.Name()),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	c.logger.Debug("user_search_completed",
		slog.Int("results", len(users)),
		slog.Duration("duration", time.Since(start)))

	return users, nil
}

// userAttributes is the full property set retrieved for user entries.
var userAttributes = []string{
	"givenName", "sn", "cn", "sAMAccountName", "mail",
	"lastLogon", "pwdLastSet", "userAccountControl",
	"memberOf", "objectSid", "objectGUID",
}

// entryToUserRecord maps a raw directory entry onto a UserRecord.
func entryToUserRecord(entry *ldap.Entry) UserRecord {
	userName := entry.GetAttributeValue("sAMAccountName")
	if userName == "" {
		userName = entry.GetAttributeValue("cn")
	}

	return UserRecord{
		FirstName:         entry.GetAttributeValue("givenName"),
		LastName:          entry.GetAttributeValue("sn"),
		UserName:          userName,
		Email:             entry.GetAttributeValue("mail"),
		LastLogon:         parseFileTime(entry.GetAttributeValue("lastLogon")),
		PasswordLastSet:   parseFileTime(entry.GetAttributeValue("pwdLastSet")),
		Enabled:           parseObjectEnabled(entry.GetAttributeValue("userAccountControl")),
		DistinguishedName: entry.DN,
		SID:               normalizeSID(entry),
		GUID:              guidFromEntry(entry),
		Groups:            entry.GetAttributeValues("memberOf"),
	}
}

package adsearch

import (
	"strconv"
	"time"
)

const (
	// fileTimeEpoch is the number of 100-nanosecond intervals between
	// 1601-01-01 UTC (the FILETIME epoch) and the Unix epoch.
	fileTimeEpoch = 116444736000000000

	// fileTimeNever marks timestamps the directory considers unset,
	// e.g. accountExpires for accounts that never expire.
	fileTimeNever = 0x7FFFFFFFFFFFFFFF

	// accountDisableFlag is the ACCOUNTDISABLE bit of userAccountControl.
	// https://docs.microsoft.com/en-us/windows/win32/adschema/a-useraccountcontrol
	accountDisableFlag = 0x2
)

// parseFileTime converts a Windows FILETIME attribute value (100-nanosecond
// intervals since 1601-01-01 UTC) to a time.Time. Empty, zero, non-numeric
// and never-set values yield the zero time rather than an error.
func parseFileTime(raw string) time.Time {
	if raw == "" || raw == "0" {
		return time.Time{}
	}

	ticks, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ticks <= fileTimeEpoch || ticks == fileTimeNever {
		return time.Time{}
	}

	return time.Unix(0, (ticks-fileTimeEpoch)*100).UTC()
}

// parseObjectEnabled determines whether an entry is enabled from its
// userAccountControl bitmask. Entries without a usable value (generic LDAP
// servers do not carry the attribute) count as enabled.
func parseObjectEnabled(userAccountControl string) bool {
	raw, err := strconv.ParseInt(userAccountControl, 10, 32)
	if err != nil {
		return true
	}

	return raw&accountDisableFlag == 0
}

// formatTimestamp renders t for tabular display, with "" for unset values.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

package adsearch

import (
	"strings"

	"github.com/bwmarrin/go-objectsid"
	"github.com/go-ldap/ldap/v3"
)

// sidHeaderLen is the fixed prefix of a binary SID: revision byte,
// sub-authority count byte and the 48-bit identifier authority.
const sidHeaderLen = 8

// normalizeSID extracts objectSid from an entry and renders it in the usual
// S-1-... form. Active Directory returns the attribute as a binary blob;
// the raw-protocol backend and test fixtures may carry it as a string. Both
// forms normalize to the same representation. A missing or malformed value
// yields an empty string, never an error.
func normalizeSID(entry *ldap.Entry) string {
	raw := entry.GetRawAttributeValue("objectSid")
	if len(raw) >= sidHeaderLen && int(raw[1])*4 == len(raw)-sidHeaderLen {
		return objectsid.Decode(raw).String()
	}

	if s := entry.GetAttributeValue("objectSid"); strings.HasPrefix(s, "S-") {
		return s
	}

	return ""
}

package adsearch

import (
	"github.com/go-ldap/ldap/v3"
	"github.com/google/uuid"
)

// guidFromEntry renders the objectGUID attribute as a canonical UUID string.
// Active Directory stores the first three UUID fields little-endian, so the
// bytes are reordered before parsing. A missing or malformed value yields an
// empty string.
func guidFromEntry(entry *ldap.Entry) string {
	raw := entry.GetRawAttributeValue("objectGUID")
	if len(raw) != 16 {
		return ""
	}

	b := make([]byte, 16)
	copy(b, raw)
	b[0], b[1], b[2], b[3] = raw[3], raw[2], raw[1], raw[0]
	b[4], b[5] = raw[5], raw[4]
	b[6], b[7] = raw[7], raw[6]

	id, err := uuid.FromBytes(b)
	if err != nil {
		return ""
	}

	return id.String()
}

package adsearch

import (
	"encoding/binary"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
)

// encodeSID builds the binary objectSid form a domain controller returns:
// revision, sub-authority count, 48-bit big-endian authority, then each
// sub-authority as a little-endian uint32.
func encodeSID(authority uint64, subAuthorities ...uint32) []byte {
	b := make([]byte, 8+4*len(subAuthorities))
	b[0] = 1
	b[1] = byte(len(subAuthorities))
	b[2] = byte(authority >> 40)
	b[3] = byte(authority >> 32)
	b[4] = byte(authority >> 24)
	b[5] = byte(authority >> 16)
	b[6] = byte(authority >> 8)
	b[7] = byte(authority)
	for i, sub := range subAuthorities {
		binary.LittleEndian.PutUint32(b[8+4*i:], sub)
	}
	return b
}

func TestNormalizeSID(t *testing.T) {
	tests := []struct {
		name      string
		objectSid string
		want      string
	}{
		{
			name:      "binary account sid",
			objectSid: string(encodeSID(5, 21, 3623811015, 3361044348, 30300, 1104)),
			want:      "S-1-5-21-3623811015-3361044348-30300-1104",
		},
		{
			name:      "binary well-known sid",
			objectSid: string(encodeSID(5, 32, 544)),
			want:      "S-1-5-32-544",
		},
		{
			name:      "string form passes through",
			objectSid: "S-1-5-21-3623811015-3361044348-30300-1104",
			want:      "S-1-5-21-3623811015-3361044348-30300-1104",
		},
		{
			name:      "truncated blob yields empty",
			objectSid: string([]byte{1, 4, 0, 0}),
			want:      "",
		},
		{
			name:      "count mismatching length yields empty",
			objectSid: string(encodeSID(5, 21, 1104)[:12]),
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ldap.NewEntry("CN=x,DC=example,DC=com", map[string][]string{
				"objectSid": {tt.objectSid},
			})
			assert.Equal(t, tt.want, normalizeSID(entry))
		})
	}
}

func TestNormalizeSIDMissingAttribute(t *testing.T) {
	entry := ldap.NewEntry("CN=x,DC=example,DC=com", map[string][]string{})
	assert.Equal(t, "", normalizeSID(entry))
}

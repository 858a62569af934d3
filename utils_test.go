package adsearch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFileTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "empty value", raw: "", want: time.Time{}},
		{name: "literal zero", raw: "0", want: time.Time{}},
		{name: "non-numeric value", raw: "never", want: time.Time{}},
		{name: "never-expires marker", raw: "9223372036854775807", want: time.Time{}},
		{name: "pre-epoch value", raw: "1", want: time.Time{}},
		{
			name: "regular timestamp",
			raw:  "133497864000000000",
			want: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFileTime(tt.raw))
		})
	}
}

func TestParseObjectEnabled(t *testing.T) {
	tests := []struct {
		name               string
		userAccountControl string
		want               bool
	}{
		{name: "normal account", userAccountControl: "512", want: true},
		{name: "disabled account", userAccountControl: "514", want: false},
		{name: "disabled workstation", userAccountControl: "4098", want: false},
		{name: "workstation trust account", userAccountControl: "4096", want: true},
		{name: "attribute absent", userAccountControl: "", want: true},
		{name: "non-numeric value", userAccountControl: "TRUE", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseObjectEnabled(tt.userAccountControl))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "", formatTimestamp(time.Time{}))
	assert.Equal(t, "2024-01-15 10:00:00",
		formatTimestamp(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))
}

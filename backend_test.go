package adsearch

import (
	"context"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtools/adsearch-go/testutil"
)

func TestBackendSelection(t *testing.T) {
	tests := []struct {
		name         string
		capabilities []string
		want         string
	}{
		{
			name:         "active directory capability selects managed variant",
			capabilities: []string{"1.2.840.113556.1.4.1791", testutil.ADCapabilityOID},
			want:         "activedirectory",
		},
		{
			name:         "plain directory selects raw variant",
			capabilities: []string{"1.3.6.1.4.1.4203.1.5.1"},
			want:         "ldap",
		},
		{
			name: "no advertised capabilities selects raw variant",
			want: "ldap",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &testutil.MockDirectoryConn{Capabilities: tt.capabilities}
			client := newTestClient(t, mock)

			assert.Equal(t, tt.want, client.Backend())

			probe := mock.SearchRequests[0]
			assert.Equal(t, "", probe.BaseDN)
			assert.Equal(t, ldap.ScopeBaseObject, probe.Scope)
		})
	}
}

func TestBackendSelectionProbeFailureIsFatal(t *testing.T) {
	mock := &testutil.MockDirectoryConn{SearchErr: assert.AnError}

	_, err := New(testConfig(), "", "",
		WithConnectionFactory(func(ctx context.Context) (Conn, error) {
			return mock, nil
		}))
	require.Error(t, err)

	var derr *DirectoryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "DetectBackend", derr.Op)
}

func TestBackendSelectionEmptyRootDSE(t *testing.T) {
	mock := &testutil.MockDirectoryConn{
		SearchFunc: func(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
			return &ldap.SearchResult{}, nil
		},
	}

	_, err := New(testConfig(), "", "",
		WithConnectionFactory(func(ctx context.Context) (Conn, error) {
			return mock, nil
		}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestWithBackendSkipsProbe(t *testing.T) {
	mock := &testutil.MockDirectoryConn{}
	client := newTestClient(t, mock, WithBackend(BackendActiveDirectory))

	assert.Equal(t, "activedirectory", client.Backend())
	assert.Empty(t, mock.SearchRequests)
}

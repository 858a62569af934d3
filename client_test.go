package adsearch

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtools/adsearch-go/testutil"
)

func testConfig() *Config {
	return &Config{
		Server: "ldaps://dc01.example.com:636",
		BaseDN: "DC=example,DC=com",
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// newTestClient wires a client to an in-memory directory connection.
func newTestClient(t *testing.T, conn Conn, opts ...Option) *Client {
	t.Helper()

	opts = append(opts, WithConnectionFactory(func(ctx context.Context) (Conn, error) {
		return conn, nil
	}))

	client, err := New(testConfig(), "", "", opts...)
	require.NoError(t, err)

	return client
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{name: "nil config", config: nil, wantErr: "config cannot be nil"},
		{
			name:    "empty server",
			config:  &Config{BaseDN: "DC=example,DC=com"},
			wantErr: "server URL cannot be empty",
		},
		{
			name:    "empty base dn",
			config:  &Config{Server: "ldaps://dc01.example.com:636"},
			wantErr: "base DN cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config, "", "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	client := newTestClient(t, &testutil.MockDirectoryConn{})
	assert.Equal(t, 1000, client.config.SizeLimit)
	assert.Equal(t, 30*time.Second, client.config.DialTimeout)
}

func TestSearchPropagatesContextCancellation(t *testing.T) {
	mock := &testutil.MockDirectoryConn{Capabilities: []string{testutil.ADCapabilityOID}}
	client := newTestClient(t, mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchUsersContext(ctx, UserQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchSetsRequestShape(t *testing.T) {
	mock := &testutil.MockDirectoryConn{Capabilities: []string{testutil.ADCapabilityOID}}
	client := newTestClient(t, mock)

	_, err := client.SearchUsers(UserQuery{UserName: "jdoe"})
	require.NoError(t, err)

	req := mock.LastSearch()
	require.NotNil(t, req)
	assert.Equal(t, "DC=example,DC=com", req.BaseDN)
	assert.Equal(t, 1000, req.SizeLimit)
	assert.Equal(t, userAttributes, req.Attributes)
}

func TestSearchWrapsDirectoryErrors(t *testing.T) {
	mock := &testutil.MockDirectoryConn{
		Capabilities: []string{testutil.ADCapabilityOID},
	}
	client := newTestClient(t, mock)
	mock.SearchErr = assert.AnError

	_, err := client.SearchUsers(UserQuery{})
	require.Error(t, err)

	var derr *DirectoryError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "SearchUsers", derr.Op)
	assert.Equal(t, "ldaps://dc01.example.com:636", derr.Server)
	assert.ErrorIs(t, err, assert.AnError)
}

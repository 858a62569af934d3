package adsearch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-ldap/ldap/v3"
)

// Conn is the slice of the LDAP connection surface the client depends on.
// *ldap.Conn satisfies it; tests substitute an in-memory directory.
type Conn interface {
	Search(*ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// Config contains the configuration for directory connections.
type Config struct {
	// Server is the directory URL, e.g. "ldaps://dc01.example.com:636".
	Server string
	// BaseDN is the search base for all queries.
	BaseDN string
	// Backend pins a backend variant; BackendAuto (the zero value) probes
	// the directory once at client construction.
	Backend Backend
	// SizeLimit caps the entries returned per query; 0 means no cap.
	SizeLimit int `default:"1000"`
	// DialTimeout bounds connection establishment.
	DialTimeout time.Duration `default:"30s"`

	TLSConfig   *tls.Config
	DialOptions []ldap.DialOpt
	Logger      *slog.Logger
}

// Client is the directory search adapter. It is constructed once, selects
// its backend once, and serves fully synchronous queries after that: each
// search blocks on exactly one outbound directory query and returns a fresh
// slice of mapped records, with no state shared across invocations.
type Client struct {
	config   *Config
	user     string
	password string
	logger   *slog.Logger
	resolver HostResolver
	dial     func(ctx context.Context) (Conn, error)
	backend  directoryBackend
}

// New creates a directory search client and performs the one-time backend
// capability probe. Probe failure is fatal; there is no later fallback.
func New(config *Config, username, password string, opts ...Option) (*Client, error) {
	return NewContext(context.Background(), config, username, password, opts...)
}

// NewContext creates a directory search client with context support for the
// capability probe.
func NewContext(ctx context.Context, config *Config, username, password string, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if err := defaults.Set(config); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}
	if config.Server == "" {
		return nil, errors.New("server URL cannot be empty")
	}
	if config.BaseDN == "" {
		return nil, errors.New("base DN cannot be empty")
	}

	logger := slog.Default()
	if config.Logger != nil {
		logger = config.Logger
	}

	client := &Client{
		config:   config,
		user:     username,
		password: password,
		logger:   logger,
		resolver: net.DefaultResolver,
	}
	client.dial = client.dialDirectory

	for _, opt := range opts {
		opt(client)
	}

	start := time.Now()
	backend, err := client.selectBackend(ctx)
	if err != nil {
		logger.Error("backend_selection_failed",
			slog.String("server", config.Server),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, err
	}
	client.backend = backend

	logger.Info("directory_client_initialized",
		slog.String("server", config.Server),
		slog.String("base_dn", config.BaseDN),
		slog.String("backend", backend.Name()))

	return client, nil
}

// Backend reports the name of the variant selected at construction.
func (c *Client) Backend() string {
	return c.backend.Name()
}

// dialDirectory establishes and binds a fresh connection. Every query uses
// exactly one connection for its single outbound search.
func (c *Client) dialDirectory(ctx context.Context) (Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.logger.Debug("directory_connection_establishing",
		slog.String("server", c.config.Server),
		slog.String("base_dn", c.config.BaseDN))

	dialOpts := append([]ldap.DialOpt{}, c.config.DialOptions...)
	if c.config.TLSConfig != nil {
		dialOpts = append(dialOpts, ldap.DialWithTLSConfig(c.config.TLSConfig))
	}
	dialOpts = append(dialOpts, ldap.DialWithDialer(&net.Dialer{Timeout: c.config.DialTimeout}))

	conn, err := ldap.DialURL(c.config.Server, dialOpts...)
	if err != nil {
		c.logger.Error("directory_connection_dial_failed",
			slog.String("server", c.config.Server),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to dial directory server: %w", err)
	}

	if c.user == "" {
		if err := conn.UnauthenticatedBind(""); err != nil {
			conn.Close()
			return nil, fmt.Errorf("anonymous bind failed: %w", err)
		}
		return conn, nil
	}

	if err := conn.Bind(c.user, c.password); err != nil {
		conn.Close()
		c.logger.Error("directory_bind_failed",
			slog.String("server", c.config.Server),
			slog.String("user", c.user),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to bind as %s: %w", c.user, err)
	}

	return conn, nil
}

// search runs one subtree query and returns the raw entries in the order the
// backend produced them; results are never re-sorted.
func (c *Client) search(ctx context.Context, op, filter string, attributes []string) ([]*ldap.Entry, error) {
	start := time.Now()
	c.logger.Debug("directory_search_started",
		slog.String("operation", op),
		slog.String("filter", filter),
		slog.String("base_dn", c.config.BaseDN))

	conn, err := c.dial(ctx)
	if err != nil {
		return nil, wrapDirectoryError(op, c.config.Server, err)
	}
	defer conn.Close()

	if err := ctx.Err(); err != nil {
		return nil, wrapDirectoryError(op, c.config.Server, err)
	}

	r, err := conn.Search(&ldap.SearchRequest{
		BaseDN:       c.config.BaseDN,
		Scope:        ldap.ScopeWholeSubtree,
		DerefAliases: ldap.NeverDerefAliases,
		Filter:       filter,
		Attributes:   attributes,
		SizeLimit:    c.config.SizeLimit,
	})
	if err != nil {
		c.logger.Error("directory_search_failed",
			slog.String("operation", op),
			slog.String("filter", filter),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return nil, wrapDirectoryError(op, c.config.Server, err)
	}

	c.logger.Debug("directory_search_completed",
		slog.String("operation", op),
		slog.Int("entries", len(r.Entries)),
		slog.Duration("duration", time.Since(start)))

	return r.Entries, nil
}

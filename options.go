package adsearch

import (
	"context"
	"crypto/tls"
	"log/slog"

	"github.com/go-ldap/ldap/v3"
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithLogger sets a custom structured logger for directory operations.
// Without it, slog.Default() is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, err := New(&config, username, password, WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
			c.config.Logger = logger
		}
	}
}

// WithTLS configures TLS settings for secure directory connections.
func WithTLS(tlsConfig *tls.Config) Option {
	return func(c *Client) {
		if tlsConfig != nil {
			c.config.TLSConfig = tlsConfig
		}
	}
}

// WithDialOptions appends custom dial options for the underlying LDAP
// connections.
func WithDialOptions(dialOpts ...ldap.DialOpt) Option {
	return func(c *Client) {
		if len(dialOpts) > 0 {
			c.config.DialOptions = append(c.config.DialOptions, dialOpts...)
		}
	}
}

// WithResolver substitutes the naming-service resolver used for computer
// address lookups. Without it, net.DefaultResolver is used.
func WithResolver(resolver HostResolver) Option {
	return func(c *Client) {
		if resolver != nil {
			c.resolver = resolver
		}
	}
}

// WithBackend pins the backend variant, skipping the capability probe.
func WithBackend(b Backend) Option {
	return func(c *Client) {
		c.config.Backend = b
	}
}

// WithConnectionFactory replaces how directory connections are established.
// Intended for tests that run against an in-memory directory.
func WithConnectionFactory(dial func(ctx context.Context) (Conn, error)) Option {
	return func(c *Client) {
		if dial != nil {
			c.dial = dial
		}
	}
}

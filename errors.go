package adsearch

import (
	"errors"
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// Sentinel errors for common directory operation failures. These provide a
// stable surface for error classification with errors.Is.
var (
	// ErrNoBackend is returned when the capability probe cannot determine
	// a usable backend variant for the directory.
	ErrNoBackend = errors.New("adsearch: no usable directory backend")

	// ErrAddressUnresolved is returned when an IP-address search criterion
	// cannot be translated to a host name on the raw-protocol backend.
	ErrAddressUnresolved = errors.New("adsearch: ip address could not be resolved to a host name")
)

// DirectoryError wraps a failed directory operation with enough context to
// debug it: the operation name, the server URL and the LDAP result code when
// the underlying error carries one.
type DirectoryError struct {
	Op     string
	Server string
	Code   int
	Err    error
}

// Error implements the error interface.
func (e *DirectoryError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("adsearch %s failed on %q (result %d): %v", e.Op, e.Server, e.Code, e.Err)
	}
	return fmt.Sprintf("adsearch %s failed on %q: %v", e.Op, e.Server, e.Err)
}

// Unwrap supports errors.Is and errors.As on the underlying cause.
func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// wrapDirectoryError attaches operation context to err, lifting the LDAP
// result code when one is available.
func wrapDirectoryError(op, server string, err error) error {
	if err == nil {
		return nil
	}

	de := &DirectoryError{Op: op, Server: server, Err: err}

	var lerr *ldap.Error
	if errors.As(err, &lerr) {
		de.Code = int(lerr.ResultCode)
	}

	return de
}

package testutil

import (
	"context"
	"net"
	"sync"
)

// FakeResolver maps host names and addresses from fixed tables instead of
// querying DNS.
type FakeResolver struct {
	mu sync.Mutex

	// Forward maps host name to address strings for LookupIPAddr.
	Forward map[string][]string
	// Reverse maps address to host names for LookupAddr.
	Reverse map[string][]string
	// Err fails every lookup when set.
	Err error

	// ForwardCalls and ReverseCalls record the arguments of each lookup.
	ForwardCalls []string
	ReverseCalls []string
}

func (r *FakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	r.mu.Lock()
	r.ForwardCalls = append(r.ForwardCalls, host)
	r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	raw, ok := r.Forward[host]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	addrs := make([]net.IPAddr, 0, len(raw))
	for _, a := range raw {
		addrs = append(addrs, net.IPAddr{IP: net.ParseIP(a)})
	}
	return addrs, nil
}

func (r *FakeResolver) LookupAddr(_ context.Context, addr string) ([]string, error) {
	r.mu.Lock()
	r.ReverseCalls = append(r.ReverseCalls, addr)
	r.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	names, ok := r.Reverse[addr]
	if !ok {
		return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
	}
	return names, nil
}

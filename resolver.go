package adsearch

import (
	"context"
	"net"
)

// HostResolver is the naming-service collaborator used to derive a
// computer's IP address from its host name and to translate an IP-address
// search criterion into a host name for backends without a native address
// attribute. *net.Resolver satisfies it.
type HostResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// firstIPv4 returns the first IPv4 address in addrs, or "" when none exists.
func firstIPv4(addrs []net.IPAddr) string {
	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return ""
}

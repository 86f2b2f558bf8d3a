// Package query implements query expansion (spec.md §4.4): deriving the
// full candidate set for a user-supplied address by following URL hosts and
// DNS records.
package query

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// ErrNoRecordsFound is the resolver's "no records" signal, distinguished
// from any other failure per spec.md §4.4: a domain with no A/CNAME records
// is not an expansion error, just an empty contribution.
var ErrNoRecordsFound = errors.New("no records found")

// Resolver is the external collaborator query expansion consumes for A and
// CNAME lookups, per spec.md §4.4's "external resolver interface".
// Implementations MAY return ErrNoRecordsFound (or wrap it) in place of an
// empty, error-free result.
type Resolver interface {
	LookupA(ctx context.Context, domain string) ([]netip.Addr, error)
	LookupCNAME(ctx context.Context, domain string) ([]string, error)
}

// NetResolver implements Resolver on top of net.Resolver, the standard
// system/recursive resolver.
type NetResolver struct {
	resolver *net.Resolver
}

var _ Resolver = (*NetResolver)(nil)

// NetResolverOption configures a NetResolver at construction time.
type NetResolverOption func(*NetResolver)

// WithResolver overrides the underlying *net.Resolver (e.g. to point at a
// specific DNS server), following the same functional-options pattern used elsewhere in this module.
func WithResolver(r *net.Resolver) NetResolverOption {
	return func(n *NetResolver) {
		n.resolver = r
	}
}

// NewNetResolver builds a NetResolver backed by net.DefaultResolver unless
// overridden via WithResolver.
func NewNetResolver(opts ...NetResolverOption) *NetResolver {
	n := &NetResolver{resolver: net.DefaultResolver}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// LookupA resolves domain's IPv4 A records. IPv6-only responses are
// filtered out; spec.md's Non-goals exclude IPv6 support entirely.
func (n *NetResolver) LookupA(ctx context.Context, domain string) ([]netip.Addr, error) {
	ips, err := n.resolver.LookupIP(ctx, "ip4", domain)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNoRecordsFound
		}

		return nil, fmt.Errorf("looking up A records for %q: %w", domain, err)
	}

	addrs := make([]netip.Addr, 0, len(ips))

	for _, ip := range ips {
		v4 := ip.To4()
		if v4 == nil {
			continue
		}

		addr, ok := netip.AddrFromSlice(v4)
		if !ok {
			continue
		}

		addrs = append(addrs, addr)
	}

	if len(addrs) == 0 {
		return nil, ErrNoRecordsFound
	}

	return addrs, nil
}

// LookupCNAME resolves domain's CNAME target. net.Resolver.LookupCNAME
// always returns a canonical name even when no alias exists (it returns the
// queried name itself, normalized); that case is treated as "no records"
// rather than a self-referential CNAME.
func (n *NetResolver) LookupCNAME(ctx context.Context, domain string) ([]string, error) {
	cname, err := n.resolver.LookupCNAME(ctx, domain)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNoRecordsFound
		}

		return nil, fmt.Errorf("looking up CNAME for %q: %w", domain, err)
	}

	target := strings.TrimSuffix(cname, ".")
	if strings.EqualFold(target, strings.TrimSuffix(domain, ".")) {
		return nil, ErrNoRecordsFound
	}

	return []string{target}, nil
}

func isNotFound(err error) bool {
	var dnsErr *net.DNSError

	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

// StubResolver is a fixed, in-memory Resolver for tests (spec.md §4.4:
// "Implementations MAY stub this with an empty resolver for tests"). The
// zero value answers every lookup with ErrNoRecordsFound.
type StubResolver struct {
	A     map[string][]netip.Addr
	CNAME map[string]string
	Err   map[string]error
}

var _ Resolver = StubResolver{}

func (s StubResolver) LookupA(_ context.Context, domain string) ([]netip.Addr, error) {
	if err, ok := s.Err[domain]; ok {
		return nil, err
	}

	addrs, ok := s.A[domain]
	if !ok || len(addrs) == 0 {
		return nil, ErrNoRecordsFound
	}

	return addrs, nil
}

func (s StubResolver) LookupCNAME(_ context.Context, domain string) ([]string, error) {
	if err, ok := s.Err[domain]; ok {
		return nil, err
	}

	target, ok := s.CNAME[domain]
	if !ok {
		return nil, ErrNoRecordsFound
	}

	return []string{target}, nil
}

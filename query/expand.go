package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"

	"github.com/zicsv-go/zicsv/address"
)

// Expansion is the result of expanding one user query: the ordered
// candidate set plus a count of per-item errors encountered along the way
// (spec.md §4.4).
type Expansion struct {
	Addresses []address.Address
	Errors    int
}

// Expand derives the full candidate set for input, per spec.md §4.4: the
// parsed input itself, plus whatever URL-host extraction and DNS resolution
// (via resolver) contribute transitively. A nil resolver is treated as one
// that never resolves anything (domains contribute nothing, matching the
// stub case).
//
// Only the initial parse failing fails the whole expansion. Errors
// encountered while deriving later candidates are counted in
// Expansion.Errors and logged with the original query as context; they do
// not stop expansion or fail the call.
func Expand(ctx context.Context, input string, resolver Resolver, logger *slog.Logger) (Expansion, error) {
	if logger == nil {
		logger = slog.Default()
	}

	first, err := address.Parse(input)
	if err != nil {
		return Expansion{}, fmt.Errorf("address %q: %w", input, err)
	}

	addrs := []address.Address{first}

	var errCount int

	for i := 0; i < len(addrs); i++ {
		more, n := moreInfo(ctx, addrs[i], resolver, input, logger)
		errCount += n
		addrs = append(addrs, more...)
	}

	return Expansion{Addresses: addrs, Errors: errCount}, nil
}

// moreInfo derives the "more info" contribution of one already-expanded
// address, per spec.md §4.4's per-variant table. Ipv4, Ipv4Network, and
// WildcardDomainName contribute nothing.
func moreInfo(ctx context.Context, addr address.Address, resolver Resolver, original string, logger *slog.Logger) ([]address.Address, int) {
	switch addr.Kind() {
	case address.KindURL:
		return moreInfoURL(addr, original, logger)
	case address.KindDomainName:
		return moreInfoDomain(ctx, addr, resolver, original, logger)
	default:
		return nil, 0
	}
}

// moreInfoURL extracts a URL's host and classifies it: a domain host
// becomes a DomainName candidate (so further expansion, e.g. DNS
// resolution, still applies to it); an IPv4 host becomes an Ipv4 candidate;
// an IPv6 host is an unsupported, counted per-item error.
func moreInfoURL(addr address.Address, original string, logger *slog.Logger) ([]address.Address, int) {
	host, ok := addr.Host()
	if !ok || host == "" {
		return nil, 0
	}

	if ip, err := netip.ParseAddr(host); err == nil {
		if ip.Is4() {
			return []address.Address{address.NewIPv4(ip)}, 0
		}

		logger.Warn("URL host is an IPv6 address, which is unsupported",
			"original_address", original, "host", host)

		return nil, 1
	}

	domainAddr, err := address.ParseDomainName(host)
	if err != nil {
		logger.Warn("failed to parse URL host as a domain name",
			"original_address", original, "host", host, "error", err)

		return nil, 1
	}

	return []address.Address{domainAddr}, 0
}

// moreInfoDomain resolves domain's A and CNAME records. Each resolved IPv4
// becomes an Ipv4 candidate; each CNAME target becomes a DomainName
// candidate, re-parsed so further expansion (another round of DNS
// resolution) applies to it in turn. ErrNoRecordsFound from either lookup
// is not an error; any other resolver error is counted and logged.
func moreInfoDomain(ctx context.Context, addr address.Address, resolver Resolver, original string, logger *slog.Logger) ([]address.Address, int) {
	if resolver == nil {
		return nil, 0
	}

	domain, _ := addr.Domain()

	var (
		out      []address.Address
		errCount int
	)

	switch ips, err := resolver.LookupA(ctx, domain); {
	case err == nil:
		for _, ip := range ips {
			out = append(out, address.NewIPv4(ip))
		}
	case errors.Is(err, ErrNoRecordsFound):
	default:
		errCount++

		logger.Warn("A lookup failed", "original_address", original, "domain", domain, "error", err)
	}

	switch targets, err := resolver.LookupCNAME(ctx, domain); {
	case err == nil:
		for _, target := range targets {
			cnameAddr, parseErr := address.ParseDomainName(target)
			if parseErr != nil {
				errCount++

				logger.Warn("CNAME target failed to parse as a domain name",
					"original_address", original, "domain", domain, "target", target, "error", parseErr)

				continue
			}

			out = append(out, cnameAddr)
		}
	case errors.Is(err, ErrNoRecordsFound):
	default:
		errCount++

		logger.Warn("CNAME lookup failed", "original_address", original, "domain", domain, "error", err)
	}

	return out, errCount
}

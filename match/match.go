package match

import (
	"net/netip"
	"strings"

	"github.com/zicsv-go/zicsv/address"
	"github.com/zicsv-go/zicsv/record"
)

// Match is one finding: a shared reference to the blocked record, the
// specific blocked address within it that matched, and why. BlockRecord is
// a pointer so a record with many matching addresses is never cloned per
// match (spec.md §3/§9).
type Match struct {
	BlockRecord    *record.Record  `json:"block_record"`
	BlockedAddress address.Address `json:"blocked_address"`
	Reason         Reason          `json:"match_reason"`
}

// AgainstRecord matches candidate against every blocked address in rec,
// appending one Match per hit in address order, per spec.md §4.5's driver
// ("for each blocked address in the record, call addr_match(blocked,
// sub)"). rec is stored by pointer, never copied, so a record that yields
// many matches is still referenced once.
func AgainstRecord(rec *record.Record, candidate address.Address) []Match {
	var matches []Match

	for _, blocked := range rec.Addresses {
		reason, ok := Addr(blocked, candidate)
		if !ok {
			continue
		}

		matches = append(matches, Match{
			BlockRecord:    rec,
			BlockedAddress: blocked,
			Reason:         reason,
		})
	}

	return matches
}

// networkContains reports whether outer, as a network, contains every
// address of inner (outer.Bits() <= inner.Bits() and outer covers inner's
// base address). Both prefixes are assumed already normalized
// (address.NewIPv4Network/ParseIPv4CIDR clear host bits on construction).
func networkContains(outer, inner netip.Prefix) bool {
	return outer.Bits() <= inner.Bits() && outer.Contains(inner.Addr())
}

// matchWildcardAsDomain applies address.MatchWildcard treating s as if it
// were a plain domain string, matching the original matcher's reuse of its
// domain-suffix check for wildcard-vs-wildcard comparisons (the candidate's
// own "*" prefix does not interfere with the suffix test).
func matchWildcardAsDomain(wildcard, s string) bool {
	return address.MatchWildcard(wildcard, s)
}

// Addr is the pure, stateless matcher of spec.md §4.5: given a blocked
// address and a candidate (sub-)address, it returns the reason the
// candidate matches, or ok=false if it does not match at all. It is total
// over every variant pair and deterministic.
//
// The Url-vs-DomainName and Url-vs-WildcardDomainName cells (marked "†" in
// spec.md §4.5) are intentionally omitted: query expansion (package query)
// already extracts a URL's host as a DomainName candidate, so those cells
// would be unreachable dead code in this implementation. See DESIGN.md.
func Addr(blocked, candidate address.Address) (Reason, bool) {
	switch candidate.Kind() {
	case address.KindIPv4:
		return matchIPv4(blocked, candidate)
	case address.KindIPv4Network:
		return matchIPv4Network(blocked, candidate)
	case address.KindDomainName:
		return matchDomainName(blocked, candidate)
	case address.KindWildcardDomainName:
		return matchWildcard(blocked, candidate)
	case address.KindURL:
		return matchURL(blocked, candidate)
	default:
		return 0, false
	}
}

func matchIPv4(blocked, candidate address.Address) (Reason, bool) {
	candidateIP, _ := candidate.IPv4()

	switch blocked.Kind() {
	case address.KindIPv4:
		blockedIP, _ := blocked.IPv4()
		if blockedIP == candidateIP {
			return Ipv4Equals, true
		}

	case address.KindIPv4Network:
		blockedNet, _ := blocked.IPv4Network()
		if blockedNet.Contains(candidateIP) {
			return Ipv4InBlockedIpv4Network, true
		}
	}

	return 0, false
}

func matchIPv4Network(blocked, candidate address.Address) (Reason, bool) {
	candidateNet, _ := candidate.IPv4Network()

	switch blocked.Kind() {
	case address.KindIPv4:
		blockedIP, _ := blocked.IPv4()
		if candidateNet.Contains(blockedIP) {
			return Ipv4NetworkContainsBlockedIpv4, true
		}

	case address.KindIPv4Network:
		blockedNet, _ := blocked.IPv4Network()

		switch {
		case blockedNet == candidateNet:
			return Ipv4NetworkEquals, true
		case networkContains(blockedNet, candidateNet):
			return Ipv4NetworkInBlockedIpv4Network, true
		case networkContains(candidateNet, blockedNet):
			return Ipv4NetworkContainsBlockedIpv4Network, true
		}
	}

	return 0, false
}

func matchDomainName(blocked, candidate address.Address) (Reason, bool) {
	candidateDomain, _ := candidate.Domain()

	switch blocked.Kind() {
	case address.KindDomainName:
		blockedDomain, _ := blocked.Domain()
		if blockedDomain == candidateDomain {
			return DomainNameEquals, true
		}

	case address.KindWildcardDomainName:
		blockedWildcard, _ := blocked.Domain()
		if address.MatchWildcard(blockedWildcard, candidateDomain) {
			return DomainNameInBlockedWildcard, true
		}
	}

	return 0, false
}

func matchWildcard(blocked, candidate address.Address) (Reason, bool) {
	candidateWildcard, _ := candidate.Domain()

	switch blocked.Kind() {
	case address.KindDomainName:
		blockedDomain, _ := blocked.Domain()
		if address.MatchWildcard(candidateWildcard, blockedDomain) {
			return WildcardContainsBlockedDomain, true
		}

	case address.KindWildcardDomainName:
		blockedWildcard, _ := blocked.Domain()

		switch {
		case blockedWildcard == candidateWildcard:
			return WildcardEquals, true
		case matchWildcardAsDomain(blockedWildcard, candidateWildcard):
			return WildcardInBlockedWildcard, true
		case matchWildcardAsDomain(candidateWildcard, blockedWildcard):
			return WildcardContainsBlockedWildcard, true
		}
	}

	return 0, false
}

func matchURL(blocked, candidate address.Address) (Reason, bool) {
	if blocked.Kind() != address.KindURL {
		return 0, false
	}

	blockedURL, _ := blocked.URLString()
	candidateURL, _ := candidate.URLString()

	switch {
	case blockedURL == candidateURL:
		return UrlEquals, true
	case strings.HasPrefix(blockedURL, candidateURL):
		return UrlContainsBlockedUrl, true
	case strings.HasPrefix(candidateURL, blockedURL):
		return UrlInBlockedUrl, true
	}

	return 0, false
}

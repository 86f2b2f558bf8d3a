package address

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// domainProfile canonicalizes domain labels to lowercase IDNA-ASCII
// (Punycode where needed), matching spec.md §4.1's requirement that
// uppercase ASCII, uppercase Cyrillic, pre-Punycoded forms, and raw Unicode
// all canonicalize to the same value. Grounded on mailspire-spf/spf.go's use
// of golang.org/x/net/idna for the same purpose (RFC 7208 domain checks).
var domainProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.ValidateLabels(true),
)

func canonicalizeDomain(s string) (string, error) {
	ascii, err := domainProfile.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("IDNA conversion failed for %q: %w", s, err)
	}

	return strings.ToLower(ascii), nil
}

// ParseDomainName parses s directly as a KindDomainName address, without
// going through Parse's variant-order fallback. Used by the record parser
// (record/reader.go) for column 1 tokens already classified as non-wildcard by
// spec.md §4.3 ("classified as wildcard if it starts with '*', else as
// domain").
func ParseDomainName(s string) (Address, error) {
	addr, err, ok := tryParseDomain(s)
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrEmptyDomain, s)
	}

	return addr, err
}

// ParseWildcardDomainName parses s directly as a KindWildcardDomainName
// address, without going through Parse's variant-order fallback. Used by
// the record parser for column 1 tokens already classified as wildcards.
func ParseWildcardDomainName(s string) (Address, error) {
	addr, err, ok := tryParseWildcard(s)
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidWildcard, s)
	}

	return addr, err
}

func tryParseDomain(s string) (Address, error, bool) {
	if s == "" {
		return Address{}, nil, false
	}

	// Wildcards are handled by tryParseWildcard; don't let a leading '*'
	// fall through and get IDNA-canonicalized as if it were a label.
	if strings.HasPrefix(s, "*") {
		return Address{}, nil, false
	}

	domain, err := canonicalizeDomain(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %w", ErrUnknownAddressType, s, err), true
	}

	if domain == "" {
		return Address{}, fmt.Errorf("%w: %q", ErrEmptyDomain, s), true
	}

	return Address{kind: KindDomainName, domain: domain}, nil, true
}

// NewDomainName builds a KindDomainName Address from an already-canonical
// lowercase IDNA-ASCII domain string, skipping re-validation. Used by
// callers (query expansion, URL host extraction) that already hold a
// canonical value.
func NewDomainName(canonical string) Address {
	return Address{kind: KindDomainName, domain: canonical}
}

func tryParseWildcard(s string) (Address, error, bool) {
	if !strings.HasPrefix(s, "*") {
		return Address{}, nil, false
	}

	if s == "*" {
		return Address{kind: KindWildcardDomainName, domain: "*"}, nil, true
	}

	if !strings.HasPrefix(s, "*.") {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidWildcard, s), true
	}

	rest := s[len("*."):]

	domain, err := canonicalizeDomain(rest)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %w", ErrInvalidWildcard, s, err), true
	}

	if domain == "" {
		return Address{}, fmt.Errorf("%w: %q", ErrEmptyDomain, s), true
	}

	return Address{kind: KindWildcardDomainName, domain: "*." + domain}, nil, true
}

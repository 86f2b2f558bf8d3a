package address

import (
	"errors"
	"fmt"
	"net/url"
)

// urlParsed is an unexported alias for *url.URL, the parsed form
// canonicalURL keeps alongside the canonical string; Address's API does not
// expose it.
type urlParsed = *url.URL

// ErrURLMissingHost is returned by ParseURL when a URL parses syntactically
// but has no scheme or no host, which spec.md §3 requires ("a parsed
// absolute URL with at least a scheme and host"). Parse does not surface
// it: a string that fails URL parsing falls through to the wildcard and
// domain variants.
var ErrURLMissingHost = errors.New("URL has no host")

func tryParseURL(s string) (Address, bool) {
	addr, err := ParseURL(s)
	if err != nil {
		return Address{}, false
	}

	return addr, true
}

// ParseURL parses s as an absolute URL with a host, per spec.md §3/§4.1.
// Unlike hueristiq/hq-go-url's url.Parser, this never injects a default scheme:
// the block list and user queries are expected to already contain absolute
// URLs, and silently coercing a bare domain into a URL would blur the line
// between the DomainName and URL variants that Parse's fallback order
// depends on.
func ParseURL(s string) (Address, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return Address{}, fmt.Errorf("error parsing URL: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		if noAuthoritySchemes[parsed.Scheme] {
			return Address{}, fmt.Errorf("%w: scheme %q does not carry a host component", ErrURLMissingHost, parsed.Scheme)
		}

		return Address{}, ErrURLMissingHost
	}

	return Address{
		kind: KindURL,
		url: &canonicalURL{
			raw:    parsed.String(),
			parsed: parsed,
		},
	}, nil
}

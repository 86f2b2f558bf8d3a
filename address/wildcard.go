package address

import "strings"

// MatchWildcard reports whether domain is covered by wildcard. It returns
// true iff wildcard is exactly "*", or domain ends with the suffix obtained
// by stripping all leading '*' characters from wildcard (spec.md §4.1/§9).
//
// The suffix check is a raw string-ends-with, and the suffix includes the
// leading '.' (e.g. "*.example.org" strips to ".example.org"). Trimming all
// leading '*' rather than a fixed "*." prefix is deliberate per spec.md §9:
// it keeps the runtime check uniform for both "*" and "*.foo" without a
// special case. Grounded on zicsv-tool/src/search.rs's match_wildcard_domain
// (wildcard_domain.trim_left_matches('*')).
func MatchWildcard(wildcard, domain string) bool {
	if wildcard == "*" {
		return true
	}

	suffix := strings.TrimLeft(wildcard, "*")

	return strings.HasSuffix(domain, suffix)
}

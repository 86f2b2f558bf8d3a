package match

// phraseByReason gives each Reason a short human-readable explanation for
// the human-readable search renderer (spec.md §6).
var phraseByReason = map[Reason]string{
	Ipv4Equals:               "matches blocked IPv4 address",
	Ipv4InBlockedIpv4Network: "is contained in blocked network",

	Ipv4NetworkContainsBlockedIpv4:        "contains blocked IPv4 address",
	Ipv4NetworkEquals:                     "matches blocked network",
	Ipv4NetworkInBlockedIpv4Network:       "is a subnet of blocked network",
	Ipv4NetworkContainsBlockedIpv4Network: "contains blocked network",

	DomainNameEquals:            "matches blocked domain",
	DomainNameInBlockedWildcard: "is covered by blocked wildcard domain",
	DomainNameInBlockedUrl:      "matches the host of a blocked URL",

	WildcardContainsBlockedDomain:   "covers blocked domain",
	WildcardEquals:                  "matches blocked wildcard domain",
	WildcardInBlockedWildcard:       "is covered by blocked wildcard domain",
	WildcardContainsBlockedWildcard: "covers blocked wildcard domain",
	WildcardContainsBlockedUrl:      "covers the host of a blocked URL",

	UrlEquals:            "matches blocked URL",
	UrlContainsBlockedUrl: "is a prefix of blocked URL",
	UrlInBlockedUrl:       "is prefixed by blocked URL",
}

// Phrase returns the short human-readable explanation for r, used by the
// human-readable search renderer.
func (r Reason) Phrase() string {
	phrase, ok := phraseByReason[r]
	if !ok {
		return "matches blocked address"
	}

	return phrase
}

package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zicsv-go/zicsv/address"
	"github.com/zicsv-go/zicsv/match"
	"github.com/zicsv-go/zicsv/record"
)

func mustParse(t *testing.T, s string) address.Address {
	t.Helper()

	addr, err := address.Parse(s)
	require.NoError(t, err)

	return addr
}

func TestAddr_CrossProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		blocked    string
		candidate  string
		wantReason match.Reason
		wantMatch  bool
	}{
		{"ipv4 equals", "1.2.3.4", "1.2.3.4", match.Ipv4Equals, true},
		{"ipv4 no match", "1.2.3.4", "1.2.3.5", 0, false},
		{"ipv4 in blocked network", "1.2.0.0/16", "1.2.3.4", match.Ipv4InBlockedIpv4Network, true},
		{"ipv4 not in blocked network", "9.9.0.0/16", "1.2.3.4", 0, false},

		{"network contains blocked ipv4", "1.2.3.4", "1.2.0.0/16", match.Ipv4NetworkContainsBlockedIpv4, true},
		{"network equals", "1.2.0.0/16", "1.2.0.0/16", match.Ipv4NetworkEquals, true},
		{"network in blocked network", "1.0.0.0/8", "1.2.0.0/16", match.Ipv4NetworkInBlockedIpv4Network, true},
		{"network contains blocked network", "1.2.0.0/16", "1.0.0.0/8", match.Ipv4NetworkContainsBlockedIpv4Network, true},
		{"disjoint networks", "1.2.0.0/16", "9.9.0.0/16", 0, false},

		{"domain equals", "example.org", "example.org", match.DomainNameEquals, true},
		{"domain in blocked wildcard", "*.example.org", "sub.example.org", match.DomainNameInBlockedWildcard, true},
		{"domain not in blocked wildcard", "*.example.org", "example.com", 0, false},

		{"wildcard contains blocked domain", "www.example.org", "*.example.org", match.WildcardContainsBlockedDomain, true},
		{"wildcard equals", "*.example.org", "*.example.org", match.WildcardEquals, true},
		{"wildcard in blocked wildcard", "*.example.org", "*.sub.example.org", match.WildcardInBlockedWildcard, true},
		{"wildcard contains blocked wildcard", "*.sub.example.org", "*.example.org", match.WildcardContainsBlockedWildcard, true},

		{"url equals", "http://example.org/a", "http://example.org/a", match.UrlEquals, true},
		{"url contains blocked url", "http://example.org/a", "http://example.org", match.UrlContainsBlockedUrl, true},
		{"url in blocked url", "http://example.org", "http://example.org/a", match.UrlInBlockedUrl, true},
		{"url no match", "http://example.org", "http://other.org", 0, false},

		{"star matches every domain", "*", "anything.example.org", match.DomainNameInBlockedWildcard, true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocked := mustParse(t, tt.blocked)
			candidate := mustParse(t, tt.candidate)

			reason, ok := match.Addr(blocked, candidate)
			if !tt.wantMatch {
				assert.False(t, ok)

				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestAddr_SelfEquals(t *testing.T) {
	t.Parallel()

	samples := []string{
		"1.2.3.4",
		"1.2.0.0/16",
		"example.org",
		"*.example.org",
		"http://example.org/a",
	}

	for _, s := range samples {
		s := s

		t.Run(s, func(t *testing.T) {
			t.Parallel()

			addr := mustParse(t, s)

			reason, ok := match.Addr(addr, addr)
			require.True(t, ok)
			assert.Contains(t, reason.String(), "Equals")
		})
	}
}

func TestAddr_DomainVsUrlIsDeadCell(t *testing.T) {
	t.Parallel()

	blocked := mustParse(t, "http://example.org/a")
	candidate := mustParse(t, "example.org")

	_, ok := match.Addr(blocked, candidate)
	assert.False(t, ok, "Url-vs-DomainName is handled by query expansion, not the matcher")
}

func TestAddr_IsTotal(t *testing.T) {
	t.Parallel()

	kinds := []string{"1.2.3.4", "1.2.0.0/16", "example.org", "*.example.org", "http://example.org"}

	for _, blockedStr := range kinds {
		for _, candidateStr := range kinds {
			blocked := mustParse(t, blockedStr)
			candidate := mustParse(t, candidateStr)

			assert.NotPanics(t, func() {
				match.Addr(blocked, candidate)
			})
		}
	}
}

func TestAgainstRecord_SharesRecordPointer(t *testing.T) {
	t.Parallel()

	rec := &record.Record{
		Addresses: []address.Address{
			mustParse(t, "1.2.0.0/16"),
			mustParse(t, "*.org"),
		},
	}

	matches := match.AgainstRecord(rec, mustParse(t, "1.2.3.4"))
	require.Len(t, matches, 1)
	assert.Equal(t, match.Ipv4InBlockedIpv4Network, matches[0].Reason)
	assert.Same(t, rec, matches[0].BlockRecord)

	matches = match.AgainstRecord(rec, mustParse(t, "example.org"))
	require.Len(t, matches, 1)
	assert.Equal(t, match.DomainNameInBlockedWildcard, matches[0].Reason)
}

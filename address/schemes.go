package address

// noAuthoritySchemes is a sorted list of well-known URL schemes that are
// legitimately hostless, followed by ":" instead of "://" (e.g. "mailto:",
// "tel:"). Adapted from hueristiq/hq-go-url's schemes.NoAuthority list
// (hueristiq-hq-go-url/schemes/schemes_no_authority.go); repurposed here
// from "categorize an arbitrary scheme" to "explain why a parsed URL has no
// host" in ParseURL, since spec.md §3 requires every KindURL Address to
// have a host and these schemes are the common reason one wouldn't.
var noAuthoritySchemes = map[string]bool{
	"bitcoin": true,
	"cid":     true,
	"file":    true,
	"magnet":  true,
	"mailto":  true,
	"mid":     true,
	"sms":     true,
	"tel":     true,
	"xmpp":    true,
}

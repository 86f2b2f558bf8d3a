package address

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders addr as a single-key object {"<Variant>": "<canonical
// string>"} per spec.md §6 ("tagged union with variant names IPv4,
// IPv4Network, DomainName, WildcardDomainName, URL"; the IPv4Network
// payload is the canonical "addr/prefix" string, URL the canonical URL
// string). This is Rust serde's default externally-tagged representation
// for a single-field enum variant, which the original's
// #[derive(Serialize)] on zicsv::Address (original_source/zicsv/src/types.rs)
// produces; the Go encoding here is written to match it byte-for-shape. The
// __NonExhaustive sentinel described in spec.md §3 is never serialized,
// matching types.rs's Record.__may_be_extended #[serde(skip_serializing)].
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		a.kind.String(): a.Render(),
	})
}

// UnmarshalJSON parses the single-key {"<Variant>": "<canonical>"} object
// MarshalJSON produces back into an Address, dispatching to the
// kind-specific direct parsers so the result round-trips exactly (rather
// than re-running Parse's variant-order fallback, which would be ambiguous
// for some canonical strings, e.g. a bare IPv4 literal spelled inside a
// DomainName envelope).
func (a *Address) UnmarshalJSON(data []byte) error {
	var env map[string]string
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("error decoding address: %w", err)
	}

	if len(env) != 1 {
		return fmt.Errorf("%w: expected exactly one variant key, got %d", ErrUnknownAddressType, len(env))
	}

	var kind, value string
	for kind, value = range env {
	}

	var (
		parsed Address
		err    error
	)

	switch kind {
	case "IPv4":
		parsed, err = ParseIPv4Literal(value)
	case "IPv4Network":
		parsed, err = ParseIPv4CIDR(value)
	case "DomainName":
		parsed, err = ParseDomainName(value)
	case "WildcardDomainName":
		parsed, err = ParseWildcardDomainName(value)
	case "URL":
		parsed, err = ParseURL(value)
	default:
		return fmt.Errorf("%w: unknown address type %q", ErrUnknownAddressType, kind)
	}

	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

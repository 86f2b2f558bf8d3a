// Package codepage decodes the legacy single-byte Windows-1251 encoding the
// Zapret-Info dump ships in, matching spec.md §4.2. Decoding is strict: any
// byte sequence the table cannot map fails the whole call, which the record
// parser (record.Reader) surfaces as a per-line error rather than a silent
// substitution.
//
// Grounded on original_source/zicsv/src/reader.rs's str_from_cp1251, which
// uses the Rust "encoding" crate's WINDOWS_1251 table with
// DecoderTrap::Strict. The Go ecosystem's closest equivalent strict
// single-byte codepage decoder lives in golang.org/x/text/encoding/charmap,
// reused here as the same golang.org/x/* family already admitted into this
// module's dependency stack via golang.org/x/net/idna (see address/domain.go).
package codepage

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// unassigned is the rune x/text/encoding/charmap substitutes for any
// Windows-1251 byte that has no assigned character (e.g. 0x98). Since the
// charmap decoder never returns an error for these (it treats the table as
// total), strictness is enforced here by scanning for this rune after
// decoding rather than by a decode-time error.
const unassigned = utf8.RuneError

// DecodeWindows1251 decodes raw as Windows-1251 and returns the resulting
// UTF-8 string. It fails strictly: any byte with no assigned mapping in the
// Windows-1251 table is an error, not a silent replacement character.
func DecodeWindows1251(raw []byte) (string, error) {
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("invalid Windows-1251 byte sequence: %w", err)
	}

	out := string(decoded)

	for i, r := range out {
		if r == unassigned {
			return "", fmt.Errorf("invalid Windows-1251 byte sequence at position %d", i)
		}
	}

	return out, nil
}

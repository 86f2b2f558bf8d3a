package search

import (
	"bufio"
	"fmt"
	"io"
)

// WriteHuman renders results in the human-readable search format of
// spec.md §6: a header line per query, one indented line per sub-address
// ("not found" or "blocked"), and one further-indented line per match
// giving the reason phrase, blocked address, and source record fields.
// Blank lines separate siblings. This format has no upstream reference —
// search.rs leaves it as `// TODO: Human-readable output.` — so the shape
// here is authored directly from spec.md §6's field list.
func WriteHuman(w io.Writer, results []QueryResult) error {
	bw := bufio.NewWriter(w)

	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(bw); err != nil {
				return fmt.Errorf("writing human-readable output: %w", err)
			}
		}

		if err := writeQueryResult(bw, result); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing human-readable output: %w", err)
	}

	return nil
}

func writeQueryResult(bw *bufio.Writer, result QueryResult) error {
	if _, err := fmt.Fprintf(bw, "%s:\n", result.OriginalAddress); err != nil {
		return fmt.Errorf("writing human-readable output: %w", err)
	}

	for j, sub := range result.Addresses {
		if j > 0 {
			if _, err := fmt.Fprintln(bw); err != nil {
				return fmt.Errorf("writing human-readable output: %w", err)
			}
		}

		if err := writeSubAddress(bw, sub); err != nil {
			return err
		}
	}

	return nil
}

func writeSubAddress(bw *bufio.Writer, sub SubAddressWithMatches) error {
	if len(sub.Matches) == 0 {
		_, err := fmt.Fprintf(bw, "  %s: not found\n", sub.Address.String())
		if err != nil {
			return fmt.Errorf("writing human-readable output: %w", err)
		}

		return nil
	}

	if _, err := fmt.Fprintf(bw, "  %s: blocked\n", sub.Address.String()); err != nil {
		return fmt.Errorf("writing human-readable output: %w", err)
	}

	for _, m := range sub.Matches {
		_, err := fmt.Fprintf(bw, "    %s: %s (%s, %s, %s)\n",
			m.Reason.Phrase(),
			m.BlockedAddress.String(),
			m.BlockRecord.Organization,
			m.BlockRecord.DocumentID,
			m.BlockRecord.DocumentDate.Format("2006-01-02"),
		)
		if err != nil {
			return fmt.Errorf("writing human-readable output: %w", err)
		}
	}

	return nil
}

// Package search implements query-driven address matching against a dump:
// expanding each user-supplied address (package query), scanning every
// parsed record against every expanded sub-address (package match), and
// assembling the rendering-neutral result tree spec.md §3/§5 describes,
// ready for either JSON or human-readable rendering.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zicsv-go/zicsv/address"
	"github.com/zicsv-go/zicsv/match"
	"github.com/zicsv-go/zicsv/query"
	"github.com/zicsv-go/zicsv/record"
)

// SubAddressWithMatches is one expanded sub-address of a user query and
// every block-list finding attached to it, per spec.md §3.
type SubAddressWithMatches struct {
	Address address.Address `json:"address"`
	Matches []match.Match   `json:"matches"`
}

// QueryResult is one user query's full result: the original string plus its
// expanded sub-addresses in expansion order, per spec.md §3.
type QueryResult struct {
	OriginalAddress string                  `json:"original_address"`
	Addresses       []SubAddressWithMatches `json:"addresses"`
}

// Run expands every query, then scans reader's records against every
// expanded sub-address, accumulating matches in record × query ×
// sub-address × blocked-address order (spec.md §5). It returns one
// QueryResult per input query (in input order), plus the counts of
// expansion errors and record-parse errors encountered — both are
// non-fatal by themselves (spec.md §7); the caller decides whether their
// sum makes the overall command exit non-zero.
func Run(ctx context.Context, queries []string, reader record.GenericReader, resolver query.Resolver, logger *slog.Logger) (results []QueryResult, expansionErrors, recordErrors int, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	results = make([]QueryResult, len(queries))

	for i, q := range queries {
		expansion, expandErr := query.Expand(ctx, q, resolver, logger)
		if expandErr != nil {
			return nil, 0, 0, fmt.Errorf("address %q: %w", q, expandErr)
		}

		expansionErrors += expansion.Errors

		subAddresses := make([]SubAddressWithMatches, len(expansion.Addresses))
		for j, addr := range expansion.Addresses {
			subAddresses[j] = SubAddressWithMatches{Address: addr}
		}

		results[i] = QueryResult{OriginalAddress: q, Addresses: subAddresses}
	}

	for {
		rec, recErr, ok := reader.Next()
		if !ok {
			break
		}

		if recErr != nil {
			recordErrors++

			logger.Error("error reading record", "error", recErr)

			continue
		}

		for i := range results {
			for j := range results[i].Addresses {
				sub := &results[i].Addresses[j]
				sub.Matches = append(sub.Matches, match.AgainstRecord(&rec, sub.Address)...)
			}
		}
	}

	return results, expansionErrors, recordErrors, nil
}

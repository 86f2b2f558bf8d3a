package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/zicsv-go/zicsv/query"
	"github.com/zicsv-go/zicsv/search"
)

// runSearch implements the search subcommand. zicsv-tool/src/main.rs's
// retrieved snapshot never wires search.rs into its Command enum even
// though the module is fully implemented; this dispatches to it directly,
// since spec.md §6 requires the subcommand.
func runSearch(args []string) (err error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	g := &globalFlags{}
	registerGlobalFlags(fs, g)
	format := fs.String("O", "human-readable", "output format: human-readable, pretty-json, or json")
	fs.StringVar(format, "format", "human-readable", "output format: human-readable, pretty-json, or json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	addresses := fs.Args()
	if len(addresses) == 0 {
		return fmt.Errorf("%w: at least one address must be specified", errUsage)
	}

	switch *format {
	case "human-readable", "pretty-json", "json":
	default:
		return fmt.Errorf("%w: unknown output format %q", errUsage, *format)
	}

	reader, closeReader, err := g.openReader()
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer closeReader()

	writer, closeWriter, err := g.openWriter()
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer func() {
		if closeErr := closeWriter(); closeErr != nil && err == nil {
			err = fmt.Errorf("writing output: %w", closeErr)
		}
	}()

	resolver := query.NewNetResolver()

	results, expansionErrors, recordErrors, err := search.Run(context.Background(), addresses, reader, resolver, nil)
	if err != nil {
		return err
	}

	switch *format {
	case "human-readable":
		err = search.WriteHuman(writer, results)
	case "pretty-json":
		err = search.WriteSearchJSON(writer, results, false)
	case "json":
		err = search.WriteSearchJSON(writer, results, true)
	}

	if err != nil {
		return err
	}

	// spec §7: both expansion errors (Resolve) and record errors (RecordParse)
	// must fail the command after output is flushed, matching search.rs:318-322's
	// ensure!(n_prepare_errors == 0, ...) / ensure!(n_reader_errors == 0, ...).
	if expansionErrors > 0 || recordErrors > 0 {
		return fmt.Errorf("%d address expansion errors, %d record errors occurred", expansionErrors, recordErrors)
	}

	return nil
}

package main

import (
	"flag"
	"fmt"

	"github.com/zicsv-go/zicsv/record"
	"github.com/zicsv-go/zicsv/search"
)

// runIntoJSON implements the into-json subcommand, grounded on
// zicsv-tool/src/into_json.rs's load_records/into_json: drain every record
// off the reader into a slice, then render {updated, records} as JSON.
func runIntoJSON(args []string) (err error) {
	fs := flag.NewFlagSet("into-json", flag.ContinueOnError)
	g := &globalFlags{}
	registerGlobalFlags(fs, g)
	disablePretty := fs.Bool("P", false, "disable pretty-printing")
	fs.BoolVar(disablePretty, "disable-pretty", false, "disable pretty-printing")

	if err := fs.Parse(args); err != nil {
		return err
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

	var records []record.Record

	nErrors := 0

	for {
		rec, recErr, ok := reader.Next()
		if !ok {
			break
		}

		if recErr != nil {
			nErrors++

			printError(recErr)

			continue
		}

		records = append(records, rec)
	}

	if err := search.WriteDumpJSON(writer, reader.Timestamp(), records, *disablePretty); err != nil {
		return err
	}

	if nErrors > 0 {
		return fmt.Errorf("%d errors occurred while reading list", nErrors)
	}

	return nil
}

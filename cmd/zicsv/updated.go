package main

import (
	"flag"
	"fmt"
)

// runUpdated implements the updated subcommand: print the dump's header
// timestamp. Grounded on zicsv-tool/src/main.rs's
// Command::Updated => println!("{}", reader.get_timestamp()).
func runUpdated(args []string) (err error) {
	fs := flag.NewFlagSet("updated", flag.ContinueOnError)
	g := &globalFlags{}
	registerGlobalFlags(fs, g)

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

	if _, err := fmt.Fprintln(writer, reader.Timestamp().Format("2006-01-02T15:04:05")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

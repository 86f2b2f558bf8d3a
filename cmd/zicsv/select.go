package main

import (
	"flag"
	"fmt"

	"github.com/zicsv-go/zicsv/address"
)

// runSelect implements the select subcommand: print the canonical string
// form of every address in every record whose kind was enabled, one per
// line. Grounded on zicsv-tool/src/select.rs's select(): a flat loop over
// records, then over each record's addresses, filtering on a per-kind flag.
func runSelect(args []string) (err error) {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	g := &globalFlags{}
	registerGlobalFlags(fs, g)

	var opts struct {
		ipv4, ipv4Network, domain, wildcardDomain, url bool
	}

	fs.BoolVar(&opts.ipv4, "4", false, "IPv4 addresses")
	fs.BoolVar(&opts.ipv4, "ipv4", false, "IPv4 addresses")
	fs.BoolVar(&opts.ipv4Network, "n", false, "IPv4 networks")
	fs.BoolVar(&opts.ipv4Network, "ipv4-network", false, "IPv4 networks")
	fs.BoolVar(&opts.domain, "d", false, "domain names")
	fs.BoolVar(&opts.domain, "domain", false, "domain names")
	fs.BoolVar(&opts.wildcardDomain, "w", false, "wildcard domain names")
	fs.BoolVar(&opts.wildcardDomain, "wildcard-domain", false, "wildcard domain names")
	fs.BoolVar(&opts.url, "u", false, "URLs")
	fs.BoolVar(&opts.url, "url", false, "URLs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !opts.ipv4 && !opts.ipv4Network && !opts.domain && !opts.wildcardDomain && !opts.url {
		return fmt.Errorf("%w: at least one selection flag must be specified", errUsage)
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

		for _, addr := range rec.Addresses {
			selected := false

			switch addr.Kind() {
			case address.KindIPv4:
				selected = opts.ipv4
			case address.KindIPv4Network:
				selected = opts.ipv4Network
			case address.KindDomainName:
				selected = opts.domain
			case address.KindWildcardDomainName:
				selected = opts.wildcardDomain
			case address.KindURL:
				selected = opts.url
			}

			if selected {
				if _, err := fmt.Fprintln(writer, addr.String()); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}
		}
	}

	if nErrors > 0 {
		return fmt.Errorf("%d errors occurred while reading list", nErrors)
	}

	return nil
}

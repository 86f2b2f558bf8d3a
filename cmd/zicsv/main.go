// Command zicsv parses a Zapret-Info block-list dump and answers whether a
// given address is covered by it. See spec.md §6 for the CLI surface.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zicsv-go/zicsv/record"
)

// globalFlags holds the input/output path options every subcommand
// accepts, per spec.md §6 ("Global: -i/--input <path> (default stdin),
// -o/--output <path> (default stdout)").
type globalFlags struct {
	input  string
	output string
}

func registerGlobalFlags(fs *flag.FlagSet, g *globalFlags) {
	fs.StringVar(&g.input, "i", "", "read from file instead of stdin")
	fs.StringVar(&g.input, "input", "", "read from file instead of stdin")
	fs.StringVar(&g.output, "o", "", "write to file instead of stdout")
	fs.StringVar(&g.output, "output", "", "write to file instead of stdout")
}

func (g *globalFlags) openReader() (*record.Reader, func() error, error) {
	if g.input == "" {
		r, err := record.NewReader(bufio.NewReader(os.Stdin))
		if err != nil {
			return nil, nil, err
		}

		return r, func() error { return nil }, nil
	}

	r, err := record.Open(g.input)
	if err != nil {
		return nil, nil, err
	}

	return r, r.Close, nil
}

func (g *globalFlags) openWriter() (io.Writer, func() error, error) {
	if g.output == "" {
		w := bufio.NewWriter(os.Stdout)

		return w, w.Flush, nil
	}

	f, err := os.Create(g.output)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %q: %w", g.output, err)
	}

	w := bufio.NewWriter(f)

	return w, func() error {
		if err := w.Flush(); err != nil {
			_ = f.Close()

			return fmt.Errorf("flushing %q: %w", g.output, err)
		}

		return f.Close()
	}, nil
}

var errUsage = errors.New("usage error")

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: expected a subcommand (into-json, select, updated, search)", errUsage)
	}

	switch args[0] {
	case "into-json":
		return runIntoJSON(args[1:])
	case "select":
		return runSelect(args[1:])
	case "updated":
		return runUpdated(args[1:])
	case "search":
		return runSearch(args[1:])
	default:
		return fmt.Errorf("%w: unknown subcommand %q", errUsage, args[0])
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(os.Args[1:]); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError prints err's full cause chain to stderr, per spec.md §6's
// "Errors are printed to the diagnostic stream with a full cause chain."
// Grounded on zicsv-tool/src/print_err.rs's cause-walking loop, adapted to
// errors.Unwrap's single-parent chain (Go has no multi-cause errors, so
// there is no backtrace-deduplication step to port).
func printError(err error) {
	fmt.Fprintln(os.Stderr, "Error:")

	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(os.Stderr, "    %s\n", cause)
	}
}

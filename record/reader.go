package record

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/zicsv-go/zicsv/address"
	"github.com/zicsv-go/zicsv/codepage"
	"github.com/zicsv-go/zicsv/timestamp"
)

// ErrHeaderParse is returned by the constructors when the header line
// ("Updated: ...") is missing or malformed. Per spec.md §7, this is fatal:
// the reader cannot be constructed at all.
var ErrHeaderParse = errors.New("malformed dump header")

// LineError annotates err with the 1-based dump line it occurred on
// (counting from 2; line 1 is the header), matching spec.md §4.3/§7's
// "Line <n>" context requirement. Grounded on
// original_source/zicsv/src/reader.rs's
// error.context(format!("Line {}", self.line_n)).
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// GenericReader is the dump reader facade of spec.md §4.4/§6: the
// timestamp plus a pull-based record stream. Named to match the role of
// the original's GenericReader trait (original_source/zicsv/src/reader.rs).
type GenericReader interface {
	// Timestamp returns the dump's snapshot time, normalized to naive UTC.
	Timestamp() time.Time

	// Next pulls the next record. ok is false once the stream is
	// exhausted; a non-nil err with ok true is a per-record error that
	// does not stop the stream (spec.md §4.3/§5).
	Next() (rec Record, err error, ok bool)

	// Close releases any resources (e.g. an open file) acquired by the
	// constructor.
	Close() error
}

// Reader implements GenericReader over a buffered byte stream.
type Reader struct {
	ts        time.Time
	csvReader *csv.Reader
	lineN     int
	closer    io.Closer
}

var _ GenericReader = (*Reader)(nil)

// ReaderOption configures a Reader at construction time. Grounded on the
// teacher's functional-options pattern (url.NewParser(opts
// ...ParserOptionsFunc), hueristiq-hq-go-url/url_parser.go).
type ReaderOption func(*Reader)

// Open opens path and parses it as a dump, per spec.md §4.4/§6 ("construct
// from a file path"). The file is closed when Close is called.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	r, err := NewBufReader(bufio.NewReader(f), opts...)
	if err != nil {
		_ = f.Close()

		return nil, fmt.Errorf("file %q: %w", path, err)
	}

	r.closer = f

	return r, nil
}

// NewReader wraps r in a bufio.Reader and parses it as a dump, per spec.md
// §4.4/§6 ("construct from ... byte stream").
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	return NewBufReader(bufio.NewReader(r), opts...)
}

// NewBufReader parses an already-buffered stream as a dump, per spec.md
// §4.4/§6 ("construct from ... buffered stream"). Buffered I/O is
// mandatory per spec.md §5, so this is the constructor the other two
// funnel through.
func NewBufReader(r *bufio.Reader, opts ...ReaderOption) (*Reader, error) {
	headerLine, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	ts, err := timestamp.Parse(headerLine)
	if err != nil {
		return nil, fmt.Errorf("%w: Line 1: %w", ErrHeaderParse, err)
	}

	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	rdr := &Reader{
		ts:        ts,
		csvReader: csvReader,
		lineN:     1,
	}

	for _, opt := range opts {
		opt(rdr)
	}

	return rdr, nil
}

// Timestamp returns the dump's snapshot time, normalized to naive UTC.
func (r *Reader) Timestamp() time.Time {
	return r.ts
}

// Close releases the underlying file handle if Open was used to construct
// this Reader; it is a no-op otherwise.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}

	return r.closer.Close()
}

// Next pulls the next record from the stream, per spec.md §4.3/§5. ok is
// false once the stream is exhausted. A non-nil err with ok true is a
// per-record error ("a failed line does not poison the rest of the
// stream"); the caller decides whether to abort or continue. The line
// counter advances on both success and error.
func (r *Reader) Next() (rec Record, err error, ok bool) {
	r.lineN++

	fields, readErr := r.csvReader.Read()
	if errors.Is(readErr, io.EOF) {
		return Record{}, nil, false
	}

	if readErr != nil {
		return Record{}, &LineError{Line: r.lineN, Err: readErr}, true
	}

	rec, err = parseFields(fields)
	if err != nil {
		return Record{}, &LineError{Line: r.lineN, Err: err}, true
	}

	return rec, nil, true
}

func parseFields(rawFields []string) (Record, error) {
	if len(rawFields) != 6 {
		return Record{}, fmt.Errorf("invalid number of fields: %d != 6", len(rawFields))
	}

	fields := make([]string, len(rawFields))

	for i, raw := range rawFields {
		decoded, err := codepage.DecodeWindows1251([]byte(raw))
		if err != nil {
			return Record{}, fmt.Errorf("field %d: %w", i, err)
		}

		fields[i] = decoded
	}

	var addresses []address.Address

	if err := appendIPv4Column(fields[0], &addresses); err != nil {
		return Record{}, err
	}

	if err := appendDomainColumn(fields[1], &addresses); err != nil {
		return Record{}, err
	}

	if err := appendURLColumn(fields[2], &addresses); err != nil {
		return Record{}, err
	}

	date, err := parseDocumentDate(fields[5])
	if err != nil {
		return Record{}, err
	}

	return Record{
		Addresses:    addresses,
		Organization: strings.TrimSpace(fields[3]),
		DocumentID:   strings.TrimSpace(fields[4]),
		DocumentDate: date,
	}, nil
}

// splitColumn splits s on delim, trims each part, and skips empty parts,
// per spec.md §4.3's tokenization rule (shared by all three address
// columns despite their different delimiters). Grounded on
// reader.rs's parse_for_each.
func splitColumn(s, delim string) []string {
	rawParts := strings.Split(s, delim)
	parts := make([]string, 0, len(rawParts))

	for _, p := range rawParts {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}

	return parts
}

// appendIPv4Column tokenizes column 0 on "|", classifying each part as CIDR
// if it contains '/' else as an IPv4 literal, per spec.md §4.3. Grounded on
// reader.rs's parse_ipv4_addresses.
func appendIPv4Column(s string, addresses *[]address.Address) error {
	for _, part := range splitColumn(s, "|") {
		var (
			addr address.Address
			err  error
		)

		if strings.Contains(part, "/") {
			addr, err = address.ParseIPv4CIDR(part)
		} else {
			addr, err = address.ParseIPv4Literal(part)
		}

		if err != nil {
			return err
		}

		*addresses = append(*addresses, addr)
	}

	return nil
}

// appendDomainColumn tokenizes column 1 on "|", classifying each part as a
// wildcard if it starts with '*' else as a domain, per spec.md §4.3.
// Grounded on reader.rs's parse_domain_name.
func appendDomainColumn(s string, addresses *[]address.Address) error {
	for _, part := range splitColumn(s, "|") {
		var (
			addr address.Address
			err  error
		)

		if strings.HasPrefix(part, "*") {
			addr, err = address.ParseWildcardDomainName(part)
		} else {
			addr, err = address.ParseDomainName(part)
		}

		if err != nil {
			return err
		}

		*addresses = append(*addresses, addr)
	}

	return nil
}

// appendURLColumn tokenizes column 2 on " | " (space-pipe-space, since
// URLs themselves may contain '|'), per spec.md §4.3. Grounded on
// reader.rs's parse_url.
func appendURLColumn(s string, addresses *[]address.Address) error {
	for _, part := range splitColumn(s, " | ") {
		addr, err := address.ParseURL(part)
		if err != nil {
			return err
		}

		*addresses = append(*addresses, addr)
	}

	return nil
}

func parseDocumentDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)

	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid document date %q: %w", s, err)
	}

	return t, nil
}

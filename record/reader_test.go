package record_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zicsv-go/zicsv/record"
)

func mustReader(t *testing.T, body string) *record.Reader {
	t.Helper()

	r, err := record.NewReader(strings.NewReader(body))
	require.NoError(t, err)

	return r
}

func TestNewReader_HeaderOnly(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n")

	want := time.Date(2017, 11, 29, 13, 34, 56, 0, time.UTC)
	assert.True(t, r.Timestamp().Equal(want))

	_, err, ok := r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewReader_MalformedHeader(t *testing.T) {
	t.Parallel()

	_, err := record.NewReader(strings.NewReader("not a header\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, record.ErrHeaderParse)
}

func TestReader_EmptyRecord(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n;;;;;2017-01-02\n")

	rec, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Empty(t, rec.Addresses)
	assert.Equal(t, "", rec.Organization)
	assert.Equal(t, "", rec.DocumentID)
	assert.True(t, rec.DocumentDate.Equal(time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC)))

	_, err, ok = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReader_FullRecord(t *testing.T) {
	t.Parallel()

	body := "Updated: 2017-11-29 12:34:56 -0100\n" +
		"1.2.3.4|1.2.3.0/24;example.com|*.example.com;http://example.com?test=x|y;Acme;123;2017-01-02\n"

	r := mustReader(t, body)

	rec, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, rec.Addresses, 5)
	assert.Equal(t, "Acme", rec.Organization)
	assert.Equal(t, "123", rec.DocumentID)

	assert.Equal(t, "1.2.3.4", rec.Addresses[0].String())
	assert.Equal(t, "1.2.3.0/24", rec.Addresses[1].String())
	assert.Equal(t, "example.com", rec.Addresses[2].String())
	assert.Equal(t, "*.example.com", rec.Addresses[3].String())
	assert.Equal(t, "http://example.com?test=x|y", rec.Addresses[4].String())
}

func TestReader_URLColumnSpacePipeSpaceSplit(t *testing.T) {
	t.Parallel()

	body := "Updated: 2017-11-29 12:34:56 -0100\n" +
		";;http://a.example.com | http://b.example.com;;;2017-01-02\n"

	r := mustReader(t, body)

	rec, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)

	require.Len(t, rec.Addresses, 2)
	assert.Equal(t, "http://a.example.com", rec.Addresses[0].String())
	assert.Equal(t, "http://b.example.com", rec.Addresses[1].String())
}

func TestReader_WrongFieldCount(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n;;;;;;2017-01-02\n")

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)

	var lineErr *record.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line)
}

func TestReader_MissingDate(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n;;;;;\n")

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)
}

func TestReader_UnparseableDate(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n;;;;;test\n")

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)
}

func TestReader_InvalidIPv4(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\ninvalid;;;;;2017-01-02\n")

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)

	var lineErr *record.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line)
}

func TestReader_InvalidURL(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n;;invalid;;;2017-01-02\n")

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)
}

func TestReader_ErrorDoesNotPoisonStream(t *testing.T) {
	t.Parallel()

	body := "Updated: 2017-11-29 12:34:56 -0100\n" +
		"invalid;;;;;2017-01-02\n" +
		";;;;;2017-01-03\n"

	r := mustReader(t, body)

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)

	var lineErr *record.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 2, lineErr.Line)

	rec, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.DocumentDate.Equal(time.Date(2017, 1, 3, 0, 0, 0, 0, time.UTC)))

	_, err, ok = r.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReader_LineNumbersAdvancePastErrors(t *testing.T) {
	t.Parallel()

	body := "Updated: 2017-11-29 12:34:56 -0100\n" +
		";;;;;2017-01-01\n" +
		"invalid;;;;;2017-01-02\n" +
		";;;;;2017-01-03\n"

	r := mustReader(t, body)

	_, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, err, ok = r.Next()
	require.Error(t, err)
	require.True(t, ok)

	var lineErr *record.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 3, lineErr.Line)

	rec, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, rec.DocumentDate.Equal(time.Date(2017, 1, 3, 0, 0, 0, 0, time.UTC)))
}

func TestReader_Codepage(t *testing.T) {
	t.Parallel()

	body := "Updated: 2017-11-29 12:34:56 -0100\n" +
		";;;\xf2\xe5\xf1\xf2;;2017-01-02\n"

	r := mustReader(t, body)

	rec, err, ok := r.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "тест", rec.Organization)
}

func TestReader_CodepageInvalidByteFails(t *testing.T) {
	t.Parallel()

	body := "Updated: 2017-11-29 12:34:56 -0100\n" +
		";;;\x98;;2017-01-02\n"

	r := mustReader(t, body)

	_, err, ok := r.Next()
	require.Error(t, err)
	assert.True(t, ok)
}

func TestReader_EndOfStreamIsNotIOEOF(t *testing.T) {
	t.Parallel()

	r := mustReader(t, "Updated: 2017-11-29 12:34:56 -0100\n")

	_, err, ok := r.Next()
	require.False(t, ok)
	assert.NoError(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

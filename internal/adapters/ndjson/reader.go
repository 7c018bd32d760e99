// Package ndjson streams raw records from newline delimited JSON, gzip or plain
package ndjson

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"socialnorm/internal/platform/logger"

	"github.com/klauspost/compress/gzip"
)

const (
	// MaxLine caps one record, matching the HTTP body cap
	MaxLine    = 8 << 20
	sampleMax  = 512
	initialBuf = 64 << 10
)

var gzipMagic = []byte{0x1f, 0x8b}

// Record is one non-blank input line; Line is 1-based
type Record struct {
	Line int
	Raw  []byte
}

// Reader yields records in input order; Raw is a private copy
type Reader struct {
	r       io.Reader
	closer  io.Closer
	gz      *gzip.Reader
	sc      *bufio.Scanner
	err     error
	line    int
	records int
	bytes   int64
	sampled bool
}

// NewReader sniffs the gzip magic and inflates when present; closing the Reader
// closes r when it is an io.Closer
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{r: r}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}

	br := bufio.NewReader(r)
	src := io.Reader(br)
	if head, _ := br.Peek(2); bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			_ = rd.Close()
			return nil, err
		}
		rd.gz = gz
		src = gz
	}

	rd.sc = bufio.NewScanner(src)
	rd.sc.Buffer(make([]byte, 0, initialBuf), MaxLine)
	return rd, nil
}

// Next returns the next non-blank line, io.EOF when done
// Lines are not parsed here, a malformed record is the normalizer's call
func (rd *Reader) Next() (Record, error) {
	if rd.err != nil {
		return Record{}, rd.err
	}
	for {
		if !rd.sc.Scan() {
			if err := rd.sc.Err(); err != nil {
				rd.err = err
				return Record{}, err
			}
			rd.err = io.EOF
			return Record{}, io.EOF
		}
		rd.line++
		raw := bytes.TrimSpace(rd.sc.Bytes())
		rd.bytes += int64(len(rd.sc.Bytes()) + 1)
		if len(raw) == 0 {
			continue
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		rd.records++

		if !rd.sampled {
			rd.sampled = true
			logger.Named("ndjson").Debug().
				Int("line_bytes", len(cp)).
				Str("sample_raw", truncateUTF8(cp, sampleMax)).
				Msg("first record")
		}
		return Record{Line: rd.line, Raw: cp}, nil
	}
}

// Stats returns records yielded and uncompressed bytes scanned so far
func (rd *Reader) Stats() (records int, size int64) { return rd.records, rd.bytes }

// Close releases the gzip stream and the source
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		first = rd.gz.Close()
	}
	if rd.closer != nil {
		if err := rd.closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// truncateUTF8 cuts b to at most max bytes on a rune boundary, adding an ellipsis
func truncateUTF8(b []byte, max int) string {
	if max <= 0 || len(b) <= max {
		return string(b)
	}
	i := max
	for i > 0 && !utf8.RuneStart(b[i]) {
		i--
	}
	if i == 0 {
		i = max
	}
	return string(b[:i]) + "..."
}

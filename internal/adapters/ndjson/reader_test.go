package ndjson

import (
	"bytes"
	stderrs "errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func drain(t *testing.T, rd *Reader) []Record {
	t.Helper()
	var out []Record
	for {
		rec, err := rd.Next()
		if stderrs.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		out = append(out, rec)
	}
}

const input = "{\"a\":1}\n\n  \n  {\"b\":2}\nnot json\n"

func TestReader_Plain(t *testing.T) {
	rd, err := NewReader(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rd.Close() }()

	recs := drain(t, rd)
	if len(recs) != 3 {
		t.Fatalf("records = %+v", recs)
	}
	if recs[1].Line != 4 || string(recs[1].Raw) != `{"b":2}` || string(recs[2].Raw) != "not json" {
		t.Fatalf("records = %+v", recs)
	}
	if n, b := rd.Stats(); n != 3 || b != int64(len(input)) {
		t.Fatalf("stats = %d %d", n, b)
	}
	if _, err := rd.Next(); !stderrs.Is(err, io.EOF) {
		t.Fatalf("after EOF: %v", err)
	}
}

func TestReader_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(input))
	_ = zw.Close()

	rd, err := NewReader(io.NopCloser(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if recs := drain(t, rd); len(recs) != 3 || recs[0].Line != 1 {
		t.Fatalf("records = %+v", recs)
	}
	if err := rd.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReader_BrokenGzip(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x00})); err == nil {
		t.Fatal("truncated gzip header should fail")
	}
}

func TestTruncateUTF8(t *testing.T) {
	if got := truncateUTF8([]byte("héllo"), 2); got != "h..." {
		t.Fatalf("got %q", got)
	}
	if got := truncateUTF8([]byte("abc"), 10); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	perr "socialnorm/internal/platform/errors"
	pnet "socialnorm/internal/platform/net"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// DefaultMaxInflated caps the decoded size of a compressed request body
const DefaultMaxInflated int64 = 32 << 20

// Decompress transparently inflates request bodies sent with Content-Encoding
// gzip, deflate or zstd. Uncompressed bodies pass through untouched.
// Unknown encodings get 415, a body that fails to open gets 400,
// and the inflated stream is capped at maxInflated bytes (<=0 uses the default)
func Decompress(maxInflated int64) func(http.Handler) http.Handler {
	if maxInflated <= 0 {
		maxInflated = DefaultMaxInflated
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			enc := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
			if enc == "" || enc == "identity" || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			rc, err := inflater(enc, r.Body)
			if err != nil {
				writeEnvelope(w, r, err)
				return
			}
			defer func() { _ = rc.Close() }()

			r.Body = http.MaxBytesReader(w, rc, maxInflated)
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
			r.ContentLength = -1
			next.ServeHTTP(w, r)
		})
	}
}

func inflater(enc string, body io.Reader) (io.ReadCloser, error) {
	switch enc {
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(body)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "Invalid gzip body")
		}
		return zr, nil
	case "deflate":
		// HTTP deflate is the zlib format
		zr, err := zlib.NewReader(body)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "Invalid deflate body")
		}
		return zr, nil
	case "zstd":
		zr, err := zstd.NewReader(body)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "Invalid zstd body")
		}
		return zr.IOReadCloser(), nil
	default:
		return nil, perr.Newf(perr.ErrorCodeUnsupportedMedia, "unsupported content encoding %q", enc)
	}
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Package canonical defines the platform neutral document every normalizer emits
package canonical

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Type discriminates posts from comments
type Type string

// Known document types
const (
	TypePost    Type = "post"
	TypeComment Type = "comment"
)

// Valid reports whether t is one of the known document types
func (t Type) Valid() bool { return t == TypePost || t == TypeComment }

// Platform names the upstream source of a document
type Platform string

// Known platforms
const (
	PlatformBluesky Platform = "bluesky"
	PlatformReddit  Platform = "reddit"
)

// Platforms lists every supported platform in a stable order
func Platforms() []Platform { return []Platform{PlatformBluesky, PlatformReddit} }

// ParsePlatform maps a routing value onto a Platform, ok=false when unknown
func ParsePlatform(s string) (Platform, bool) {
	switch p := Platform(strings.TrimSpace(s)); p {
	case PlatformBluesky, PlatformReddit:
		return p, true
	default:
		return "", false
	}
}

// Reddit id namespaces, Bluesky cids are globally unique and stay unprefixed
const (
	RedditPostPrefix    = "reddit_post_"
	RedditCommentPrefix = "reddit_comment_"
)

// Document is the canonical post or comment
// Field order is the wire order. Source valued fields hold raw JSON so a value is
// emitted exactly as the platform sent it; empty raw values are omitted so a missing
// source field stays missing instead of turning into a zero value
type Document struct {
	Type        Type            `json:"type"`
	ID          string          `json:"id"`
	Title       json.RawMessage `json:"title,omitempty"`
	Platform    Platform        `json:"platform,omitempty"`
	PostID      *string         `json:"post_id,omitempty"`
	Content     json.RawMessage `json:"content,omitempty"`
	CreatedUTC  json.RawMessage `json:"created_utc,omitempty"`
	Author      json.RawMessage `json:"author,omitempty"`
	NumComments json.RawMessage `json:"num_comments,omitempty"`
	Like        json.RawMessage `json:"like,omitempty"`
}

// Encode renders d as 2-space indented JSON, the response body format
// HTML characters are left as-is so text content round-trips byte for byte
func (d Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// IndexName is the downstream index for d, e.g. reddit_posts or bluesky_comments
// platform is passed in because Bluesky comments do not carry one
func (d Document) IndexName(platform Platform) string {
	return string(platform) + "_" + string(d.Type) + "s"
}

// Key is the downstream document key "<id>-<created_utc>"
// numeric timestamps contribute their integer part, strings are used unquoted
func (d Document) Key() string {
	ts := timestampText(d.CreatedUTC)
	if ts == "" {
		return d.ID
	}
	return d.ID + "-" + ts
}

func timestampText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return ""
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return strconv.FormatInt(int64(f), 10)
	}
	return string(raw)
}

// String returns a pointer to s, used when building documents
func String(s string) *string { return &s }

// Text encodes s as a JSON string; HTML characters are not escaped
func Text(s string) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// Count encodes n as a JSON number
func Count(n int64) json.RawMessage { return strconv.AppendInt(nil, n, 10) }

// Timestamp wraps a string timestamp as raw JSON
func Timestamp(s string) json.RawMessage { return Text(s) }

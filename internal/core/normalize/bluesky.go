package normalize

import (
	"context"
	"encoding/json"
	"slices"

	"socialnorm/internal/core/canonical"

	"github.com/tidwall/gjson"
)

// Bluesky defaults; unknownAuthor ends the author fallback chain
var (
	unknownAuthor = canonical.Text("Unknown")
	emptyText     = canonical.Text("")
	zeroCount     = canonical.Count(0)
)

// Bluesky normalizes feed view records (posts and replies)
// Every text and numeric field is defaulted, so output shape depends only on type
// Truthy source values pass through verbatim
type Bluesky struct {
	obs Observer
}

var _ Normalizer = (*Bluesky)(nil)

// NewBluesky constructs the Bluesky strategy
func NewBluesky(opts ...Option) *Bluesky {
	o := buildOptions(opts)
	return &Bluesky{obs: o.observer}
}

// Platform implements Normalizer
func (*Bluesky) Platform() canonical.Platform { return canonical.PlatformBluesky }

// Normalize implements Normalizer
func (b *Bluesky) Normalize(ctx context.Context, body []byte) (canonical.Document, error) {
	root, err := parseObject(body)
	if err != nil {
		return canonical.Document{}, err
	}

	typ, got := discriminator(root)
	var doc canonical.Document
	switch typ {
	case canonical.TypeComment:
		doc = canonical.Document{
			Type:       canonical.TypeComment,
			ID:         root.Get("cid").String(),
			PostID:     optString(root.Get("post_id")),
			Content:    rawOr(root.Get("record.text"), emptyText),
			CreatedUTC: rawOr(root.Get("record.createdAt"), emptyText),
			Author:     blueskyAuthor(root.Get("author")),
			Like:       rawOr(root.Get("likeCount"), zeroCount),
		}
	case canonical.TypePost:
		doc = canonical.Document{
			Type:        canonical.TypePost,
			ID:          root.Get("cid").String(),
			Title:       slices.Clone(emptyText),
			Platform:    canonical.PlatformBluesky,
			Content:     rawOr(root.Get("record.text"), emptyText),
			CreatedUTC:  rawOr(root.Get("record.createdAt"), emptyText),
			Author:      blueskyAuthor(root.Get("author")),
			NumComments: rawOr(root.Get("replyCount"), zeroCount),
			Like:        rawOr(root.Get("likeCount"), zeroCount),
		}
	default:
		return canonical.Document{}, canonical.UnsupportedType(got)
	}

	b.obs.Observe(ctx, Diagnostic{Platform: canonical.PlatformBluesky, Type: typ, Count: 1})
	return doc, nil
}

// blueskyAuthor walks displayName, handle, then Unknown
// a missing or null author object lands on Unknown too
func blueskyAuthor(author gjson.Result) json.RawMessage {
	if !truthy(author) {
		return slices.Clone(unknownAuthor)
	}
	if name := author.Get("displayName"); truthy(name) {
		return json.RawMessage(name.Raw)
	}
	return rawOr(author.Get("handle"), unknownAuthor)
}

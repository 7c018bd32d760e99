package normalize

import (
	"context"
	stderrs "errors"

	"socialnorm/internal/core/canonical"
)

var errNoData = stderrs.New(`envelope has no "data" object`)

// Reddit normalizes harvester envelopes {type, query, subreddit, data}
// Source fields are passed through without defaults: a field missing from data is
// missing from the document
type Reddit struct {
	obs Observer
}

var _ Normalizer = (*Reddit)(nil)

// NewReddit constructs the Reddit strategy
func NewReddit(opts ...Option) *Reddit {
	o := buildOptions(opts)
	return &Reddit{obs: o.observer}
}

// Platform implements Normalizer
func (*Reddit) Platform() canonical.Platform { return canonical.PlatformReddit }

// Normalize implements Normalizer
func (r *Reddit) Normalize(ctx context.Context, body []byte) (canonical.Document, error) {
	root, err := parseObject(body)
	if err != nil {
		return canonical.Document{}, err
	}

	typ, got := discriminator(root)
	if !typ.Valid() {
		return canonical.Document{}, canonical.UnknownType(got)
	}

	data := root.Get("data")
	if !data.IsObject() {
		return canonical.Document{}, canonical.MalformedInput(errNoData)
	}

	var doc canonical.Document
	switch typ {
	case canonical.TypePost:
		doc = canonical.Document{
			Type:        canonical.TypePost,
			ID:          canonical.RedditPostPrefix + data.Get("id").String(),
			Title:       passRaw(data.Get("title")),
			Platform:    canonical.PlatformReddit,
			Content:     passRaw(data.Get("content")),
			CreatedUTC:  passRaw(data.Get("created_utc")),
			Author:      passRaw(data.Get("author")),
			NumComments: passRaw(data.Get("num_comments")),
			Like:        passRaw(data.Get("score")),
		}
	case canonical.TypeComment:
		doc = canonical.Document{
			Type:       canonical.TypeComment,
			ID:         canonical.RedditCommentPrefix + data.Get("id").String(),
			Platform:   canonical.PlatformReddit,
			PostID:     canonical.String(canonical.RedditPostPrefix + data.Get("post_id").String()),
			Content:    passRaw(data.Get("body")),
			CreatedUTC: passRaw(data.Get("created_utc")),
			Author:     passRaw(data.Get("author")),
			Like:       passRaw(data.Get("score")),
		}
	}

	r.obs.Observe(ctx, Diagnostic{
		Platform:  canonical.PlatformReddit,
		Type:      typ,
		Subreddit: root.Get("subreddit").String(),
		Query:     root.Get("query").String(),
		Count:     1,
	})
	return doc, nil
}

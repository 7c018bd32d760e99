package normalize

import (
	"encoding/json"
	stderrs "errors"
	"slices"

	"socialnorm/internal/core/canonical"

	"github.com/tidwall/gjson"
)

var errNotObject = stderrs.New("body is not a JSON object")

// parseObject accepts only a well formed JSON object
func parseObject(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, canonical.MalformedInput(nil)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return gjson.Result{}, canonical.MalformedInput(errNotObject)
	}
	return root, nil
}

// discriminator reads "type"; only the exact strings post and comment are recognised
// got is the value echoed back in type errors; a missing type reads as undefined
func discriminator(root gjson.Result) (t canonical.Type, got string) {
	r := root.Get("type")
	switch {
	case !r.Exists():
		return "", "undefined"
	case r.Type == gjson.Null:
		return "", "null"
	case r.Type == gjson.String:
		if ct := canonical.Type(r.Str); ct.Valid() {
			return ct, r.Str
		}
		return "", r.Str
	}
	return "", r.Raw
}

// truthy follows loose scripting semantics:
// missing, null, false, 0 and "" are false, everything else is true
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}

// rawOr passes r through verbatim when truthy, else def
func rawOr(r gjson.Result, def json.RawMessage) json.RawMessage {
	if truthy(r) {
		return json.RawMessage(r.Raw)
	}
	return slices.Clone(def)
}

// optString passes a present value through as text, nil when missing or null
func optString(r gjson.Result) *string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return canonical.String(r.String())
}

// passRaw passes a present value through byte for byte, nil when missing or null
func passRaw(r gjson.Result) json.RawMessage {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(r.Raw)
}

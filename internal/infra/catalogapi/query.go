package catalogapi

import (
	"net/url"
	"strconv"
	"strings"
)

// Tag names a family of cached entries that a mutation can invalidate.
type Tag string

const (
	TagProducts   Tag = "Products"
	TagCategories Tag = "Categories"
	TagArticles   Tag = "Articles"
	TagContact    Tag = "Contact"
)

// ParseTag maps a tag name, case-insensitively, to a known Tag.
func ParseTag(s string) (Tag, bool) {
	for _, t := range AllTags() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// AllTags lists every tag the client attaches to cache entries.
func AllTags() []Tag {
	return []Tag{TagProducts, TagCategories, TagArticles, TagContact}
}

// Query carries the list parameters the API recognises. Zero values are
// omitted from the request.
type Query struct {
	Page     int
	Limit    int
	Category string
}

// Values builds the canonical query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		v.Set("category", c)
	}
	return v
}

// Signature is the canonical, order-independent encoding of q. Two queries
// with the same effective parameters share a signature.
func (q Query) Signature() string {
	// url.Values.Encode sorts by key.
	return q.Values().Encode()
}

// CacheKey identifies a cached response for resource and query.
func CacheKey(resource string, q Query) string {
	sig := q.Signature()
	if sig == "" {
		return resource
	}
	return resource + "?" + sig
}

// Package query builds the read pipelines used by the repositories: pagination,
// reduced-projection joins and the grouped history and recommendation queries.
package query

import (
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is the page size used when the client does not send a valid one.
	DefaultLimit int64 = 20
	// MaxLimit caps the page size a client can ask for.
	MaxLimit int64 = 100
	// MaxSkip is the largest offset $skip and $slice accept.
	MaxSkip int64 = math.MaxInt32
)

// Page is a 1-indexed window over an ordered result set.
type Page struct {
	Number int64
	Limit  int64
}

// ParsePage reads the page and limit query parameters. Non-numeric or
// non-positive values fall back to page 1 and DefaultLimit; limits above
// MaxLimit are capped.
func ParsePage(page, limit string) Page {
	n, err := strconv.ParseInt(page, 10, 64)
	if err != nil || n < 1 {
		n = 1
	}
	l, err := strconv.ParseInt(limit, 10, 64)
	if err != nil || l < 1 {
		l = DefaultLimit
	}
	if l > MaxLimit {
		l = MaxLimit
	}
	return Page{Number: n, Limit: l}
}

// OutOfRange reports whether the page starts beyond MaxSkip, or is not a
// valid page at all. Such a page is always empty and must not be sent to the
// database.
func (p Page) OutOfRange() bool {
	if p.Number < 1 || p.Limit < 1 || p.Limit > MaxSkip {
		return true
	}
	return p.Number-1 > MaxSkip/p.Limit
}

// Skip returns how many records precede the page, clamped to MaxSkip.
func (p Page) Skip() int64 {
	if p.OutOfRange() {
		return MaxSkip
	}
	return (p.Number - 1) * p.Limit
}

// FindOptions returns newest-first find options for the page. _id breaks ties
// so consecutive pages never overlap.
func FindOptions(p Page, sortField string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit)
}

// SliceNewestFirst is a $slice expression over an array relation whose newest
// element is the last one. A window past the end yields an empty array.
func SliceNewestFirst(field string, p Page) bson.D {
	return bson.D{{Key: "$slice", Value: bson.A{
		bson.D{{Key: "$reverseArray", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, bson.A{}}}}}},
		p.Skip(),
		p.Limit,
	}}}
}

// Slice is a $slice expression over an array that is already stored newest first.
func Slice(field string, p Page) bson.D {
	return bson.D{{Key: "$slice", Value: bson.A{
		bson.D{{Key: "$ifNull", Value: bson.A{"$" + field, bson.A{}}}},
		p.Skip(),
		p.Limit,
	}}}
}

// Paginate returns the $skip and $limit stages for the page.
func Paginate(p Page) []bson.D {
	return []bson.D{
		{{Key: "$skip", Value: p.Skip()}},
		{{Key: "$limit", Value: p.Limit}},
	}
}

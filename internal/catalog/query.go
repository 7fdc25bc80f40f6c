package catalog

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// QueryMode selects between the two search sub-modes. Which one applies is
// decided by which input the user filled in.
type QueryMode string

const (
	// QueryKeyword searches the catalog by free-text keyword.
	QueryKeyword QueryMode = "keyword"
	// QueryURL extracts item information from a product page URL.
	QueryURL QueryMode = "url"
)

// Query is one search submission.
type Query struct {
	Mode    QueryMode
	Keyword string
	Filter  PriceFilter
}

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// NewKeywordQuery builds a keyword-mode query with price bounds.
func NewKeywordQuery(keyword string, filter PriceFilter) Query {
	return Query{Mode: QueryKeyword, Keyword: keyword, Filter: filter}
}

// NewURLQuery builds a URL-mode query, extracting the first URL found in
// the input text. Pasted text around the URL is discarded. URL mode carries
// no price bounds.
func NewURLQuery(input string) (Query, bool) {
	match := urlPattern.FindString(input)
	if match == "" {
		return Query{}, false
	}
	return Query{Mode: QueryURL, Keyword: match}, true
}

// wireKeyword is the normalized keyword actually sent to the backend.
// Keyword text gets full-width characters folded to their half-width forms
// so the same query matches regardless of input method; URLs pass through
// untouched.
func (q Query) wireKeyword() string {
	if q.Mode == QueryURL {
		return q.Keyword
	}
	return NormalizeKeyword(q.Keyword)
}

// NormalizeKeyword trims and width-folds a search keyword.
func NormalizeKeyword(keyword string) string {
	return strings.TrimSpace(width.Fold.String(keyword))
}

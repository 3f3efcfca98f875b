package api

import (
	"net/url"
	"strconv"
)

// ArticleFilters narrows an article listing. Zero-valued fields are omitted
// from the query string entirely.
type ArticleFilters struct {
	Category string
	Search   string
	Limit    int
	FromDate string
	ToDate   string
}

// Values encodes the filters using the backend's parameter names.
func (f ArticleFilters) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.FromDate != "" {
		v.Set("fromDate", f.FromDate)
	}
	if f.ToDate != "" {
		v.Set("toDate", f.ToDate)
	}
	return v
}

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultSearchLimit is used by ArticlesService.Search when limit is not positive.
const DefaultSearchLimit = 10

// ArticlesService covers /api/articles.
type ArticlesService struct{ c *Client }

// List returns articles matching f.
func (s *ArticlesService) List(ctx context.Context, f ArticleFilters) (*ArticlesResponse, error) {
	var out ArticlesResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles",
		Path:   "/api/articles",
		Query:  f.Values(),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single article by id.
func (s *ArticlesService) Get(ctx context.Context, id int64) (*Article, error) {
	const route = "/api/articles/{id}"
	if id <= 0 {
		return nil, validationError(route, "article id must be positive")
	}
	var out ArticleResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  route,
		Path:   "/api/articles/" + strconv.FormatInt(id, 10),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Article, nil
}

// Search runs a keyword search over stored articles.
func (s *ArticlesService) Search(ctx context.Context, q string, limit int) (*ArticlesResponse, error) {
	const route = "/api/articles/search"
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, validationError(route, "Please enter a search term")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	var out ArticlesResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  route,
		Path:   route,
		Query:  url.Values{"q": {q}, "limit": {strconv.Itoa(limit)}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns corpus statistics.
func (s *ArticlesService) Stats(ctx context.Context) (*Statistics, error) {
	var out StatisticsResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/stats",
		Path:   "/api/articles/stats",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Statistics, nil
}

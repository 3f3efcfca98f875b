package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultTopK          = 10
	DefaultThreshold     = 0.7
	DefaultTrendingDays  = 7
	DefaultTrendingTopN  = 10
	emptyQuestionMessage = "Please enter a question"
)

// QueryService covers the AI endpoints: question answering, summaries,
// trending topics and example questions.
type QueryService struct{ c *Client }

// Ask submits a natural-language question. A blank question never reaches
// the network.
func (s *QueryService) Ask(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	const route = "/api/query"
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		return nil, validationError(route, emptyQuestionMessage)
	}
	if !req.Provider.Valid() {
		return nil, validationError(route, fmt.Sprintf("unknown provider %q", req.Provider))
	}
	if req.TopK <= 0 {
		req.TopK = DefaultTopK
	}
	if req.Threshold <= 0 {
		req.Threshold = DefaultThreshold
	}
	var out QueryResponse
	err := s.c.Do(ctx, Request{Method: http.MethodPost, Route: route, Path: route, Body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Summarize asks the backend for a summary of recent coverage.
func (s *QueryService) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	const route = "/api/summarize"
	if !req.Timeframe.Valid() {
		return nil, validationError(route, fmt.Sprintf("unknown timeframe %q", req.Timeframe))
	}
	if !req.Provider.Valid() {
		return nil, validationError(route, fmt.Sprintf("unknown provider %q", req.Provider))
	}
	var out SummarizeResponse
	err := s.c.Do(ctx, Request{Method: http.MethodPost, Route: route, Path: route, Body: req}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Trending lists the top topics over the last days. Non-positive arguments
// fall back to 7 days and 10 topics.
func (s *QueryService) Trending(ctx context.Context, days, topN int) (*TrendingResponse, error) {
	const route = "/api/trending"
	if days <= 0 {
		days = DefaultTrendingDays
	}
	if topN <= 0 {
		topN = DefaultTrendingTopN
	}
	var out TrendingResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  route,
		Path:   route,
		Query:  url.Values{"days": {strconv.Itoa(days)}, "topN": {strconv.Itoa(topN)}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Examples returns suggested questions grouped by category.
func (s *QueryService) Examples(ctx context.Context) (*ExamplesResponse, error) {
	var out ExamplesResponse
	err := s.c.Do(ctx, Request{Method: http.MethodGet, Route: "/api/examples", Path: "/api/examples"}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

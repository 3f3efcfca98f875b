package api

import (
	"context"
	"net/http"
	"strings"
)

// DefaultFetchSource is sent by FetchTopic when no source is given.
const DefaultFetchSource = "all"

// NewsService covers collection control under /api/news.
type NewsService struct{ c *Client }

// Collect triggers a collection run. It is not idempotent: every call starts
// a run on the backend. Empty topics sends an empty object.
func (s *NewsService) Collect(ctx context.Context, topics []string) (*CollectionResponse, error) {
	const route = "/api/news/collect"
	var out CollectionResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  route,
		Path:   route,
		Body:   CollectionRequest{Topics: topics},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Status reports whether a collection run is in progress.
func (s *NewsService) Status(ctx context.Context) (*CollectionStatus, error) {
	const route = "/api/news/status"
	var out CollectionStatus
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Route: route, Path: route}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTopic asks the backend to pull articles for a single topic.
func (s *NewsService) FetchTopic(ctx context.Context, topic, source string) (*CollectionResponse, error) {
	const route = "/api/news/fetch-topic"
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, validationError(route, "Please enter a topic")
	}
	if source == "" {
		source = DefaultFetchSource
	}
	var out CollectionResponse
	err := s.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  route,
		Path:   route,
		Body:   FetchTopicRequest{Topic: topic, Source: source},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

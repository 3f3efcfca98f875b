package api

import (
	"context"
	"net/http"
)

// HealthService covers the liveness endpoint.
type HealthService struct{ c *Client }

// Check calls GET /health.
func (s *HealthService) Check(ctx context.Context) (*Health, error) {
	var out Health
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Route: "/health", Path: "/health"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

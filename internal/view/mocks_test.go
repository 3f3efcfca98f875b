package view

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/matheuskafuri/newsassist/internal/api"
)

type MockArticleLister struct {
	mock.Mock
}

func (m *MockArticleLister) List(ctx context.Context, f api.ArticleFilters) (*api.ArticlesResponse, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ArticlesResponse), args.Error(1)
}

type MockAsker struct {
	mock.Mock
}

func (m *MockAsker) Ask(ctx context.Context, req api.QueryRequest) (*api.QueryResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.QueryResponse), args.Error(1)
}

func (m *MockAsker) Examples(ctx context.Context) (*api.ExamplesResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ExamplesResponse), args.Error(1)
}

type MockTrendingSource struct {
	mock.Mock
}

func (m *MockTrendingSource) Trending(ctx context.Context, days, topN int) (*api.TrendingResponse, error) {
	args := m.Called(ctx, days, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TrendingResponse), args.Error(1)
}

type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Collect(ctx context.Context, topics []string) (*api.CollectionResponse, error) {
	args := m.Called(ctx, topics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CollectionResponse), args.Error(1)
}

func (m *MockCollectionService) Status(ctx context.Context) (*api.CollectionStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CollectionStatus), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, req api.SummarizeRequest) (*api.SummarizeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SummarizeResponse), args.Error(1)
}

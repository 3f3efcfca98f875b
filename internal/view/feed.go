package view

import (
	"context"
	"strings"
	"sync"

	"github.com/matheuskafuri/newsassist/internal/api"
)

// AllCategories is the category choice that sends no category filter.
const AllCategories = "All Categories"

// DefaultFeedLimit is the page size of the feed.
const DefaultFeedLimit = 50

// DefaultCategories are offered when configuration names none.
var DefaultCategories = []string{
	"Technology", "Business", "Sports", "Health", "Entertainment", "Science", "Politics",
}

// ArticleLister lists articles. *api.ArticlesService satisfies it.
type ArticleLister interface {
	List(ctx context.Context, f api.ArticleFilters) (*api.ArticlesResponse, error)
}

// Feed is the browsable article list.
type Feed struct {
	svc   ArticleLister
	limit int

	Articles Result[[]api.Article]

	mu       sync.Mutex
	search   string
	category string
}

// NewFeed returns a feed showing all categories. A non-positive limit uses
// DefaultFeedLimit.
func NewFeed(svc ArticleLister, limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{svc: svc, limit: limit, category: AllCategories}
}

func (f *Feed) SetSearch(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search = s
}

func (f *Feed) Search() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.search
}

// SetCategory selects a category; "" is treated as AllCategories.
func (f *Feed) SetCategory(c string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c == "" {
		c = AllCategories
	}
	f.category = c
}

func (f *Feed) Category() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.category
}

// Filters builds the listing filters from the current inputs.
func (f *Feed) Filters() api.ArticleFilters {
	f.mu.Lock()
	defer f.mu.Unlock()
	filters := api.ArticleFilters{
		Search: strings.TrimSpace(f.search),
		Limit:  f.limit,
	}
	if f.category != AllCategories {
		filters.Category = f.category
	}
	return filters
}

// Start begins a load with the current filters.
func (f *Feed) Start(ctx context.Context) Pending[[]api.Article] {
	filters := f.Filters()
	return f.Articles.Start(ctx, func(ctx context.Context) ([]api.Article, error) {
		resp, err := f.svc.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		return resp.Articles, nil
	})
}

// Load fetches the feed and blocks until it is applied.
func (f *Feed) Load(ctx context.Context) State[[]api.Article] {
	f.Articles.Finish(f.Start(ctx).Execute())
	return f.Articles.State()
}

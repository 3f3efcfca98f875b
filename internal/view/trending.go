package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/matheuskafuri/newsassist/internal/api"
)

// TopicArticleLimit caps the drill-in article list.
const TopicArticleLimit = 50

// TrendingSource lists trending topics. *api.QueryService satisfies it.
type TrendingSource interface {
	Trending(ctx context.Context, days, topN int) (*api.TrendingResponse, error)
}

// Trending is the trending-topics dashboard with an optional drill-in on one
// topic.
type Trending struct {
	svc      TrendingSource
	articles ArticleLister
	days     int
	topN     int

	Topics        Result[[]api.TrendingTopic]
	TopicArticles Result[[]api.Article]

	mu       sync.Mutex
	selected string
}

// NewTrending returns a dashboard over the given window. Non-positive values
// use 7 days and 10 topics.
func NewTrending(svc TrendingSource, articles ArticleLister, days, topN int) *Trending {
	if days <= 0 {
		days = api.DefaultTrendingDays
	}
	if topN <= 0 {
		topN = api.DefaultTrendingTopN
	}
	return &Trending{svc: svc, articles: articles, days: days, topN: topN}
}

func (t *Trending) Window() (days, topN int) {
	return t.days, t.topN
}

func (t *Trending) Start(ctx context.Context) Pending[[]api.TrendingTopic] {
	days, topN := t.days, t.topN
	return t.Topics.Start(ctx, func(ctx context.Context) ([]api.TrendingTopic, error) {
		resp, err := t.svc.Trending(ctx, days, topN)
		if err != nil {
			return nil, err
		}
		return resp.Topics, nil
	})
}

// Load fetches topics and blocks until they are applied.
func (t *Trending) Load(ctx context.Context) State[[]api.TrendingTopic] {
	t.Topics.Finish(t.Start(ctx).Execute())
	return t.Topics.State()
}

// Select opens the drill-in for topic and begins loading its articles.
func (t *Trending) Select(ctx context.Context, topic string) Pending[[]api.Article] {
	t.mu.Lock()
	t.selected = topic
	t.mu.Unlock()

	filters := api.ArticleFilters{Search: topic, Limit: TopicArticleLimit}
	return t.TopicArticles.Start(ctx, func(ctx context.Context) ([]api.Article, error) {
		resp, err := t.articles.List(ctx, filters)
		if err != nil {
			return nil, err
		}
		return resp.Articles, nil
	})
}

// Selected returns the open topic, or "" when the drill-in is closed.
func (t *Trending) Selected() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selected
}

// CloseTopic discards the drill-in state.
func (t *Trending) CloseTopic() {
	t.mu.Lock()
	t.selected = ""
	t.mu.Unlock()
	t.TopicArticles.Reset()
}

// RankLabel is the display rank for a zero-based position.
func RankLabel(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", i+1)
	}
}

// ScorePercent renders a trend score in [0,1] as a percentage with one decimal.
func ScorePercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// Band buckets a trend score for coloring.
type Band int

const (
	BandLow Band = iota
	BandModerate
	BandHigh
	BandHot
)

// ScoreBand buckets score at 0.8, 0.6 and 0.4.
func ScoreBand(score float64) Band {
	switch {
	case score >= 0.8:
		return BandHot
	case score >= 0.6:
		return BandHigh
	case score >= 0.4:
		return BandModerate
	default:
		return BandLow
	}
}

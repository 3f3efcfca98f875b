package view

import (
	"context"
	"sync"

	"github.com/matheuskafuri/newsassist/internal/api"
)

// Summarizer produces coverage summaries. *api.QueryService satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, req api.SummarizeRequest) (*api.SummarizeResponse, error)
}

// Briefing is a summary of recent coverage for one category.
type Briefing struct {
	svc Summarizer

	Summary Result[*api.SummarizeResponse]

	mu        sync.Mutex
	category  string
	timeframe api.Timeframe
	provider  api.Provider
}

func NewBriefing(svc Summarizer, provider api.Provider) *Briefing {
	if provider == "" {
		provider = DefaultProvider
	}
	return &Briefing{svc: svc, category: AllCategories, timeframe: api.TimeframeToday, provider: provider}
}

// Configure sets the category and timeframe for the next Start.
func (b *Briefing) Configure(category string, timeframe api.Timeframe) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if category == "" {
		category = AllCategories
	}
	if timeframe == "" {
		timeframe = api.TimeframeToday
	}
	b.category = category
	b.timeframe = timeframe
}

func (b *Briefing) Category() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.category
}

func (b *Briefing) Timeframe() api.Timeframe {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.timeframe
}

// NextTimeframe cycles today, week, month.
func (b *Briefing) NextTimeframe() api.Timeframe {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.timeframe {
	case api.TimeframeToday:
		b.timeframe = api.TimeframeWeek
	case api.TimeframeWeek:
		b.timeframe = api.TimeframeMonth
	default:
		b.timeframe = api.TimeframeToday
	}
	return b.timeframe
}

func (b *Briefing) Start(ctx context.Context) Pending[*api.SummarizeResponse] {
	b.mu.Lock()
	req := api.SummarizeRequest{Timeframe: b.timeframe, Provider: b.provider}
	if b.category != AllCategories {
		req.Category = b.category
	}
	b.mu.Unlock()

	return b.Summary.Start(ctx, func(ctx context.Context) (*api.SummarizeResponse, error) {
		return b.svc.Summarize(ctx, req)
	})
}

// Load summarizes and blocks until the result is applied.
func (b *Briefing) Load(ctx context.Context) State[*api.SummarizeResponse] {
	b.Summary.Finish(b.Start(ctx).Execute())
	return b.Summary.State()
}

package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/newsassist/internal/api"
)

func TestTrendingEmpty(t *testing.T) {
	svc := new(MockTrendingSource)
	svc.On("Trending", mock.Anything, 7, 10).Return(&api.TrendingResponse{
		Envelope: api.Envelope{Success: true},
		Topics:   []api.TrendingTopic{},
	}, nil)

	tr := NewTrending(svc, new(MockArticleLister), 0, 0)
	st := tr.Load(context.Background())
	assert.Equal(t, Succeeded, st.Status)
	assert.Empty(t, st.Data)
	svc.AssertExpectations(t)
}

func TestTrendingWindow(t *testing.T) {
	tr := NewTrending(new(MockTrendingSource), new(MockArticleLister), 30, 5)
	days, topN := tr.Window()
	assert.Equal(t, 30, days)
	assert.Equal(t, 5, topN)
}

func TestTrendingSelectAndClose(t *testing.T) {
	articles := new(MockArticleLister)
	articles.On("List", mock.Anything, api.ArticleFilters{Search: "AI", Limit: 50}).Return(&api.ArticlesResponse{
		Envelope: api.Envelope{Success: true},
		Articles: []api.Article{{ID: 9, Title: "AI everywhere"}},
	}, nil)

	tr := NewTrending(new(MockTrendingSource), articles, 7, 10)
	p := tr.Select(context.Background(), "AI")
	assert.Equal(t, "AI", tr.Selected())
	assert.True(t, tr.TopicArticles.State().Loading())

	require.True(t, tr.TopicArticles.Finish(p.Execute()))
	assert.Len(t, tr.TopicArticles.State().Data, 1)

	tr.CloseTopic()
	assert.Empty(t, tr.Selected())
	assert.Equal(t, Idle, tr.TopicArticles.State().Status)
	articles.AssertExpectations(t)
}

func TestTrendingCloseDiscardsInFlightDrillIn(t *testing.T) {
	articles := new(MockArticleLister)
	articles.On("List", mock.Anything, mock.Anything).Return(&api.ArticlesResponse{Envelope: api.Envelope{Success: true}}, nil)

	tr := NewTrending(new(MockTrendingSource), articles, 7, 10)
	p := tr.Select(context.Background(), "AI")
	tr.CloseTopic()
	assert.False(t, tr.TopicArticles.Finish(p.Execute()))
	assert.Equal(t, Idle, tr.TopicArticles.State().Status)
}

func TestRankLabel(t *testing.T) {
	assert.Equal(t, "🥇", RankLabel(0))
	assert.Equal(t, "🥈", RankLabel(1))
	assert.Equal(t, "🥉", RankLabel(2))
	assert.Equal(t, "#4", RankLabel(3))
	assert.Equal(t, "#10", RankLabel(9))
}

func TestScorePercentAndBand(t *testing.T) {
	tests := []struct {
		score   float64
		percent string
		band    Band
	}{
		{0.853, "85.3%", BandHot},
		{0.8, "80.0%", BandHot},
		{0.65, "65.0%", BandHigh},
		{0.4, "40.0%", BandModerate},
		{0.123, "12.3%", BandLow},
		{0, "0.0%", BandLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.percent, ScorePercent(tt.score))
		assert.Equal(t, tt.band, ScoreBand(tt.score), tt.score)
	}
}

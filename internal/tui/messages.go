package tui

import (
	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/view"
)

// Each *Msg carries the outcome of one started request back to Update, where
// the owning Result decides whether it is still current.

type feedLoadedMsg struct {
	out view.Outcome[[]api.Article]
}

type answerMsg struct {
	out view.Outcome[*api.QueryResponse]
}

type examplesLoadedMsg struct{}

type trendingLoadedMsg struct {
	out view.Outcome[[]api.TrendingTopic]
}

type topicArticlesMsg struct {
	out view.Outcome[[]api.Article]
}

type briefingLoadedMsg struct {
	out view.Outcome[*api.SummarizeResponse]
}

type collectDoneMsg struct {
	out view.Outcome[*api.CollectionResponse]
}

type collectIdleMsg struct {
	err error
}

type healthMsg struct {
	health *api.Health
	err    error
}

type openErrMsg struct {
	err error
}

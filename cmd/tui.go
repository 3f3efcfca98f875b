package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/browser"
	"github.com/matheuskafuri/newsassist/internal/tui"
	"github.com/matheuskafuri/newsassist/internal/view"
)

var flagPollInterval time.Duration

func init() {
	rootCmd.Flags().DurationVar(&flagPollInterval, "poll-interval", view.DefaultPollInterval, "how often to check a running collection")
}

func runTUI(cmd *cobra.Command, startInFeed bool) error {
	days, topN := cfg.TrendingWindow()
	err := tui.Run(tui.Options{
		Feed: view.NewFeed(client.Articles, cfg.FeedLimit()),
		Search: view.NewSearch(client.Query, logger, view.SearchOptions{
			Provider:  api.Provider(cfg.Search.Provider),
			TopK:      cfg.Search.TopK,
			Threshold: cfg.Search.Threshold,
		}),
		Trending:     view.NewTrending(client.Query, client.Articles, days, topN),
		Collector:    view.NewCollector(client.News),
		Briefing:     view.NewBriefing(client.Query, api.Provider(cfg.Search.Provider)),
		Health:       client.Health,
		BaseURL:      client.BaseURL(),
		Categories:   cfg.Feed.Categories,
		Opener:       browser.System,
		Logger:       logger,
		PollInterval: flagPollInterval,
		StartInFeed:  startInFeed,
	})
	if err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/output"
	"github.com/matheuskafuri/newsassist/internal/textutil"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the news service",
	Args:  exactArgs(0),
	RunE:  runHealth,
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Service health, statistics, trending topics and latest headlines at once",
	Args:  exactArgs(0),
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(healthCmd, overviewCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	h, err := client.Health.Check(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(h)
	}
	printHealth(h)
	return nil
}

func printHealth(h *api.Health) {
	printer.Print("%s %s", printer.StatusBadge(h.Status == "ok" || h.Status == "healthy", h.Status), client.BaseURL())
	if h.Environment != "" {
		printer.Print("Environment: %s", h.Environment)
	}
	if h.Timestamp != "" {
		printer.Print("Timestamp:   %s", h.Timestamp)
	}
}

// overview is the combined result of the overview command.
type overview struct {
	Health     *api.Health           `json:"health"`
	Collection *api.CollectionStatus `json:"collection"`
	Statistics *api.Statistics       `json:"statistics"`
	Trending   []api.TrendingTopic   `json:"trending"`
	Latest     []api.Article         `json:"latest"`
}

const overviewHeadlines = 5

func runOverview(cmd *cobra.Command, args []string) error {
	days, topN := cfg.TrendingWindow()
	var ov overview

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		h, err := client.Health.Check(ctx)
		if err != nil {
			return fmt.Errorf("health: %w", err)
		}
		ov.Health = h
		return nil
	})
	g.Go(func() error {
		st, err := client.News.Status(ctx)
		if err != nil {
			return fmt.Errorf("collection status: %w", err)
		}
		ov.Collection = st
		return nil
	})
	g.Go(func() error {
		stats, err := client.Articles.Stats(ctx)
		if err != nil {
			return fmt.Errorf("statistics: %w", err)
		}
		ov.Statistics = stats
		return nil
	})
	g.Go(func() error {
		resp, err := client.Query.Trending(ctx, days, topN)
		if err != nil {
			return fmt.Errorf("trending: %w", err)
		}
		ov.Trending = resp.Topics
		return nil
	})
	g.Go(func() error {
		resp, err := client.Articles.List(ctx, api.ArticleFilters{Limit: overviewHeadlines})
		if err != nil {
			return fmt.Errorf("latest articles: %w", err)
		}
		ov.Latest = resp.Articles
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if flagJSON {
		return printer.JSON(ov)
	}

	printer.Header("Service")
	printHealth(ov.Health)
	printer.Print("Collection:  %s", collectingBadge(ov.Collection.IsCollecting))
	printer.Print("Articles:    %d (%d recent)", ov.Statistics.TotalArticles, ov.Statistics.RecentArticles)

	if err := printTopics(ov.Trending, days); err != nil {
		return err
	}

	printer.Header("Latest headlines")
	if len(ov.Latest) == 0 {
		printer.Warning("No articles found")
		return nil
	}
	t := output.NewTable(printer.Out(), "ID", "SOURCE", "TITLE")
	for _, a := range ov.Latest {
		t.AddRow(strconv.FormatInt(a.ID, 10), a.SourceName, textutil.Truncate(a.Title, titleWidth))
	}
	return t.Render()
}

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/browser"
	"github.com/matheuskafuri/newsassist/internal/output"
	"github.com/matheuskafuri/newsassist/internal/textutil"
	"github.com/matheuskafuri/newsassist/internal/view"
)

const titleWidth = 60

var (
	flagFeedCategory string
	flagFeedSearch   string
	flagFeedLimit    int
	flagFeedSince    string
	flagFeedUntil    string
	flagSearchLimit  int
	flagArticleOpen  bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "List recent articles",
	Long: `List articles from the news feed, newest first.

Examples:
  newsassist feed
  newsassist feed --category Technology --limit 20
  newsassist feed --search "climate" --since 7d`,
	Args: exactArgs(0),
	RunE: runFeed,
}

var articleCmd = &cobra.Command{
	Use:   "article <id>",
	Short: "Show one article",
	Args:  exactArgs(1),
	RunE:  runArticle,
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search articles by keyword",
	Args:  minArgs(1),
	RunE:  runSearch,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show article statistics",
	Args:  exactArgs(0),
	RunE:  runStats,
}

func init() {
	feedCmd.Flags().StringVarP(&flagFeedCategory, "category", "c", "", "only this category")
	feedCmd.Flags().StringVarP(&flagFeedSearch, "search", "s", "", "filter by text")
	feedCmd.Flags().IntVarP(&flagFeedLimit, "limit", "n", 0, "maximum articles (default from config)")
	feedCmd.Flags().StringVar(&flagFeedSince, "since", "", "only articles from the last duration (e.g., 7d, 24h)")
	feedCmd.Flags().StringVar(&flagFeedUntil, "until", "", "only articles published on or before this date (YYYY-MM-DD)")

	searchCmd.Flags().IntVarP(&flagSearchLimit, "limit", "n", api.DefaultSearchLimit, "maximum results")

	articleCmd.Flags().BoolVarP(&flagArticleOpen, "open", "o", false, "open the article in the browser")

	rootCmd.AddCommand(feedCmd, articleCmd, searchCmd, statsCmd)
}

func runFeed(cmd *cobra.Command, args []string) error {
	f := api.ArticleFilters{
		Search: strings.TrimSpace(flagFeedSearch),
		Limit:  flagFeedLimit,
	}
	if f.Limit <= 0 {
		f.Limit = cfg.FeedLimit()
	}
	if c := strings.TrimSpace(flagFeedCategory); c != "" && c != view.AllCategories {
		f.Category = c
	}
	if flagFeedSince != "" {
		d, err := parseSince(flagFeedSince)
		if err != nil {
			return usageError(cmd, fmt.Errorf("invalid --since value: %w", err))
		}
		f.FromDate = time.Now().Add(-d).Format(time.DateOnly)
	}
	if flagFeedUntil != "" {
		if _, err := time.Parse(time.DateOnly, flagFeedUntil); err != nil {
			return usageError(cmd, fmt.Errorf("invalid --until value %q: want YYYY-MM-DD", flagFeedUntil))
		}
		f.ToDate = flagFeedUntil
	}

	resp, err := client.Articles.List(cmd.Context(), f)
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(resp.Articles)
	}
	return printArticles(resp.Articles)
}

func runArticle(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usageError(cmd, fmt.Errorf("invalid article id %q", args[0]))
	}

	a, err := client.Articles.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(a)
	}

	printer.Header(a.Title)
	printer.Print("%s · %s · %s", a.SourceName, a.CategoryName, formatDate(a.Published()))
	if a.Author != "" {
		printer.Print("By %s", a.Author)
	}
	printer.Print("Sentiment: %s", a.Sentiment())
	printer.Print("")
	body := textutil.PlainText(a.Content)
	if body == "" {
		body = textutil.PlainText(a.Description)
	}
	if body != "" {
		printer.Print("%s", body)
		printer.Print("")
	}
	printer.Print("%s", printer.Dim(a.URL))

	if flagArticleOpen {
		if err := browser.Open(a.URL); err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	resp, err := client.Articles.Search(cmd.Context(), strings.Join(args, " "), flagSearchLimit)
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(resp.Articles)
	}
	return printArticles(resp.Articles)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := client.Articles.Stats(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(stats)
	}
	return printStats(stats)
}

func printStats(stats *api.Statistics) error {
	printer.Header("Article statistics")
	printer.Print("Total:   %d", stats.TotalArticles)
	printer.Print("Recent:  %d", stats.RecentArticles)
	if stats.OldestArticle != "" || stats.NewestArticle != "" {
		printer.Print("Range:   %s .. %s", stats.OldestArticle, stats.NewestArticle)
	}

	if len(stats.ArticlesByCategory) > 0 {
		printer.Header("By category")
		t := output.NewTable(printer.Out(), "CATEGORY", "ARTICLES")
		for _, c := range stats.ArticlesByCategory {
			t.AddRow(c.CategoryName, strconv.Itoa(c.ArticleCount))
		}
		if err := t.Render(); err != nil {
			return err
		}
	}

	if len(stats.ArticlesBySource) > 0 {
		printer.Header("By source")
		t := output.NewTable(printer.Out(), "SOURCE", "ARTICLES")
		for _, s := range stats.ArticlesBySource {
			t.AddRow(s.SourceName, strconv.Itoa(s.ArticleCount))
		}
		return t.Render()
	}
	return nil
}

func printArticles(articles []api.Article) error {
	if len(articles) == 0 {
		printer.Warning("No articles found")
		return nil
	}
	t := output.NewTable(printer.Out(), "ID", "PUBLISHED", "SOURCE", "CATEGORY", "TITLE")
	for _, a := range articles {
		t.AddRow(
			strconv.FormatInt(a.ID, 10),
			formatDate(a.Published()),
			a.SourceName,
			a.CategoryName,
			textutil.Truncate(a.Title, titleWidth),
		)
	}
	return t.Render()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

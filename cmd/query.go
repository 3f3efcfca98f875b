package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/briefing"
	"github.com/matheuskafuri/newsassist/internal/output"
	"github.com/matheuskafuri/newsassist/internal/textutil"
	"github.com/matheuskafuri/newsassist/internal/view"
)

var (
	flagProvider     string
	flagTopK         int
	flagThreshold    float64
	flagSumCategory  string
	flagSumTimeframe string
	flagTrendingDays int
	flagTrendingTopN int
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the AI a question about the news",
	Long: `Ask a question; the answer is grounded in matching articles, which are
listed as sources.

Examples:
  newsassist ask "What happened in AI this week?"
  newsassist ask --provider google --top-k 5 "Latest on the elections"`,
	Args: minArgs(1),
	RunE: runAsk,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize recent coverage",
	Args:  exactArgs(0),
	RunE:  runSummarize,
}

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending topics",
	Args:  exactArgs(0),
	RunE:  runTrending,
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List example questions",
	Args:  exactArgs(0),
	RunE:  runExamples,
}

func init() {
	askCmd.Flags().StringVarP(&flagProvider, "provider", "p", "", "AI provider: groq or google (default from config)")
	askCmd.Flags().IntVarP(&flagTopK, "top-k", "k", 0, "number of articles to retrieve (default from config)")
	askCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "minimum similarity, 0..1 (default from config)")

	summarizeCmd.Flags().StringVarP(&flagSumCategory, "category", "c", "", "only this category")
	summarizeCmd.Flags().StringVarP(&flagSumTimeframe, "timeframe", "t", string(api.TimeframeToday), "today, week or month")
	summarizeCmd.Flags().StringVarP(&flagProvider, "provider", "p", "", "AI provider: groq or google (default from config)")

	trendingCmd.Flags().IntVarP(&flagTrendingDays, "days", "d", 0, "window in days (default from config)")
	trendingCmd.Flags().IntVarP(&flagTrendingTopN, "top", "n", 0, "number of topics (default from config)")

	rootCmd.AddCommand(askCmd, summarizeCmd, trendingCmd, examplesCmd)
}

// provider resolves the --provider flag against the configured default.
func provider() api.Provider {
	if flagProvider != "" {
		return api.Provider(strings.ToLower(strings.TrimSpace(flagProvider)))
	}
	return api.Provider(cfg.Search.Provider)
}

func runAsk(cmd *cobra.Command, args []string) error {
	opts := view.SearchOptions{
		Provider:  provider(),
		TopK:      cfg.Search.TopK,
		Threshold: cfg.Search.Threshold,
	}
	if flagTopK > 0 {
		opts.TopK = flagTopK
	}
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = flagThreshold
	}

	search := view.NewSearch(client.Query, logger, opts)
	search.SetQuestion(strings.Join(args, " "))
	state := search.Ask(cmd.Context())
	if state.Err != nil {
		return state.Err
	}
	resp := state.Data

	if flagJSON {
		return printer.JSON(resp)
	}

	printer.Header("Answer")
	printer.Print("%s", resp.Answer)
	printer.Print("%s", printer.Dim("provider: "+resp.Provider))

	if len(resp.Articles) == 0 {
		return nil
	}
	printer.Header(fmt.Sprintf("Sources (%d)", len(resp.Articles)))
	t := output.NewTable(printer.Out(), "MATCH", "SOURCE", "PUBLISHED", "TITLE", "URL")
	for _, a := range resp.Articles {
		match := "-"
		if a.Similarity != nil {
			match = fmt.Sprintf("%.0f%%", *a.Similarity*100)
		}
		t.AddRow(match, a.SourceName, formatDate(a.Published()), textutil.Truncate(a.Title, titleWidth), a.URL)
	}
	return t.Render()
}

func runSummarize(cmd *cobra.Command, args []string) error {
	b := view.NewBriefing(client.Query, provider())
	b.Configure(strings.TrimSpace(flagSumCategory), api.Timeframe(strings.ToLower(flagSumTimeframe)))
	state := b.Load(cmd.Context())
	if state.Err != nil {
		return state.Err
	}
	if flagJSON {
		return printer.JSON(state.Data)
	}

	category := b.Category()
	if category == view.AllCategories {
		category = ""
	}
	d := briefing.Build(time.Now(), category, b.Timeframe(), state.Data)
	return printDigest(d)
}

func printDigest(d briefing.Digest) error {
	title := briefing.TimeframeLabel(d.Timeframe)
	if d.Category != "" {
		title += " · " + d.Category
	}
	printer.Header(title)
	if d.Summary != "" {
		printer.Print("%s", d.Summary)
		printer.Print("")
	}
	printer.Print("Articles:     %d", d.ArticleCount)
	if d.ActiveSources != "" {
		printer.Print("Most active:  %s", d.ActiveSources)
	}
	if len(d.Themes) > 0 {
		printer.Print("Themes:       %s", strings.Join(d.Themes, ", "))
	}
	if len(d.Cards) == 0 {
		return nil
	}

	printer.Header("Articles")
	t := output.NewTable(printer.Out(), "#", "SOURCE", "READ", "TITLE")
	for _, c := range d.Cards {
		t.AddRow(strconv.Itoa(c.Index), c.Article.SourceName, fmt.Sprintf("%d min", c.ReadingTime), textutil.Truncate(c.Article.Title, titleWidth))
	}
	return t.Render()
}

func runTrending(cmd *cobra.Command, args []string) error {
	days, topN := cfg.TrendingWindow()
	if flagTrendingDays > 0 {
		days = flagTrendingDays
	}
	if flagTrendingTopN > 0 {
		topN = flagTrendingTopN
	}

	tr := view.NewTrending(client.Query, client.Articles, days, topN)
	state := tr.Load(cmd.Context())
	if state.Err != nil {
		return state.Err
	}
	if flagJSON {
		return printer.JSON(state.Data)
	}
	return printTopics(state.Data, days)
}

func printTopics(topics []api.TrendingTopic, days int) error {
	if len(topics) == 0 {
		printer.Warning("No trending topics found")
		return nil
	}
	printer.Header(fmt.Sprintf("Trending over the last %d days", days))
	t := output.NewTable(printer.Out(), "RANK", "TOPIC", "ARTICLES", "SCORE")
	for i, topic := range topics {
		score := view.ScorePercent(topic.AvgTrendScore)
		t.AddRow(
			view.RankLabel(i),
			topic.Topic,
			strconv.Itoa(topic.TotalArticles),
			printer.Level(score, bandLevel(view.ScoreBand(topic.AvgTrendScore))),
		)
	}
	return t.Render()
}

// bandLevel maps a score band onto the printer's color levels.
func bandLevel(b view.Band) string {
	switch b {
	case view.BandHot, view.BandHigh:
		return "high"
	case view.BandModerate:
		return "medium"
	default:
		return "low"
	}
}

func runExamples(cmd *cobra.Command, args []string) error {
	resp, err := client.Query.Examples(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(resp.Examples)
	}
	if len(resp.Examples) == 0 {
		printer.Warning("No example questions available")
		return nil
	}
	for _, group := range resp.Examples {
		printer.Header(group.Category)
		for _, q := range group.Queries {
			printer.Print("  %s", q)
		}
	}
	return nil
}

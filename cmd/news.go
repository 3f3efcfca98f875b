package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/view"
)

var (
	flagCollectTopics   string
	flagCollectWait     bool
	flagCollectInterval time.Duration
	flagFetchSource     string
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Trigger a news collection run",
	Long: `Ask the news service to collect fresh articles. Each call starts a new run.

Examples:
  newsassist collect
  newsassist collect --topics "ai, climate" --wait`,
	Args: exactArgs(0),
	RunE: runCollect,
}

var collectStatusCmd = &cobra.Command{
	Use:   "collect-status",
	Short: "Show whether a collection run is in progress",
	Args:  exactArgs(0),
	RunE:  runCollectStatus,
}

var fetchTopicCmd = &cobra.Command{
	Use:   "fetch-topic <topic>",
	Short: "Fetch articles for one topic",
	Args:  minArgs(1),
	RunE:  runFetchTopic,
}

func init() {
	collectCmd.Flags().StringVarP(&flagCollectTopics, "topics", "t", "", "comma-separated topics (default: the service's topic set)")
	collectCmd.Flags().BoolVarP(&flagCollectWait, "wait", "w", false, "wait until the run finishes")
	collectCmd.Flags().DurationVar(&flagCollectInterval, "interval", view.DefaultPollInterval, "status check interval with --wait")

	fetchTopicCmd.Flags().StringVar(&flagFetchSource, "source", api.DefaultFetchSource, "source to fetch from")

	rootCmd.AddCommand(collectCmd, collectStatusCmd, fetchTopicCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	c := view.NewCollector(client.News)
	c.SetInput(flagCollectTopics)

	state := c.Collect(cmd.Context())
	if state.Err != nil {
		return state.Err
	}

	if !flagJSON {
		printCollection(state.Data)
	}

	if flagCollectWait {
		logger.Debug("waiting for collection", "interval", flagCollectInterval)
		start := time.Now()
		if err := c.Poll(cmd.Context(), flagCollectInterval); err != nil {
			if isCanceled(err) {
				return fmt.Errorf("stopped waiting for collection: %w", err)
			}
			return err
		}
		if !flagJSON {
			printer.Success("Collection finished in %s", time.Since(start).Round(time.Second))
		}
	}

	if flagJSON {
		return printer.JSON(state.Data)
	}
	return nil
}

func printCollection(resp *api.CollectionResponse) {
	printer.Success("%s", resp.Message)
	if s := resp.Stats; s != nil {
		printer.Print("New articles:   %d", s.NewArticles)
		printer.Print("Total articles: %d", s.TotalArticles)
		if len(s.Sources) > 0 {
			printer.Print("Sources:        %s", strings.Join(s.Sources, ", "))
		}
	}
}

func runCollectStatus(cmd *cobra.Command, args []string) error {
	st, err := client.News.Status(cmd.Context())
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(st)
	}
	printer.Print("Collection: %s", collectingBadge(st.IsCollecting))
	return nil
}

func collectingBadge(collecting bool) string {
	if collecting {
		return printer.StatusBadge(false, "collecting")
	}
	return printer.StatusBadge(true, "idle")
}

func runFetchTopic(cmd *cobra.Command, args []string) error {
	resp, err := client.News.FetchTopic(cmd.Context(), strings.Join(args, " "), flagFetchSource)
	if err != nil {
		return err
	}
	if flagJSON {
		return printer.JSON(resp)
	}
	printCollection(resp)
	return nil
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/newsassist/internal/apitest"
	"github.com/matheuskafuri/newsassist/internal/output"
)

// resetFlags restores every flag in the tree to its default so tests do not
// leak values into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against srv and returns stdout and stderr.
func run(t *testing.T, srv *apitest.Server, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"NEWSASSIST_API_URL", "API_BASE_URL", "VITE_API_URL", "OTEL_EXPORTER_OTLP_ENDPOINT", "NO_COLOR"} {
		t.Setenv(key, "")
	}
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	full := []string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "--color", "never"}
	if srv != nil {
		full = append(full, "--api-url", srv.URL)
	}
	full = append(full, args...)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(full)
	err := rootCmd.ExecuteContext(context.Background())
	teardown()
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	if err == nil {
		return output.ExitSuccess
	}
	return output.FromError(err).ExitCode
}

func TestRootCmd_SubcommandsList(t *testing.T) {
	out, _, err := run(t, nil, "--help")
	require.NoError(t, err)

	for _, name := range []string{"feed", "article", "search", "stats", "ask", "summarize", "trending", "examples", "collect", "collect-status", "fetch-topic", "health", "overview", "browse", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestRootCmd_UnknownFlagIsUsageError(t *testing.T) {
	_, _, err := run(t, nil, "feed", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, output.ExitUsageError, exitCode(err))
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-05-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, _, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "newsassist 1.2.3 (commit: abc123, built: 2024-05-01)\n", out)
}

func TestParseSince(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		err   bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"24h", 24 * time.Hour, false},
		{"30m", 30 * time.Minute, false},
		{"2h30m", 2*time.Hour + 30*time.Minute, false},
		{"invalid", 0, true},
		{"", 0, true},
		{"d", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSince(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("parseSince(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseSince(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSince(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFeedPrintsTableWithFilters(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/articles", http.StatusOK, apitest.Articles(
		apitest.Article(1, "Chip exports tighten"),
		apitest.Article(2, "Markets rally"),
	))

	out, _, err := run(t, srv, "feed", "--category", "Technology", "--since", "7d", "--limit", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "Chip exports tighten")
	assert.Contains(t, out, "Example Wire")

	q := srv.Calls()[0].Query
	assert.Equal(t, []string{"Technology"}, q["category"])
	assert.Equal(t, []string{"5"}, q["limit"])
	want := time.Now().Add(-7 * 24 * time.Hour).Format(time.DateOnly)
	assert.Equal(t, []string{want}, q["fromDate"])
}

func TestFeedUsesConfiguredLimit(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/articles", http.StatusOK, apitest.Articles())

	_, stderr, err := run(t, srv, "feed", "--category", "All Categories")
	require.NoError(t, err)

	q := srv.Calls()[0].Query
	assert.Equal(t, []string{"50"}, q["limit"])
	assert.NotContains(t, q, "category")
	assert.Contains(t, stderr, "No articles found")
}

func TestFeedJSON(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/articles", http.StatusOK, apitest.Articles(apitest.Article(9, "Nine")))

	out, _, err := run(t, srv, "--json", "feed")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Nine", got[0]["title"])
}

func TestFeedRejectsBadUntil(t *testing.T) {
	srv := apitest.New(t)

	_, _, err := run(t, srv, "feed", "--until", "yesterday")
	require.Error(t, err)
	assert.Equal(t, output.ExitUsageError, exitCode(err))
	assert.Empty(t, srv.Calls())
}

func TestArticle(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/articles/{id}", http.StatusOK, map[string]any{
		"success": true, "article": apitest.Article(42, "Answer found"),
	})

	out, _, err := run(t, srv, "article", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Answer found")
	assert.Contains(t, out, "Answer found description")
	assert.NotContains(t, out, "<p>")
	assert.Equal(t, "/api/articles/42", srv.Calls()[0].Path)
}

func TestArticleInvalidID(t *testing.T) {
	srv := apitest.New(t)

	_, _, err := run(t, srv, "article", "abc")
	assert.Equal(t, output.ExitUsageError, exitCode(err))

	_, _, err = run(t, srv, "article", "0")
	assert.Equal(t, output.ExitUsageError, exitCode(err))
	assert.Empty(t, srv.Calls())
}

func TestSearchJoinsArguments(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/articles/search", http.StatusOK, apitest.Articles(apitest.Article(3, "Solar boom")))

	out, _, err := run(t, srv, "search", "solar", "power", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Solar boom")

	q := srv.Calls()[0].Query
	assert.Equal(t, []string{"solar power"}, q["q"])
	assert.Equal(t, []string{"3"}, q["limit"])
}

func TestStats(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/articles/stats", http.StatusOK, map[string]any{
		"success": true,
		"statistics": map[string]any{
			"totalArticles":      120,
			"recentArticles":     14,
			"articlesByCategory": []any{map[string]any{"category_name": "Science", "article_count": 30}},
			"articlesBySource":   []any{map[string]any{"source_name": "Wire", "article_count": 90}},
		},
	})

	out, _, err := run(t, srv, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total:   120")
	assert.Contains(t, out, "Science")
	assert.Contains(t, out, "Wire")
}

func TestAskPrintsAnswerAndSources(t *testing.T) {
	srv := apitest.New(t)
	source := apitest.Article(5, "Rates held steady")
	source["similarity"] = 0.9
	srv.Reply(http.MethodPost, "/api/query", http.StatusOK, map[string]any{
		"success": true, "answer": "The central bank held rates.", "articles": []any{source}, "provider": "google",
	})

	out, _, err := run(t, srv, "ask", "--provider", "google", "--top-k", "3", "what", "did", "the", "bank", "do?")
	require.NoError(t, err)
	assert.Contains(t, out, "The central bank held rates.")
	assert.Contains(t, out, "90%")
	assert.Contains(t, out, "Rates held steady")

	var body map[string]any
	require.NoError(t, json.Unmarshal(srv.Calls()[0].Body, &body))
	assert.Equal(t, "what did the bank do?", body["question"])
	assert.Equal(t, "google", body["provider"])
	assert.EqualValues(t, 3, body["topK"])
	assert.EqualValues(t, 0.7, body["threshold"])
}

func TestAskBlankQuestionIsUsageError(t *testing.T) {
	srv := apitest.New(t)

	_, _, err := run(t, srv, "ask", "   ")
	require.Error(t, err)
	assert.Equal(t, "Please enter a question", err.Error())
	assert.Equal(t, output.ExitUsageError, exitCode(err))
	assert.Empty(t, srv.Calls())
}

func TestAskApplicationError(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodPost, "/api/query", http.StatusOK, apitest.Failure("Provider quota exceeded"))

	_, _, err := run(t, srv, "ask", "anything")
	require.Error(t, err)
	assert.Equal(t, "Provider quota exceeded", err.Error())
	assert.Equal(t, output.ExitAPIError, exitCode(err))
}

func TestSummarize(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodPost, "/api/summarize", http.StatusOK, map[string]any{
		"success": true, "summary": "A quiet week.", "articleCount": 1,
		"articles": []any{apitest.Article(1, "Nothing happened")},
	})

	out, _, err := run(t, srv, "summarize", "--timeframe", "week", "--category", "Science")
	require.NoError(t, err)
	assert.Contains(t, out, "This week · Science")
	assert.Contains(t, out, "A quiet week.")
	assert.Contains(t, out, "Nothing happened")

	var body map[string]any
	require.NoError(t, json.Unmarshal(srv.Calls()[0].Body, &body))
	assert.Equal(t, "week", body["timeframe"])
	assert.Equal(t, "Science", body["category"])
	assert.Equal(t, "groq", body["provider"])
}

func TestSummarizeRejectsUnknownTimeframe(t *testing.T) {
	srv := apitest.New(t)

	_, _, err := run(t, srv, "summarize", "--timeframe", "year")
	assert.Equal(t, output.ExitUsageError, exitCode(err))
	assert.Empty(t, srv.Calls())
}

func TestTrending(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/trending", http.StatusOK, map[string]any{
		"success": true, "count": 2,
		"topics": []any{apitest.Topic("elections", 40, 0.91), apitest.Topic("climate", 12, 0.45)},
	})

	out, _, err := run(t, srv, "trending", "--days", "3", "--top", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "elections")
	assert.Contains(t, out, "91.0%")
	assert.Contains(t, out, "last 3 days")

	q := srv.Calls()[0].Query
	assert.Equal(t, []string{"3"}, q["days"])
	assert.Equal(t, []string{"2"}, q["topN"])
}

func TestExamples(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/examples", http.StatusOK, map[string]any{
		"success":  true,
		"examples": []any{map[string]any{"category": "Tech", "queries": []string{"What is new in AI?"}}},
	})

	out, _, err := run(t, srv, "examples")
	require.NoError(t, err)
	assert.Contains(t, out, "Tech")
	assert.Contains(t, out, "What is new in AI?")
}

func TestCollectWait(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodPost, "/api/news/collect", http.StatusOK, map[string]any{
		"success": true, "message": "Collection started",
		"stats": map[string]any{"totalArticles": 10, "newArticles": 4, "sources": []string{"newsapi"}},
	})
	srv.Reply(http.MethodGet, "/api/news/status", http.StatusOK, map[string]any{"isCollecting": false})

	out, _, err := run(t, srv, "collect", "--topics", "ai, climate", "--wait", "--interval", "10ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Collection started")
	assert.Contains(t, out, "New articles:   4")
	assert.Contains(t, out, "Collection finished")

	var body map[string][]string
	require.NoError(t, json.Unmarshal(srv.Calls()[0].Body, &body))
	assert.Equal(t, []string{"ai", "climate"}, body["topics"])
	assert.Equal(t, 1, srv.CallCount("/api/news/status"))
}

func TestCollectWithoutTopicsSendsEmptyObject(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodPost, "/api/news/collect", http.StatusOK, map[string]any{"success": true, "message": "ok"})

	_, _, err := run(t, srv, "collect")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(srv.Calls()[0].Body))
	assert.Zero(t, srv.CallCount("/api/news/status"))
}

func TestCollectStatus(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/api/news/status", http.StatusOK, map[string]any{"isCollecting": true})

	out, _, err := run(t, srv, "collect-status")
	require.NoError(t, err)
	assert.Contains(t, out, "[collecting]")
}

func TestFetchTopic(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodPost, "/api/news/fetch-topic", http.StatusOK, map[string]any{"success": true, "message": "Fetched 8 articles"})

	out, _, err := run(t, srv, "fetch-topic", "quantum", "computing")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetched 8 articles")

	var body map[string]string
	require.NoError(t, json.Unmarshal(srv.Calls()[0].Body, &body))
	assert.Equal(t, "quantum computing", body["topic"])
	assert.Equal(t, "all", body["source"])
}

func TestHealthFailureMapsToAPIExitCode(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/health", http.StatusServiceUnavailable, map[string]any{"error": "database unavailable"})

	_, _, err := run(t, srv, "health")
	require.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
	cliErr := output.FromError(err)
	assert.Equal(t, output.ExitAPIError, cliErr.ExitCode)
	assert.Contains(t, cliErr.Detail, "status 503")
}

func TestOverviewFansOut(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/health", http.StatusOK, map[string]any{"status": "ok", "environment": "test"})
	srv.Reply(http.MethodGet, "/api/news/status", http.StatusOK, map[string]any{"isCollecting": false})
	srv.Reply(http.MethodGet, "/api/articles/stats", http.StatusOK, map[string]any{
		"success": true, "statistics": map[string]any{"totalArticles": 7, "recentArticles": 2},
	})
	srv.Reply(http.MethodGet, "/api/trending", http.StatusOK, map[string]any{
		"success": true, "count": 1, "topics": []any{apitest.Topic("ai", 5, 0.7)},
	})
	srv.Reply(http.MethodGet, "/api/articles", http.StatusOK, apitest.Articles(apitest.Article(1, "Top story")))

	out, _, err := run(t, srv, "overview")
	require.NoError(t, err)
	assert.Len(t, srv.Calls(), 5)
	for _, want := range []string{"[ok]", "[idle]", "7 (2 recent)", "ai", "Top story"} {
		assert.Contains(t, out, want)
	}
	for _, c := range srv.Calls() {
		if c.Path == "/api/articles" {
			assert.Equal(t, []string{"5"}, c.Query["limit"])
		}
	}
}

func TestOverviewFailsWhenAnyCallFails(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/health", http.StatusOK, map[string]any{"status": "ok"})

	_, _, err := run(t, srv, "overview")
	require.Error(t, err)
	assert.Equal(t, output.ExitAPIError, exitCode(err))
}

func TestRequestsAreCounted(t *testing.T) {
	srv := apitest.New(t)
	srv.Reply(http.MethodGet, "/health", http.StatusOK, map[string]any{"status": "ok"})

	_, _, err := run(t, srv, "health")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(registry, "newsassist_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInvalidAPIURLIsConfigError(t *testing.T) {
	_, _, err := run(t, nil, "--api-url", "ftp://example.com", "health")
	require.Error(t, err)
	assert.Equal(t, output.ExitConfigError, exitCode(err))
}

func TestJSONRejectedByDashboard(t *testing.T) {
	srv := apitest.New(t)

	_, _, err := run(t, srv, "--json")
	require.Error(t, err)
	var cliErr *output.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, output.ExitUsageError, cliErr.ExitCode)
	assert.True(t, strings.Contains(cliErr.Summary, "--json"))
}

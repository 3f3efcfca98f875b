//go:build pact

package api

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPact(t *testing.T) *consumer.V2HTTPMockProvider {
	t.Helper()
	p, err := consumer.NewV2Pact(consumer.MockHTTPProviderConfig{
		Consumer: "newsassist",
		Provider: "news-backend",
		PactDir:  filepath.Join("..", "..", "pacts"),
	})
	require.NoError(t, err)
	return p
}

func pactClient(t *testing.T, cfg consumer.MockServerConfig) *Client {
	t.Helper()
	return newTestClient(t, fmt.Sprintf("http://%s:%d", cfg.Host, cfg.Port))
}

var articleShape = matchers.MapMatcher{
	"id":            matchers.Integer(1),
	"title":         matchers.S("Chip makers rally"),
	"description":   matchers.S("Shares rose"),
	"url":           matchers.S("https://news.example.com/a/1"),
	"published_at":  matchers.S("2024-05-01T10:00:00Z"),
	"source_name":   matchers.S("Example Wire"),
	"category_name": matchers.S("Technology"),
	"created_at":    matchers.S("2024-05-01T10:05:00Z"),
}

func TestContractListArticles(t *testing.T) {
	p := newPact(t)
	err := p.AddInteraction().
		Given("articles exist").
		UponReceiving("a request for the latest technology articles").
		WithRequest("GET", "/api/articles", func(b *consumer.V2RequestBuilder) {
			b.Query("category", matchers.S("Technology"))
			b.Query("limit", matchers.S("50"))
		}).
		WillRespondWith(200, func(b *consumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"success":  matchers.Like(true),
				"count":    matchers.Integer(1),
				"articles": matchers.EachLike(articleShape, 1),
			})
		}).
		ExecuteTest(t, func(cfg consumer.MockServerConfig) error {
			resp, err := pactClient(t, cfg).Articles.List(context.Background(), ArticleFilters{Category: "Technology", Limit: 50})
			if err != nil {
				return err
			}
			assert.NotEmpty(t, resp.Articles)
			return nil
		})
	require.NoError(t, err)
}

func TestContractAsk(t *testing.T) {
	p := newPact(t)
	err := p.AddInteraction().
		Given("articles are indexed").
		UponReceiving("a question about the news").
		WithRequest("POST", "/api/query", func(b *consumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"question":  matchers.S("What happened in tech?"),
				"provider":  matchers.S("groq"),
				"topK":      matchers.Integer(10),
				"threshold": matchers.Decimal(0.7),
			})
		}).
		WillRespondWith(200, func(b *consumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"success":  matchers.Like(true),
				"answer":   matchers.S("Chip stocks rallied."),
				"provider": matchers.S("groq"),
				"articles": matchers.EachLike(articleShape, 1),
			})
		}).
		ExecuteTest(t, func(cfg consumer.MockServerConfig) error {
			resp, err := pactClient(t, cfg).Query.Ask(context.Background(), QueryRequest{
				Question: "What happened in tech?",
				Provider: ProviderGroq,
			})
			if err != nil {
				return err
			}
			assert.NotEmpty(t, resp.Answer)
			return nil
		})
	require.NoError(t, err)
}

func TestContractCollectFailure(t *testing.T) {
	p := newPact(t)
	err := p.AddInteraction().
		Given("collection is rate limited").
		UponReceiving("a collection trigger").
		WithRequest("POST", "/api/news/collect", func(b *consumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{})
		}).
		WillRespondWith(200, func(b *consumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"success": matchers.Like(false),
				"error":   matchers.S("rate limited"),
			})
		}).
		ExecuteTest(t, func(cfg consumer.MockServerConfig) error {
			_, err := pactClient(t, cfg).News.Collect(context.Background(), nil)
			if !IsKind(err, KindApplication) {
				return fmt.Errorf("expected application error, got %v", err)
			}
			return nil
		})
	require.NoError(t, err)
}

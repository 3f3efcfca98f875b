package api

import "time"

// Provider selects the backend answer-generation service. The client only
// forwards it.
type Provider string

const (
	ProviderGroq   Provider = "groq"
	ProviderGoogle Provider = "google"
)

// Valid reports whether p is empty or a known provider.
func (p Provider) Valid() bool {
	return p == "" || p == ProviderGroq || p == ProviderGoogle
}

// Timeframe scopes a summary.
type Timeframe string

const (
	TimeframeToday Timeframe = "today"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

func (t Timeframe) Valid() bool {
	return t == "" || t == TimeframeToday || t == TimeframeWeek || t == TimeframeMonth
}

// Envelope is embedded by every response that must carry the success flag.
type Envelope struct {
	Success bool `json:"success"`
}

func (Envelope) enveloped() {}

type Article struct {
	ID             int64    `json:"id" validate:"gt=0"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Content        string   `json:"content,omitempty"`
	URL            string   `json:"url"`
	ImageURL       string   `json:"image_url,omitempty"`
	PublishedAt    string   `json:"published_at"`
	SourceName     string   `json:"source_name"`
	CategoryName   string   `json:"category_name"`
	Author         string   `json:"author,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Published parses PublishedAt. The backend has sent several layouts over
// time; the zero time is returned when none match.
func (a Article) Published() time.Time {
	return parseTime(a.PublishedAt)
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Sentiment is a display classification of an article's sentiment score.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Sentiment classifies SentimentScore: above 0.1 is positive, below -0.1 is
// negative, anything else (including no score) is neutral.
func (a Article) Sentiment() Sentiment {
	if a.SentimentScore == nil {
		return SentimentNeutral
	}
	switch s := *a.SentimentScore; {
	case s > 0.1:
		return SentimentPositive
	case s < -0.1:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ArticleWithSimilarity is an article as ranked by one query. Similarity is
// relative to that query only.
type ArticleWithSimilarity struct {
	Article
	Similarity *float64 `json:"similarity,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type ArticlesResponse struct {
	Envelope
	Count    int       `json:"count" validate:"gte=0"`
	Articles []Article `json:"articles" validate:"dive"`
}

type ArticleResponse struct {
	Envelope
	Article Article `json:"article"`
}

type CategoryCount struct {
	CategoryName string `json:"category_name"`
	ArticleCount int    `json:"article_count" validate:"gte=0"`
}

type SourceCount struct {
	SourceName   string `json:"source_name"`
	ArticleCount int    `json:"article_count" validate:"gte=0"`
}

type Statistics struct {
	TotalArticles      int             `json:"totalArticles" validate:"gte=0"`
	ArticlesByCategory []CategoryCount `json:"articlesByCategory" validate:"dive"`
	ArticlesBySource   []SourceCount   `json:"articlesBySource" validate:"dive"`
	RecentArticles     int             `json:"recentArticles" validate:"gte=0"`
	OldestArticle      string          `json:"oldestArticle,omitempty"`
	NewestArticle      string          `json:"newestArticle,omitempty"`
}

type StatisticsResponse struct {
	Envelope
	Statistics Statistics `json:"statistics"`
}

type QueryRequest struct {
	Question  string   `json:"question"`
	Provider  Provider `json:"provider,omitempty"`
	TopK      int      `json:"topK,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
}

type QueryResponse struct {
	Envelope
	Answer   string                  `json:"answer"`
	Articles []ArticleWithSimilarity `json:"articles" validate:"dive"`
	Provider string                  `json:"provider"`
}

type SummarizeRequest struct {
	Category  string    `json:"category,omitempty"`
	Timeframe Timeframe `json:"timeframe,omitempty"`
	Provider  Provider  `json:"provider,omitempty"`
}

type SummarizeResponse struct {
	Envelope
	Summary      string    `json:"summary"`
	ArticleCount int       `json:"articleCount" validate:"gte=0"`
	Articles     []Article `json:"articles" validate:"dive"`
}

type TrendingTopic struct {
	Topic         string  `json:"topic" validate:"required"`
	TotalArticles int     `json:"total_articles" validate:"gte=0"`
	AvgTrendScore float64 `json:"avg_trend_score"`
}

type TrendingResponse struct {
	Envelope
	Count  int             `json:"count" validate:"gte=0"`
	Topics []TrendingTopic `json:"topics" validate:"unique=Topic,dive"`
}

type ExampleQuery struct {
	Category string   `json:"category"`
	Queries  []string `json:"queries"`
}

type ExamplesResponse struct {
	Envelope
	Examples []ExampleQuery `json:"examples" validate:"dive"`
}

type CollectionRequest struct {
	Topics []string `json:"topics,omitempty"`
}

type CollectionStats struct {
	TotalArticles int      `json:"totalArticles" validate:"gte=0"`
	NewArticles   int      `json:"newArticles" validate:"gte=0"`
	Sources       []string `json:"sources"`
}

type CollectionResponse struct {
	Envelope
	Message string           `json:"message"`
	Stats   *CollectionStats `json:"stats,omitempty" validate:"omitempty"`
}

type CollectionStatus struct {
	IsCollecting bool `json:"isCollecting"`
}

type FetchTopicRequest struct {
	Topic  string `json:"topic"`
	Source string `json:"source"`
}

type Health struct {
	Status      string `json:"status" validate:"required"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

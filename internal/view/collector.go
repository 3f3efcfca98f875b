package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/matheuskafuri/newsassist/internal/api"
)

// DefaultPollInterval paces Collector.Poll.
const DefaultPollInterval = 2 * time.Second

// CollectionService triggers and inspects collection runs. *api.NewsService
// satisfies it.
type CollectionService interface {
	Collect(ctx context.Context, topics []string) (*api.CollectionResponse, error)
	Status(ctx context.Context) (*api.CollectionStatus, error)
}

// Collector is the collection dialog.
type Collector struct {
	svc CollectionService

	Run Result[*api.CollectionResponse]

	mu    sync.Mutex
	input string
}

func NewCollector(svc CollectionService) *Collector {
	return &Collector{svc: svc}
}

func (c *Collector) SetInput(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = s
}

func (c *Collector) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Topics parses the input as a comma-separated list, dropping blanks.
func (c *Collector) Topics() []string {
	return ParseTopics(c.Input())
}

// ParseTopics splits s on commas and trims each entry. Blank entries are
// dropped; nil is returned when nothing remains.
func ParseTopics(s string) []string {
	var topics []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

// Start begins a collection run. Every call triggers a new run on the backend.
func (c *Collector) Start(ctx context.Context) Pending[*api.CollectionResponse] {
	topics := c.Topics()
	return c.Run.Start(ctx, func(ctx context.Context) (*api.CollectionResponse, error) {
		return c.svc.Collect(ctx, topics)
	})
}

// Collect triggers a run and blocks until the response is applied.
func (c *Collector) Collect(ctx context.Context) State[*api.CollectionResponse] {
	c.Run.Finish(c.Start(ctx).Execute())
	return c.Run.State()
}

// Close discards the input and any result.
func (c *Collector) Close() {
	c.SetInput("")
	c.Run.Reset()
}

// Poll queries the collection status at most once per interval until the
// backend reports no run in progress or ctx is done.
func (c *Collector) Poll(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for collection: %w", err)
		}
		st, err := c.svc.Status(ctx)
		if err != nil {
			return fmt.Errorf("collection status: %w", err)
		}
		if !st.IsCollecting {
			return nil
		}
	}
}

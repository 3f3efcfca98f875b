package view

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/matheuskafuri/newsassist/internal/api"
)

// DefaultProvider is the answer provider selected initially.
const DefaultProvider = api.ProviderGroq

// Asker answers questions and offers examples. *api.QueryService satisfies it.
type Asker interface {
	Ask(ctx context.Context, req api.QueryRequest) (*api.QueryResponse, error)
	Examples(ctx context.Context) (*api.ExamplesResponse, error)
}

// SearchOptions tunes the retrieval parameters forwarded with each question.
type SearchOptions struct {
	Provider  api.Provider
	TopK      int
	Threshold float64
}

// Search is the "ask about the news" panel.
type Search struct {
	svc    Asker
	logger *slog.Logger
	opts   SearchOptions

	Answer Result[*api.QueryResponse]

	mu             sync.Mutex
	question       string
	provider       api.Provider
	examples       []api.ExampleQuery
	examplesLoaded bool
}

func NewSearch(svc Asker, logger *slog.Logger, opts SearchOptions) *Search {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Provider == "" {
		opts.Provider = DefaultProvider
	}
	return &Search{svc: svc, logger: logger, opts: opts, provider: opts.Provider}
}

func (s *Search) SetQuestion(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.question = q
}

func (s *Search) Question() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.question
}

func (s *Search) SetProvider(p api.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

func (s *Search) Provider() api.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// ToggleProvider switches between the two known providers.
func (s *Search) ToggleProvider() api.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provider == api.ProviderGroq {
		s.provider = api.ProviderGoogle
	} else {
		s.provider = api.ProviderGroq
	}
	return s.provider
}

// LoadExamples fetches example questions the first time it is called. A
// failure is logged and leaves the example list empty.
func (s *Search) LoadExamples(ctx context.Context) []api.ExampleQuery {
	s.mu.Lock()
	if s.examplesLoaded {
		ex := s.examples
		s.mu.Unlock()
		return ex
	}
	s.examplesLoaded = true
	s.mu.Unlock()

	resp, err := s.svc.Examples(ctx)
	if err != nil {
		s.logger.Warn("load example questions", "error", err)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = resp.Examples
	return s.examples
}

func (s *Search) Examples() []api.ExampleQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.examples
}

// UseExample copies q into the question input.
func (s *Search) UseExample(q string) {
	s.SetQuestion(q)
}

// NewQuestion clears the question and the previous answer.
func (s *Search) NewQuestion() {
	s.SetQuestion("")
	s.Answer.Reset()
}

// Start validates the question and begins a request. When the question is
// blank the answer enters the error state, no request is made and ok is false.
func (s *Search) Start(ctx context.Context) (p Pending[*api.QueryResponse], ok bool) {
	s.mu.Lock()
	req := api.QueryRequest{
		Question:  strings.TrimSpace(s.question),
		Provider:  s.provider,
		TopK:      s.opts.TopK,
		Threshold: s.opts.Threshold,
	}
	s.mu.Unlock()

	if req.Question == "" {
		s.Answer.Fail(&api.Error{Kind: api.KindValidation, Route: "/api/query", Message: "Please enter a question"})
		return Pending[*api.QueryResponse]{}, false
	}
	return s.Answer.Start(ctx, func(ctx context.Context) (*api.QueryResponse, error) {
		return s.svc.Ask(ctx, req)
	}), true
}

// Ask submits the current question and blocks until the answer is applied.
func (s *Search) Ask(ctx context.Context) State[*api.QueryResponse] {
	if p, ok := s.Start(ctx); ok {
		s.Answer.Finish(p.Execute())
	}
	return s.Answer.State()
}

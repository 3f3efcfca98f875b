package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/briefing"
	"github.com/matheuskafuri/newsassist/internal/browser"
	"github.com/matheuskafuri/newsassist/internal/logging"
	"github.com/matheuskafuri/newsassist/internal/view"
)

const healthTimeout = 5 * time.Second

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeHome mode = iota
	modeFeed
	modeSearch
	modeFilter
	modeAsk
	modeTrending
	modeTopic
	modeBriefing
	modeCollect
	modeHelp
)

// HealthChecker reports backend health. *api.HealthService satisfies it.
type HealthChecker interface {
	Check(ctx context.Context) (*api.Health, error)
}

// Options holds the controllers and collaborators the TUI drives.
type Options struct {
	Feed         *view.Feed
	Search       *view.Search
	Trending     *view.Trending
	Collector    *view.Collector
	Briefing     *view.Briefing
	Health       HealthChecker
	BaseURL      string
	Categories   []string
	Opener       browser.Opener
	Logger       *slog.Logger
	PollInterval time.Duration
	// StartInFeed skips the home screen.
	StartInFeed bool
}

type App struct {
	feed      *view.Feed
	search    *view.Search
	trending  *view.Trending
	collector *view.Collector
	briefing  *view.Briefing
	health    HealthChecker
	opener    browser.Opener
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mode     mode
	prevMode mode
	focus    focusPane
	width    int
	height   int

	searchInput   textinput.Model
	questionInput textinput.Model
	topicsInput   textinput.Model
	spinner       spinner.Model
	filterBar     filterBar
	briefingBar   filterBar

	cursor        int
	previewScroll int
	topicCursor   int
	topicArticle  int
	cardCursor    int
	sourceCursor  int
	exampleIdx    int

	baseURL      string
	healthStatus *api.Health
	healthErr    error

	pollInterval time.Duration
	stopPoll     context.CancelFunc
	polling      bool
	pollErr      error

	currentDate string
	err         error
}

func NewApp(opts Options) *App {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	qi := textinput.New()
	qi.Placeholder = "What happened in AI this week?"
	qi.Prompt = searchPromptStyle.Render("? ")
	qi.CharLimit = 500

	tp := textinput.New()
	tp.Placeholder = "technology, climate, elections"
	tp.Prompt = searchPromptStyle.Render("> ")
	tp.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	opener := opts.Opener
	if opener == nil {
		opener = browser.System
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = view.DefaultPollInterval
	}
	categories := opts.Categories
	if len(categories) == 0 {
		categories = view.DefaultCategories
	}

	startMode := modeHome
	if opts.StartInFeed {
		startMode = modeFeed
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		feed:          opts.Feed,
		search:        opts.Search,
		trending:      opts.Trending,
		collector:     opts.Collector,
		briefing:      opts.Briefing,
		health:        opts.Health,
		opener:        opener,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		mode:          startMode,
		searchInput:   ti,
		questionInput: qi,
		topicsInput:   tp,
		spinner:       sp,
		filterBar:     newFilterBar(categories),
		briefingBar:   newFilterBar(categories),
		baseURL:       opts.BaseURL,
		pollInterval:  interval,
		currentDate:   time.Now().Format("Jan 2"),
	}
}

// Close cancels every in-flight request started by the app.
func (a *App) Close() {
	a.cancel()
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.checkHealthCmd()}
	if a.mode == modeFeed {
		cmds = append(cmds, a.loadFeedCmd())
	}
	return tea.Batch(cmds...)
}

func (a *App) checkHealthCmd() tea.Cmd {
	if a.health == nil {
		return nil
	}
	ctx, h := a.ctx, a.health
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, healthTimeout)
		defer cancel()
		res, err := h.Check(ctx)
		return healthMsg{health: res, err: err}
	}
}

func (a *App) loadFeedCmd() tea.Cmd {
	p := a.feed.Start(a.ctx)
	return tea.Batch(func() tea.Msg { return feedLoadedMsg{out: p.Execute()} }, a.spinner.Tick)
}

func (a *App) askCmd() tea.Cmd {
	a.search.SetQuestion(a.questionInput.Value())
	a.sourceCursor = 0
	p, ok := a.search.Start(a.ctx)
	if !ok {
		return nil
	}
	return tea.Batch(func() tea.Msg { return answerMsg{out: p.Execute()} }, a.spinner.Tick)
}

func (a *App) loadExamplesCmd() tea.Cmd {
	ctx, s := a.ctx, a.search
	return func() tea.Msg {
		s.LoadExamples(ctx)
		return examplesLoadedMsg{}
	}
}

func (a *App) loadTrendingCmd() tea.Cmd {
	p := a.trending.Start(a.ctx)
	return tea.Batch(func() tea.Msg { return trendingLoadedMsg{out: p.Execute()} }, a.spinner.Tick)
}

func (a *App) selectTopicCmd(topic string) tea.Cmd {
	p := a.trending.Select(a.ctx, topic)
	return tea.Batch(func() tea.Msg { return topicArticlesMsg{out: p.Execute()} }, a.spinner.Tick)
}

func (a *App) loadBriefingCmd() tea.Cmd {
	p := a.briefing.Start(a.ctx)
	return tea.Batch(func() tea.Msg { return briefingLoadedMsg{out: p.Execute()} }, a.spinner.Tick)
}

func (a *App) collectCmd() tea.Cmd {
	a.stopPolling()
	a.pollErr = nil
	a.collector.SetInput(a.topicsInput.Value())
	p := a.collector.Start(a.ctx)
	return tea.Batch(func() tea.Msg { return collectDoneMsg{out: p.Execute()} }, a.spinner.Tick)
}

func (a *App) pollCmd() tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.stopPoll = cancel
	a.polling = true
	c, interval := a.collector, a.pollInterval
	return tea.Batch(func() tea.Msg { return collectIdleMsg{err: c.Poll(ctx, interval)} }, a.spinner.Tick)
}

func (a *App) stopPolling() {
	if a.stopPoll != nil {
		a.stopPoll()
		a.stopPoll = nil
	}
	a.polling = false
}

func (a *App) openCmd(url string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		if err := browser.OpenWith(opener, url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) loading() bool {
	switch {
	case a.feed.Articles.State().Loading(),
		a.search.Answer.State().Loading(),
		a.trending.Topics.State().Loading(),
		a.trending.TopicArticles.State().Loading(),
		a.briefing.Summary.State().Loading(),
		a.collector.Run.State().Loading():
		return true
	}
	return a.polling
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case healthMsg:
		a.healthStatus, a.healthErr = msg.health, msg.err
		return a, nil

	case feedLoadedMsg:
		if a.feed.Articles.Finish(msg.out) {
			a.cursor = clampCursor(a.cursor, len(a.feed.Articles.State().Data))
			a.previewScroll = 0
		}
		return a, nil

	case answerMsg:
		a.search.Answer.Finish(msg.out)
		return a, nil

	case examplesLoadedMsg:
		return a, nil

	case trendingLoadedMsg:
		if a.trending.Topics.Finish(msg.out) {
			a.topicCursor = clampCursor(a.topicCursor, len(a.trending.Topics.State().Data))
		}
		return a, nil

	case topicArticlesMsg:
		if a.trending.TopicArticles.Finish(msg.out) {
			a.topicArticle = 0
			a.previewScroll = 0
		}
		return a, nil

	case briefingLoadedMsg:
		if a.briefing.Summary.Finish(msg.out) {
			a.cardCursor = 0
		}
		return a, nil

	case collectDoneMsg:
		if a.collector.Run.Finish(msg.out) && a.collector.Run.State().Status == view.Succeeded {
			return a, a.pollCmd()
		}
		return a, nil

	case collectIdleMsg:
		a.polling = false
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			a.pollErr = msg.err
			a.logger.Warn("poll collection status", "error", msg.err)
		}
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Cursor blink and other input messages go to the focused input.
	var cmd tea.Cmd
	switch a.mode {
	case modeSearch:
		a.searchInput, cmd = a.searchInput.Update(msg)
	case modeAsk:
		a.questionInput, cmd = a.questionInput.Update(msg)
	case modeCollect:
		a.topicsInput, cmd = a.topicsInput.Update(msg)
	}
	return a, cmd
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		return max(0, n-1)
	}
	return cursor
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeAsk:
		return a.handleAskKey(msg)
	case modeTrending:
		return a.handleTrendingKey(msg)
	case modeTopic:
		return a.handleTopicKey(msg)
	case modeBriefing:
		return a.handleBriefingKey(msg)
	case modeCollect:
		return a.handleCollectKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = a.prevMode
		}
		return a, nil
	}
	return a.handleFeedKey(msg)
}

func (a *App) showHelp() {
	a.prevMode = a.mode
	a.mode = modeHelp
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f", "1":
		a.mode = modeFeed
		if a.feed.Articles.State().Status == view.Idle {
			return a, a.loadFeedCmd()
		}
		return a, nil
	case "a", "2":
		a.mode = modeAsk
		a.questionInput.SetValue(a.search.Question())
		return a, tea.Batch(a.questionInput.Focus(), a.loadExamplesCmd())
	case "t", "3":
		a.mode = modeTrending
		if a.trending.Topics.State().Status == view.Idle {
			return a, a.loadTrendingCmd()
		}
		return a, nil
	case "b", "4":
		a.mode = modeBriefing
		if a.briefing.Summary.State().Status == view.Idle {
			return a, a.loadBriefingCmd()
		}
		return a, nil
	case "c", "5":
		a.mode = modeCollect
		return a, a.topicsInput.Focus()
	case "r":
		a.healthStatus, a.healthErr = nil, nil
		return a, a.checkHealthCmd()
	case "?":
		a.showHelp()
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	articles := a.feed.Articles.State().Data
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(articles)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(articles) {
			return a, a.openCmd(articles[a.cursor].URL)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.feed.Search())
		return a, a.searchInput.Focus()
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "r":
		return a, a.loadFeedCmd()
	case "h", "esc":
		a.mode = modeHome
		return a, nil
	case "?":
		a.showHelp()
		return a, nil
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeFeed
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.feed.SetSearch("")
		a.cursor = 0
		return a, a.loadFeedCmd()
	case "enter":
		a.mode = modeFeed
		a.searchInput.Blur()
		a.feed.SetSearch(a.searchInput.Value())
		a.cursor = 0
		return a, a.loadFeedCmd()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeFeed
		a.filterBar.filterMode = false
		return a, nil
	case "left", "h":
		a.filterBar.move(-1)
		return a, nil
	case "right", "l":
		a.filterBar.move(1)
		return a, nil
	case " ", "enter":
		a.feed.SetCategory(a.filterBar.selectCurrent())
		a.cursor = 0
		return a, a.loadFeedCmd()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if c, ok := a.filterBar.selectIndex(int(msg.String()[0] - '1')); ok {
			a.feed.SetCategory(c)
			a.cursor = 0
			return a, a.loadFeedCmd()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleAskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.search.SetQuestion(a.questionInput.Value())
		a.questionInput.Blur()
		a.mode = modeHome
		return a, nil
	case "enter":
		return a, a.askCmd()
	case "tab":
		a.search.ToggleProvider()
		return a, nil
	case "ctrl+e":
		if q, ok := a.nextExample(); ok {
			a.search.UseExample(q)
			a.questionInput.SetValue(q)
			a.questionInput.CursorEnd()
		}
		return a, nil
	case "ctrl+n":
		a.search.NewQuestion()
		a.questionInput.SetValue("")
		a.sourceCursor = 0
		return a, nil
	case "down":
		if resp := a.search.Answer.State().Data; resp != nil && a.sourceCursor < len(resp.Articles)-1 {
			a.sourceCursor++
		}
		return a, nil
	case "up":
		if a.sourceCursor > 0 {
			a.sourceCursor--
		}
		return a, nil
	case "ctrl+o":
		if resp := a.search.Answer.State().Data; resp != nil && a.sourceCursor < len(resp.Articles) {
			return a, a.openCmd(resp.Articles[a.sourceCursor].URL)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.questionInput, cmd = a.questionInput.Update(msg)
	return a, cmd
}

// nextExample cycles through every example query across categories.
func (a *App) nextExample() (string, bool) {
	var all []string
	for _, group := range a.search.Examples() {
		all = append(all, group.Queries...)
	}
	if len(all) == 0 {
		return "", false
	}
	q := all[a.exampleIdx%len(all)]
	a.exampleIdx++
	return q, true
}

func (a *App) handleTrendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	topics := a.trending.Topics.State().Data
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.topicCursor < len(topics)-1 {
			a.topicCursor++
		}
		return a, nil
	case "k", "up":
		if a.topicCursor > 0 {
			a.topicCursor--
		}
		return a, nil
	case "enter", "o":
		if a.topicCursor < len(topics) {
			a.mode = modeTopic
			a.focus = focusList
			a.topicArticle = 0
			a.previewScroll = 0
			return a, a.selectTopicCmd(topics[a.topicCursor].Topic)
		}
		return a, nil
	case "r":
		return a, a.loadTrendingCmd()
	case "h", "esc":
		a.mode = modeHome
		return a, nil
	case "?":
		a.showHelp()
		return a, nil
	}
	return a, nil
}

func (a *App) handleTopicKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	articles := a.trending.TopicArticles.State().Data
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.topicArticle < len(articles)-1 {
			a.topicArticle++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.topicArticle > 0 {
			a.topicArticle--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if a.topicArticle < len(articles) {
			return a, a.openCmd(articles[a.topicArticle].URL)
		}
		return a, nil
	case "esc", "backspace", "h":
		a.trending.CloseTopic()
		a.mode = modeTrending
		a.focus = focusList
		return a, nil
	}
	return a, nil
}

func (a *App) handleBriefingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cards int
	if resp := a.briefing.Summary.State().Data; resp != nil {
		cards = len(resp.Articles)
	}
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down", "n":
		if a.cardCursor < cards-1 {
			a.cardCursor++
		}
		return a, nil
	case "k", "up", "p":
		if a.cardCursor > 0 {
			a.cardCursor--
		}
		return a, nil
	case "o", "enter":
		if resp := a.briefing.Summary.State().Data; resp != nil && a.cardCursor < len(resp.Articles) {
			return a, a.openCmd(resp.Articles[a.cardCursor].URL)
		}
		return a, nil
	case "t":
		a.briefing.NextTimeframe()
		return a, a.loadBriefingCmd()
	case "c":
		a.briefing.Configure(a.briefingBar.next(), a.briefing.Timeframe())
		return a, a.loadBriefingCmd()
	case "r":
		return a, a.loadBriefingCmd()
	case "h", "esc":
		a.mode = modeHome
		return a, nil
	case "?":
		a.showHelp()
		return a, nil
	}
	return a, nil
}

func (a *App) handleCollectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.stopPolling()
		a.pollErr = nil
		a.collector.Close()
		a.topicsInput.SetValue("")
		a.topicsInput.Blur()
		a.mode = modeHome
		return a, nil
	case "enter":
		if a.collector.Run.State().Loading() {
			return a, nil
		}
		return a, a.collectCmd()
	}

	var cmd tea.Cmd
	a.topicsInput, cmd = a.topicsInput.Update(msg)
	return a, cmd
}

func (a *App) withBottomBar(content string, hints string) string {
	left := ""
	if a.loading() {
		left = " " + a.spinner.View()
	}
	if a.err != nil {
		left += " " + errorStyle.Render(a.err.Error())
	}
	bar := renderBottomBar(left, hints, a.width)

	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsassist")
	}

	switch a.mode {
	case modeHome:
		return a.withBottomBar(
			renderHomeScreen(a.width, a.height-1, a.baseURL, a.healthStatus, a.healthErr),
			"f feed  a ask  t trending  b briefing  c collect  q quit",
		)
	case modeHelp:
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	case modeAsk:
		return a.withBottomBar(renderAsk(askModel{
			state:     a.search.Answer.State(),
			provider:  a.search.Provider(),
			input:     a.questionInput.View(),
			examples:  a.search.Examples(),
			sourceIdx: a.sourceCursor,
			spinner:   a.spinner.View(),
		}, a.width, a.height-1), "enter ask  tab provider  ctrl+e example  ctrl+n new  ↑/↓ ctrl+o source  esc home")
	case modeTrending:
		days, _ := a.trending.Window()
		return a.withBottomBar(
			renderTrending(a.trending.Topics.State(), days, a.topicCursor, a.spinner.View(), a.width, a.height-1),
			"j/k move  enter articles  r reload  h home  q quit",
		)
	case modeBriefing:
		return a.withBottomBar(a.renderBriefing(), "j/k card  o open  t timeframe  c category  r reload  h home")
	case modeCollect:
		return a.withBottomBar(
			renderCollector(a.collector.Run.State(), a.topicsInput.View(), a.spinner.View(), a.polling, a.pollErr, a.width, a.height-1),
			"enter collect  esc close",
		)
	case modeTopic:
		topic := searchPromptStyle.Render(" Topic: ") + bodyStyle.Render(a.trending.Selected())
		state := a.trending.TopicArticles.State()
		return a.renderPanes(topic, state, a.topicArticle, statusInfo{
			count: len(state.Data),
			hints: "j/k move  tab focus  o open  esc back",
		})
	}

	bar := a.filterBar.render(a.width)
	if a.mode == modeSearch {
		bar = a.searchInput.View()
	}
	state := a.feed.Articles.State()
	category := a.feed.Category()
	if category == view.AllCategories {
		category = ""
	}
	hints := "h home  / search  f filter  r reload  q quit"
	if a.mode == modeSearch {
		hints = "esc clear  enter search"
	}
	return a.renderPanes(bar, state, a.cursor, statusInfo{
		count:    len(state.Data),
		category: category,
		search:   a.feed.Search(),
		hints:    hints,
	})
}

// renderPanes lays out the header, a bar, the article list with its preview
// and the status line.
func (a *App) renderPanes(bar string, state view.State[[]api.Article], cursor int, status statusInfo) string {
	headerHeight := 1
	barHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - barHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	headerLeft := headerStyle.Render("newsassist")
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	empty := "No articles found"
	switch state.Status {
	case view.Loading:
		empty = "Loading articles..."
	case view.Failed:
		empty = state.Message()
	}

	innerListW := listWidth - 4 // border + padding
	listContent := renderList(state.Data, cursor, contentHeight, innerListW, empty)

	listStyle, previewStyle := listPaneStyle, previewPaneStyle
	if a.focus == focusList {
		listStyle = listPaneActiveStyle
	} else {
		previewStyle = previewPaneActiveStyle
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	var selected *api.Article
	if cursor < len(state.Data) {
		selected = &state.Data[cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)
	previewPane := previewStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	if a.loading() {
		status.loading = a.spinner.View()
	}
	if a.err != nil {
		status.err = a.err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, renderStatusBar(status, a.width))
}

func (a *App) renderBriefing() string {
	state := a.briefing.Summary.State()
	d := briefing.Build(time.Now(), a.briefing.Category(), a.briefing.Timeframe(), state.Data)
	if d.Category == view.AllCategories {
		d.Category = ""
	}

	switch state.Status {
	case view.Loading:
		return renderBriefingHeader(d) + "\n\n  " + a.spinner.View() + " " + metaStyle.Render("Summarizing coverage...")
	case view.Failed:
		return renderBriefingHeader(d) + "\n\n  " + errorStyle.Render(state.Message())
	}
	return renderDigest(d, a.cardCursor, a.width, a.height-1)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("newsassist")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Home") + "\n" +
		"  f / a / t     Feed, ask, trending\n" +
		"  b / c         Briefing, collect news\n" +
		"  r             Re-check backend health\n\n" +
		dim.Render("Feed") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  tab           Switch focus between list and preview\n" +
		"  o, enter      Open article in browser\n" +
		"  /             Search articles\n" +
		"  f             Category filter (←/→, enter, 1-9)\n" +
		"  r             Reload\n\n" +
		dim.Render("Ask") + "\n" +
		"  enter         Ask the question\n" +
		"  tab           Switch AI provider\n" +
		"  ctrl+e        Use an example question\n" +
		"  ctrl+n        New question\n\n" +
		dim.Render("Trending & Briefing") + "\n" +
		"  enter         Show articles for a topic\n" +
		"  t / c         Cycle timeframe or category\n\n" +
		dim.Render("General") + "\n" +
		"  h, esc        Back\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application and blocks until it exits.
func Run(opts Options) error {
	app := NewApp(opts)
	defer app.Close()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package briefing turns a backend summary into the digest shown on the
// briefing screen: greeting, headline counts, recurring themes and one card
// per source article.
package briefing

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/textutil"
)

// Digest is a rendered-ready briefing.
type Digest struct {
	DateLabel     string
	Greeting      string
	Category      string
	Timeframe     api.Timeframe
	Summary       string
	ArticleCount  int
	ActiveSources string
	Themes        []string
	Cards         []Card
}

// Card is one article backing the summary.
type Card struct {
	Article     api.Article
	Index       int
	Excerpt     string
	ReadingTime int
}

// Build assembles a digest from a summary response. A nil response yields an
// empty digest with only the date and greeting set.
func Build(now time.Time, category string, timeframe api.Timeframe, resp *api.SummarizeResponse) Digest {
	d := Digest{
		DateLabel: now.Format("Jan 2"),
		Greeting:  greeting(now),
		Category:  category,
		Timeframe: timeframe,
	}
	if resp == nil {
		return d
	}

	d.Summary = strings.TrimSpace(resp.Summary)
	d.ArticleCount = resp.ArticleCount
	if d.ArticleCount == 0 {
		d.ArticleCount = len(resp.Articles)
	}
	d.ActiveSources = activeSources(resp.Articles)
	d.Themes = themes(resp.Articles)

	for i, a := range resp.Articles {
		d.Cards = append(d.Cards, Card{
			Article:     a,
			Index:       i + 1,
			Excerpt:     textutil.Excerpt(a.Description),
			ReadingTime: textutil.ReadingTime(a.Description),
		})
	}
	return d
}

// TimeframeLabel is the heading used for a timeframe.
func TimeframeLabel(tf api.Timeframe) string {
	switch tf {
	case api.TimeframeWeek:
		return "This week"
	case api.TimeframeMonth:
		return "This month"
	default:
		return "Today"
	}
}

func greeting(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func activeSources(articles []api.Article) string {
	counts := map[string]int{}
	for _, a := range articles {
		if a.SourceName != "" {
			counts[a.SourceName]++
		}
	}

	type sc struct {
		name  string
		count int
	}
	var sorted []sc
	for name, count := range counts {
		sorted = append(sorted, sc{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	limit := min(3, len(sorted))
	parts := make([]string, limit)
	for i := 0; i < limit; i++ {
		parts[i] = fmt.Sprintf("%s (%d)", sorted[i].name, sorted[i].count)
	}
	return strings.Join(parts, ", ")
}

// themes returns up to three title keywords that recur across articles.
func themes(articles []api.Article) []string {
	tf := map[string]int{}
	for _, a := range articles {
		seen := map[string]bool{}
		for _, w := range tokenize(a.Title) {
			if !seen[w] {
				tf[w]++
				seen[w] = true
			}
		}
	}

	type scored struct {
		term  string
		count int
	}
	var terms []scored
	for term, n := range tf {
		if n < 2 {
			continue
		}
		terms = append(terms, scored{term, n})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].count != terms[j].count {
			return terms[i].count > terms[j].count
		}
		return terms[i].term < terms[j].term
	})

	limit := min(3, len(terms))
	out := make([]string, 0, limit)
	for _, t := range terms[:limit] {
		out = append(out, t.term)
	}
	return out
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "its": true,
	"this": true, "that": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "not": true, "no": true, "nor": true,
	"how": true, "what": true, "when": true, "where": true, "who": true, "which": true,
	"why": true, "all": true, "each": true, "every": true, "both": true, "few": true,
	"more": true, "most": true, "other": true, "some": true, "such": true, "than": true,
	"too": true, "very": true, "just": true, "about": true, "into": true, "over": true,
	"after": true, "before": true, "between": true, "under": true, "above": true,
	"out": true, "up": true, "down": true, "off": true, "our": true, "your": true,
	"we": true, "you": true, "they": true, "them": true, "their": true, "new": true,
	"says": true, "said": true, "report": true, "amid": true,
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(word) < 4 || stopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/view"
)

func TestRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m"},
		{now.Add(-3 * time.Hour), "3h"},
		{now.Add(-2 * 24 * time.Hour), "2d"},
	}
	for _, tt := range tests {
		got := relativeTime(tt.t)
		if got != tt.want {
			t.Errorf("relativeTime(%v ago) = %q, want %q", now.Sub(tt.t), got, tt.want)
		}
	}
}

func TestRelativeTimeOld(t *testing.T) {
	old := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got := relativeTime(old)
	if got != "Jun 15" {
		t.Errorf("relativeTime(old date) = %q, want %q", got, "Jun 15")
	}
}

func TestRelativeTimeZero(t *testing.T) {
	if got := relativeTime(time.Time{}); got != "unknown date" {
		t.Errorf("relativeTime(zero) = %q, want %q", got, "unknown date")
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, cursor, visible int
		start, end         int
	}{
		{10, 0, 3, 0, 3},
		{10, 2, 3, 0, 3},
		{10, 5, 3, 3, 6},
		{10, 9, 3, 7, 10},
		{2, 1, 5, 0, 2},
	}
	for _, tt := range tests {
		start, end := window(tt.n, tt.cursor, tt.visible)
		if start != tt.start || end != tt.end {
			t.Errorf("window(%d, %d, %d) = [%d,%d), want [%d,%d)", tt.n, tt.cursor, tt.visible, start, end, tt.start, tt.end)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("the quick brown fox jumps", 10)
	want := "the quick\nbrown fox\njumps"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}
	if wrapText("   ", 10) != "" {
		t.Error("wrapText of blank input should be empty")
	}
}

func TestRenderListEmpty(t *testing.T) {
	out := renderList(nil, 0, 10, 40, "No articles found")
	if !strings.Contains(out, "No articles found") {
		t.Errorf("empty list should show placeholder, got %q", out)
	}
}

func TestRenderListMarksCursor(t *testing.T) {
	articles := []api.Article{{ID: 1, Title: "First"}, {ID: 2, Title: "Second"}}
	out := renderList(articles, 1, 10, 40, "")
	if !strings.Contains(out, "> Second") {
		t.Errorf("selected item should be marked, got %q", out)
	}
	if strings.Contains(out, "> First") {
		t.Errorf("unselected item should not be marked, got %q", out)
	}
}

func TestRenderPreviewStripsHTML(t *testing.T) {
	a := &api.Article{
		Title:       "Headline",
		Description: "<p>Body <b>text</b> &amp; more</p>",
		URL:         "https://example.com/a",
	}
	out := renderPreview(a, 60, 20, 0)
	if !strings.Contains(out, "Body text & more") {
		t.Errorf("preview should show plain text, got %q", out)
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("preview should not contain markup, got %q", out)
	}
}

func TestFilterBar(t *testing.T) {
	f := newFilterBar([]string{"Technology", "Sports"})
	if f.current() != view.AllCategories {
		t.Fatalf("initial category = %q, want %q", f.current(), view.AllCategories)
	}

	f.move(1)
	if got := f.selectCurrent(); got != "Technology" {
		t.Errorf("selectCurrent = %q, want Technology", got)
	}

	f.move(10)
	if f.filterCursor != 2 {
		t.Errorf("cursor should clamp to last index, got %d", f.filterCursor)
	}

	if _, ok := f.selectIndex(5); ok {
		t.Error("selectIndex out of range should fail")
	}

	f.selectIndex(2)
	if got := f.next(); got != view.AllCategories {
		t.Errorf("next should wrap to %q, got %q", view.AllCategories, got)
	}
}

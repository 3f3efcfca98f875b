package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsassist/internal/view"
)

// filterBar is a single-select category strip. Index 0 is "All Categories".
type filterBar struct {
	categories   []string
	active       int
	filterMode   bool
	filterCursor int
}

func newFilterBar(categories []string) filterBar {
	return filterBar{categories: append([]string{view.AllCategories}, categories...)}
}

func (f *filterBar) move(delta int) {
	f.filterCursor += delta
	if f.filterCursor < 0 {
		f.filterCursor = 0
	}
	if f.filterCursor > len(f.categories)-1 {
		f.filterCursor = len(f.categories) - 1
	}
}

func (f *filterBar) selectCurrent() string {
	f.active = f.filterCursor
	return f.current()
}

func (f *filterBar) selectIndex(i int) (string, bool) {
	if i < 0 || i >= len(f.categories) {
		return "", false
	}
	f.active = i
	f.filterCursor = i
	return f.current(), true
}

func (f *filterBar) current() string {
	return f.categories[f.active]
}

// next advances the active category, wrapping around.
func (f *filterBar) next() string {
	f.active = (f.active + 1) % len(f.categories)
	f.filterCursor = f.active
	return f.current()
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	var row string
	for i, c := range f.categories {
		style := tabInactiveStyle
		if i == f.active {
			style = tabActiveStyle
		}
		label := c
		if f.filterMode && i == f.filterCursor {
			label = "[" + c + "]"
		}

		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += style.Render(label)
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}

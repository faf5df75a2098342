package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/moviesearch/internal/naver"
)

type movieItem struct {
	naver.Movie
}

func (i movieItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.DisplayTitle(), i.Year())
}

func (i movieItem) FilterValue() string {
	return i.DisplayTitle()
}

func (i movieItem) Description() string {
	return formatPeople(i.Movie)
}

func toItems(movies []naver.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{Movie: movie}
	}
	return items
}

type itemStyles struct {
	normal      lipgloss.Style
	selected    lipgloss.Style
	titleStyle  lipgloss.Style
	peopleStyle lipgloss.Style
	ratingStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	container := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		peopleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")),
		ratingStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
	}
}

type movieDelegate struct {
	styles itemStyles
}

func newDelegate() movieDelegate {
	return movieDelegate{styles: newItemStyles()}
}

func (d movieDelegate) Height() int                         { return 3 }
func (d movieDelegate) Spacing() int                        { return 1 }
func (d movieDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d movieDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	movie, ok := item.(movieItem)
	if !ok {
		return
	}
	width := m.Width() - 4

	titleLine := d.styles.titleStyle.Render(truncate(movie.Title(), width))
	peopleLine := d.styles.peopleStyle.Render(truncate(movie.Description(), width))
	ratingLine := d.styles.ratingStyle.Render(formatRating(movie.UserRating))

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(lipgloss.JoinVertical(lipgloss.Left, titleLine, peopleLine, ratingLine)))
}

// formatPeople renders "director / first actors" for the list row.
func formatPeople(movie naver.Movie) string {
	var parts []string
	if directors := naver.People(movie.Director); len(directors) > 0 {
		parts = append(parts, strings.Join(directors, ", "))
	}
	if actors := naver.People(movie.Actor); len(actors) > 0 {
		if len(actors) > 3 {
			actors = append(actors[:3:3], "...")
		}
		parts = append(parts, strings.Join(actors, ", "))
	}
	if len(parts) == 0 {
		return "No credits available"
	}
	return strings.Join(parts, " / ")
}

func formatRating(rating string) string {
	rating = strings.TrimSpace(rating)
	if rating == "" || rating == "0.00" {
		return "not rated"
	}
	return rating + "/10"
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

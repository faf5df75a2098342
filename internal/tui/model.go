// Package tui is the interactive terminal front end for the search reactor.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/moviesearch/internal/naver"
	"github.com/lepinkainen/moviesearch/internal/reactor"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// pixelsPerRow converts the prefetch distance to list rows.
	pixelsPerRow = 20
)

var writeClipboard = clipboard.WriteAll

// ActionSink receives the actions produced by the UI.
type ActionSink interface {
	Send(reactor.Action)
}

// Options configures the terminal UI.
type Options struct {
	// Debounce is the quiet period after the last keystroke before the
	// query is sent. Zero sends on every keystroke.
	Debounce time.Duration
	// PrefetchPixels is how close to the bottom of the list the selection
	// must get before the next page is requested.
	PrefetchPixels int
}

// PrefetchRows converts a pixel distance to whole list rows, rounding up.
func PrefetchRows(pixels int) int {
	if pixels <= 0 {
		return 0
	}
	return (pixels + pixelsPerRow - 1) / pixelsPerRow
}

// NearBottom reports whether the item at index is within rows of the last
// of total items.
func NearBottom(index, total, rows int) bool {
	if total == 0 {
		return false
	}
	return total-1-index <= rows
}

type stateMsg struct {
	state reactor.State
}

type debounceMsg struct {
	seq   int
	query string
}

type copiedMsg struct {
	err error
}

type model struct {
	actions      ActionSink
	keys         keyMap
	input        textinput.Model
	list         list.Model
	spinner      spinner.Model
	detail       viewport.Model
	state        reactor.State
	debounce     time.Duration
	prefetchRows int

	seq        int
	lastSent   *string
	spinning   bool
	showDetail bool
	status     string
	width      int
	height     int
}

func newModel(actions ActionSink, opts Options) *model {
	input := textinput.New()
	input.Placeholder = "Search movies"
	input.Prompt = "> "
	input.CharLimit = 100
	input.Focus()

	l := list.New(nil, newDelegate(), defaultWidth, defaultHeight-6)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	return &model{
		actions:      actions,
		keys:         defaultKeyMap(),
		input:        input,
		list:         l,
		spinner:      s,
		detail:       viewport.New(defaultWidth, defaultHeight-6),
		state:        reactor.InitialState(),
		debounce:     opts.Debounce,
		prefetchRows: PrefetchRows(opts.PrefetchPixels),
		width:        defaultWidth,
		height:       defaultHeight,
	}
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		return m, m.applyState(msg.state)
	case debounceMsg:
		if msg.seq == m.seq {
			m.sendQuery(msg.query)
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Link copied"
		}
		return m, nil
	case openedMsg:
		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("Open failed: %v", msg.err)
		case msg.copied:
			m.status = "Could not open browser; link copied"
		default:
			m.status = "Opened link in browser"
		}
		return m, nil
	case spinner.TickMsg:
		if !m.state.IsLoadingNextPage {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.showDetail {
			return m, m.updateDetail(msg)
		}
		return m, m.updateSearch(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return tea.Quit
	case key.Matches(msg, m.keys.Open):
		if movie, ok := m.selected(); ok {
			m.openDetail(movie)
		}
		return nil
	case key.Matches(msg, m.keys.OpenLink):
		return m.openLink()
	case key.Matches(msg, m.keys.Copy):
		return m.copyLink()
	case key.Matches(msg, m.keys.Up):
		m.list.CursorUp()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.list.CursorDown()
		m.maybeLoadNextPage()
		return nil
	case key.Matches(msg, m.keys.PageUp):
		m.list.PrevPage()
		return nil
	case key.Matches(msg, m.keys.PageDown):
		m.list.NextPage()
		m.maybeLoadNextPage()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return tea.Batch(cmd, m.queueQuery(after))
	}
	return cmd
}

func (m *model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.showDetail = false
		m.status = ""
		return nil
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.OpenLink), msg.String() == "o":
		return m.openLink()
	case key.Matches(msg, m.keys.Copy), msg.String() == "c":
		return m.copyLink()
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return cmd
}

// queueQuery restarts the debounce window for query.
func (m *model) queueQuery(query string) tea.Cmd {
	m.seq++
	if m.debounce <= 0 {
		m.sendQuery(query)
		return nil
	}
	seq := m.seq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

func (m *model) sendQuery(query string) {
	if m.lastSent != nil && *m.lastSent == query {
		return
	}
	m.lastSent = &query
	m.actions.Send(reactor.UpdateQueryText(query))
}

func (m *model) maybeLoadNextPage() {
	if m.state.NextPage == nil || m.state.IsLoadingNextPage {
		return
	}
	if NearBottom(m.list.Index(), len(m.list.Items()), m.prefetchRows) {
		m.actions.Send(reactor.LoadNextPage())
	}
}

func (m *model) applyState(state reactor.State) tea.Cmd {
	replaced := !extends(m.state.Movies, state.Movies)
	m.state = state

	cmd := m.list.SetItems(toItems(state.Movies))
	if replaced {
		m.list.Select(0)
	}

	if state.IsLoadingNextPage && !m.spinning {
		m.spinning = true
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// extends reports whether next starts with every movie of prev.
func extends(prev, next []naver.Movie) bool {
	if len(next) < len(prev) {
		return false
	}
	for i := range prev {
		if prev[i] != next[i] {
			return false
		}
	}
	return true
}

func (m *model) selected() (naver.Movie, bool) {
	item, ok := m.list.SelectedItem().(movieItem)
	if !ok {
		return naver.Movie{}, false
	}
	return item.Movie, true
}

func (m *model) openDetail(movie naver.Movie) {
	m.showDetail = true
	m.status = ""
	m.detail.SetContent(renderDetail(movie, m.detail.Width))
	m.detail.GotoTop()
}

func (m *model) copyLink() tea.Cmd {
	movie, ok := m.selected()
	if !ok || movie.Link == "" {
		return nil
	}
	link := movie.Link
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(link)}
	}
}

func (m *model) openLink() tea.Cmd {
	movie, ok := m.selected()
	if !ok || movie.Link == "" {
		return nil
	}
	return openLinkCmd(movie.Link)
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	bodyHeight := max(height-6, 3)
	m.input.Width = max(width-4, 10)
	m.list.SetSize(width, bodyHeight)
	m.detail.Width = width
	m.detail.Height = bodyHeight
	if m.showDetail {
		if movie, ok := m.selected(); ok {
			m.detail.SetContent(renderDetail(movie, width))
		}
	}
}

func (m *model) View() string {
	header := headerStyle.Render("Naver movie search")
	search := m.input.View()

	body := m.list.View()
	help := "Type to search | Up/Down navigate | Enter details | Ctrl+O open | Ctrl+Y copy link | Esc quit"
	if m.showDetail {
		body = m.detail.View()
		help = "Up/Down scroll | Enter/o open | c copy link | Esc back"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		search,
		body,
		statusStyle.Render(m.statusLine()),
		helpStyle.Render(help),
	)
}

func (m *model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	switch {
	case m.state.IsLoadingNextPage:
		return m.spinner.View() + " Loading more..."
	case !m.state.HasQuery():
		return ""
	case len(m.state.Movies) == 0:
		return "No results"
	case m.state.NextPage == nil:
		return fmt.Sprintf("%d movies (end of results)", len(m.state.Movies))
	default:
		return fmt.Sprintf("%d movies", len(m.state.Movies))
	}
}

func renderDetail(movie naver.Movie, width int) string {
	field := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		return labelStyle.Render(fmt.Sprintf("%-9s", label)) + " " + value
	}

	lines := []string{
		detailTitleStyle.Render(movie.DisplayTitle()),
	}
	if sub := naver.PlainText(movie.Subtitle); sub != "" {
		lines = append(lines, subtitleStyle.Render(sub))
	}
	lines = append(lines,
		"",
		field("Year", movie.Year()),
		field("Director", strings.Join(naver.People(movie.Director), ", ")),
		field("Cast", strings.Join(naver.People(movie.Actor), ", ")),
		field("Rating", formatRating(movie.UserRating)),
		field("Link", movie.Link),
		field("Poster", movie.Image),
	)
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("254"))

	subtitleStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("247"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110"))
)

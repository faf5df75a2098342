package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/moviesearch/internal/naver"
	"github.com/lepinkainen/moviesearch/internal/reactor"
)

type sinkRecorder struct {
	actions []reactor.Action
}

func (s *sinkRecorder) Send(a reactor.Action) {
	s.actions = append(s.actions, a)
}

func (s *sinkRecorder) names() []string {
	out := make([]string, len(s.actions))
	for i, a := range s.actions {
		out[i] = a.String()
	}
	return out
}

func testMovies(n int) []naver.Movie {
	out := make([]naver.Movie, n)
	for i := range out {
		out[i] = naver.Movie{
			Title:      "<b>Batman</b> " + string(rune('A'+i)),
			Link:       "https://movie.example.test/" + string(rune('a'+i)),
			PubDate:    "2005",
			Director:   "Christopher Nolan|",
			Actor:      "Christian Bale|Michael Caine|",
			UserRating: "8.50",
		}
	}
	return out
}

func loadedState(n int, next *int) reactor.State {
	q := "batman"
	return reactor.State{Query: &q, Movies: testMovies(n), NextPage: next}
}

func newTestModel(debounce time.Duration) (*model, *sinkRecorder) {
	sink := &sinkRecorder{}
	return newModel(sink, Options{Debounce: debounce, PrefetchPixels: 100}), sink
}

func typeText(m *model, text string) []tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range text {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	return cmds
}

func press(m *model, t tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: t})
	return cmd
}

func TestModel_DebouncesTyping(t *testing.T) {
	m, sink := newTestModel(300 * time.Millisecond)

	cmds := typeText(m, "bat")
	for _, cmd := range cmds {
		assert.NotNil(t, cmd)
	}
	assert.Empty(t, sink.actions, "nothing is sent before the quiet period ends")

	// stale ticks are ignored
	m.Update(debounceMsg{seq: 1, query: "b"})
	m.Update(debounceMsg{seq: 2, query: "ba"})
	assert.Empty(t, sink.actions)

	m.Update(debounceMsg{seq: 3, query: "bat"})
	assert.Equal(t, []string{`updateQuery("bat")`}, sink.names())

	// a repeated tick for the same text is not resent
	m.Update(debounceMsg{seq: 3, query: "bat"})
	assert.Len(t, sink.actions, 1)
}

func TestModel_BackspaceRestartsDebounce(t *testing.T) {
	m, sink := newTestModel(300 * time.Millisecond)

	typeText(m, "ab")
	press(m, tea.KeyBackspace)
	assert.Equal(t, "a", m.input.Value())

	m.Update(debounceMsg{seq: 2, query: "ab"})
	assert.Empty(t, sink.actions)

	m.Update(debounceMsg{seq: 3, query: "a"})
	assert.Equal(t, []string{`updateQuery("a")`}, sink.names())
}

func TestModel_ZeroDebounceSendsImmediately(t *testing.T) {
	m, sink := newTestModel(0)

	typeText(m, "ab")
	assert.Equal(t, []string{`updateQuery("a")`, `updateQuery("ab")`}, sink.names())
}

func TestModel_ApplyState(t *testing.T) {
	m, _ := newTestModel(0)

	m.Update(stateMsg{state: loadedState(10, naver.Page(1))})
	assert.Len(t, m.list.Items(), 10)
	assert.Contains(t, m.View(), "10 movies")

	m.Update(stateMsg{state: loadedState(13, nil)})
	assert.Len(t, m.list.Items(), 13)
	assert.Contains(t, m.View(), "13 movies (end of results)")
}

func TestModel_NoResults(t *testing.T) {
	m, _ := newTestModel(0)

	m.Update(stateMsg{state: loadedState(0, nil)})
	assert.Contains(t, m.View(), "No results")
}

func TestModel_LoadsNextPageNearBottom(t *testing.T) {
	m, sink := newTestModel(0)
	m.Update(stateMsg{state: loadedState(10, naver.Page(1))})

	for i := 0; i < 3; i++ {
		press(m, tea.KeyDown)
	}
	assert.Empty(t, sink.actions)

	press(m, tea.KeyDown)
	assert.Equal(t, 4, m.list.Index())
	assert.Equal(t, []string{"loadNextPage"}, sink.names())
}

func TestModel_NoPagingWhenExhaustedOrLoading(t *testing.T) {
	m, sink := newTestModel(0)

	m.Update(stateMsg{state: loadedState(3, nil)})
	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	assert.Empty(t, sink.actions)

	loading := loadedState(3, naver.Page(1))
	loading.IsLoadingNextPage = true
	m.Update(stateMsg{state: loading})
	press(m, tea.KeyDown)
	assert.Empty(t, sink.actions)
}

func TestModel_NewResultsResetSelection(t *testing.T) {
	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(10, naver.Page(1))})
	press(m, tea.KeyDown)
	press(m, tea.KeyDown)
	require.Equal(t, 2, m.list.Index())

	// appended page keeps the selection
	m.Update(stateMsg{state: loadedState(13, nil)})
	assert.Equal(t, 2, m.list.Index())

	q := "joker"
	m.Update(stateMsg{state: reactor.State{Query: &q, Movies: testMovies(2)[1:]}})
	assert.Equal(t, 0, m.list.Index())
}

func TestModel_Spinner(t *testing.T) {
	m, _ := newTestModel(0)

	loading := loadedState(10, naver.Page(1))
	loading.IsLoadingNextPage = true
	_, cmd := m.Update(stateMsg{state: loading})
	assert.NotNil(t, cmd)
	assert.True(t, m.spinning)
	assert.Contains(t, m.View(), "Loading more...")

	m.Update(stateMsg{state: loadedState(20, naver.Page(2))})
	_, cmd = m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
	assert.False(t, m.spinning)
}

func TestModel_DetailPane(t *testing.T) {
	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(2, naver.Page(1))})

	press(m, tea.KeyEnter)
	require.True(t, m.showDetail)
	view := m.View()
	assert.Contains(t, view, "Batman A")
	assert.Contains(t, view, "Christian Bale, Michael Caine")
	assert.Contains(t, view, "https://movie.example.test/a")

	press(m, tea.KeyEsc)
	assert.False(t, m.showDetail)
}

func TestModel_CopyLink(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(2, naver.Page(1))})
	press(m, tea.KeyDown)
	press(m, tea.KeyEnter)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, "https://movie.example.test/b", copied)
	assert.Contains(t, m.View(), "Link copied")
}

func stubOpeners(t *testing.T, openErr, copyErr error) (opened, copied *string) {
	t.Helper()
	opened, copied = new(string), new(string)
	origOpen, origCopy := openURL, writeClipboard
	openURL = func(url string) error {
		*opened = url
		return openErr
	}
	writeClipboard = func(text string) error {
		*copied = text
		return copyErr
	}
	t.Cleanup(func() {
		openURL = origOpen
		writeClipboard = origCopy
	})
	return opened, copied
}

func TestModel_OpenLink(t *testing.T) {
	opened, copied := stubOpeners(t, nil, nil)

	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(2, naver.Page(1))})
	press(m, tea.KeyDown)
	press(m, tea.KeyEnter)
	require.True(t, m.showDetail)

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.True(t, m.showDetail)
	assert.Equal(t, "https://movie.example.test/b", *opened)
	assert.Empty(t, *copied)
	assert.Contains(t, m.View(), "Opened link in browser")
}

func TestModel_OpenLinkFromSearch(t *testing.T) {
	opened, _ := stubOpeners(t, nil, nil)

	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(2, naver.Page(1))})

	cmd := press(m, tea.KeyCtrlO)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.False(t, m.showDetail)
	assert.Equal(t, "https://movie.example.test/a", *opened)
	assert.Empty(t, m.input.Value())
}

func TestModel_OpenLinkFallsBackToClipboard(t *testing.T) {
	opened, copied := stubOpeners(t, errors.New("no browser"), nil)

	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(2, naver.Page(1))})
	press(m, tea.KeyEnter)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Equal(t, "https://movie.example.test/a", *opened)
	assert.Equal(t, "https://movie.example.test/a", *copied)
	assert.Contains(t, m.View(), "Could not open browser; link copied")
}

func TestModel_OpenLinkFailure(t *testing.T) {
	stubOpeners(t, errors.New("no browser"), errors.New("no clipboard"))

	m, _ := newTestModel(0)
	m.Update(stateMsg{state: loadedState(1, nil)})
	press(m, tea.KeyEnter)

	cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Contains(t, m.View(), "Open failed")
	assert.Contains(t, m.View(), "no clipboard")
}

func TestModel_CopyWithoutSelection(t *testing.T) {
	m, _ := newTestModel(0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(0)

	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := newTestModel(0)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.list.Width())
	assert.Equal(t, 34, m.list.Height())
	assert.Equal(t, 34, m.detail.Height)
}

func TestPrefetchRows(t *testing.T) {
	assert.Equal(t, 5, PrefetchRows(100))
	assert.Equal(t, 2, PrefetchRows(30))
	assert.Equal(t, 0, PrefetchRows(0))
	assert.Equal(t, 0, PrefetchRows(-5))
}

func TestNearBottom(t *testing.T) {
	assert.False(t, NearBottom(0, 0, 5))
	assert.False(t, NearBottom(3, 10, 5))
	assert.True(t, NearBottom(4, 10, 5))
	assert.True(t, NearBottom(9, 10, 0))
	assert.False(t, NearBottom(8, 10, 0))
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lepinkainen/moviesearch/internal/naver"
	"github.com/lepinkainen/moviesearch/internal/reactor"
)

var stdout io.Writer = os.Stdout

// SearchCmd represents the headless search command
type SearchCmd struct {
	Query   string        `arg:"" help:"Text to search for"`
	Pages   int           `short:"p" help:"Number of pages to fetch" default:"1"`
	JSON    bool          `help:"Print results as JSON"`
	Timeout time.Duration `help:"Give up after this long" default:"30s"`
}

func (s *SearchCmd) Run(ctx context.Context) error {
	if strings.TrimSpace(s.Query) == "" {
		return fmt.Errorf("search text is required")
	}
	if s.Pages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", s.Pages)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	searcher := &reportingSearcher{client: newClient(cfg, slog.Default())}
	r := reactor.New(searcher)
	defer r.Close()

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	r.Send(reactor.UpdateQueryText(s.Query))
	state, err := r.Settled(ctx)
	for page := 1; err == nil && page < s.Pages && state.NextPage != nil; page++ {
		r.Send(reactor.LoadNextPage())
		state, err = r.Settled(ctx)
	}
	if err != nil {
		return fmt.Errorf("search %q: %w", s.Query, err)
	}
	if searchErr := searcher.Err(); searchErr != nil {
		if len(state.Movies) == 0 {
			return fmt.Errorf("search %q: %w", s.Query, searchErr)
		}
		slog.Warn("Stopped fetching pages early", "query", s.Query, "movies", len(state.Movies), "error", searchErr)
	}

	if s.JSON {
		return writeJSON(stdout, state)
	}
	return writeText(stdout, state)
}

// reportingSearcher degrades failures to empty pages like Client.Search,
// but remembers the last error so the command can report it.
type reportingSearcher struct {
	client *naver.Client

	mu  sync.Mutex
	err error
}

func (s *reportingSearcher) Search(ctx context.Context, query string, page int) naver.PageResult {
	result, err := s.client.SearchPage(ctx, query, page)
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return naver.EmptyPage()
	}
	return result
}

func (s *reportingSearcher) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

type searchOutput struct {
	Query    string        `json:"query"`
	Movies   []naver.Movie `json:"movies"`
	NextPage *int          `json:"nextPage"`
}

func writeJSON(w io.Writer, state reactor.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(searchOutput{
		Query:    state.QueryText(),
		Movies:   state.Movies,
		NextPage: state.NextPage,
	})
}

func writeText(w io.Writer, state reactor.State) error {
	more := "end of results"
	if state.NextPage != nil {
		more = "more available"
	}
	if _, err := fmt.Fprintf(w, "Results for %q: %d movies (%s)\n", state.QueryText(), len(state.Movies), more); err != nil {
		return err
	}

	for i, movie := range state.Movies {
		credits := strings.Join(append(naver.People(movie.Director), naver.People(movie.Actor)...), ", ")
		_, err := fmt.Fprintf(w, "%3d. %s (%s) %s\n     %s\n     %s\n",
			i+1, movie.DisplayTitle(), movie.Year(), movie.UserRating, credits, movie.Link)
		if err != nil {
			return err
		}
	}
	return nil
}

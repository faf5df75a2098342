package reactor

import (
	"strings"

	"github.com/lepinkainen/moviesearch/internal/naver"
)

// State is the single value the presentation layer renders.
type State struct {
	Query             *string
	Movies            []naver.Movie
	NextPage          *int
	IsLoadingNextPage bool
}

// InitialState is the state of a freshly constructed reactor.
func InitialState() State {
	return State{Movies: []naver.Movie{}}
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	movies := make([]naver.Movie, len(s.Movies))
	copy(movies, s.Movies)
	return State{
		Query:             copyString(s.Query),
		Movies:            movies,
		NextPage:          copyInt(s.NextPage),
		IsLoadingNextPage: s.IsLoadingNextPage,
	}
}

// QueryText returns the query, or "" when there is none.
func (s State) QueryText() string {
	if s.Query == nil {
		return ""
	}
	return *s.Query
}

// HasQuery reports whether the query is non-blank.
func (s State) HasQuery() bool {
	return !isBlank(s.Query)
}

func isBlank(query *string) bool {
	return query == nil || strings.TrimSpace(*query) == ""
}

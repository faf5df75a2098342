package reactor

import (
	"fmt"

	"github.com/lepinkainen/moviesearch/internal/naver"
)

// MutationKind identifies a state change.
type MutationKind int

const (
	// MutationSetQuery records the query text.
	MutationSetQuery MutationKind = iota + 1
	// MutationSetMovies replaces the list and the next page.
	MutationSetMovies
	// MutationAppendMovies extends the list and replaces the next page.
	MutationAppendMovies
	// MutationSetLoadingNextPage toggles the paging flag.
	MutationSetLoadingNextPage
)

func (k MutationKind) String() string {
	switch k {
	case MutationSetQuery:
		return "setQuery"
	case MutationSetMovies:
		return "setMovies"
	case MutationAppendMovies:
		return "appendMovies"
	case MutationSetLoadingNextPage:
		return "setLoadingNextPage"
	default:
		return fmt.Sprintf("MutationKind(%d)", int(k))
	}
}

// Mutation is a resolved state change. Only the fields relevant to Kind
// are set.
type Mutation struct {
	Kind     MutationKind
	Query    *string
	Movies   []naver.Movie
	NextPage *int
	Loading  bool
}

// SetQuery records the query text.
func SetQuery(query *string) Mutation {
	return Mutation{Kind: MutationSetQuery, Query: copyString(query)}
}

// SetMovies replaces the list with the first page of a search.
func SetMovies(movies []naver.Movie, nextPage *int) Mutation {
	return Mutation{Kind: MutationSetMovies, Movies: movies, NextPage: copyInt(nextPage)}
}

// AppendMovies extends the list with a further page.
func AppendMovies(movies []naver.Movie, nextPage *int) Mutation {
	return Mutation{Kind: MutationAppendMovies, Movies: movies, NextPage: copyInt(nextPage)}
}

// SetLoadingNextPage toggles the paging flag.
func SetLoadingNextPage(loading bool) Mutation {
	return Mutation{Kind: MutationSetLoadingNextPage, Loading: loading}
}

func (m Mutation) String() string {
	switch m.Kind {
	case MutationSetQuery:
		if m.Query == nil {
			return "setQuery(nil)"
		}
		return fmt.Sprintf("setQuery(%q)", *m.Query)
	case MutationSetMovies, MutationAppendMovies:
		next := "none"
		if m.NextPage != nil {
			next = fmt.Sprint(*m.NextPage)
		}
		return fmt.Sprintf("%s(%d movies, next=%s)", m.Kind, len(m.Movies), next)
	case MutationSetLoadingNextPage:
		return fmt.Sprintf("setLoadingNextPage(%t)", m.Loading)
	default:
		return m.Kind.String()
	}
}

package reactor

import "github.com/lepinkainen/moviesearch/internal/naver"

// Reduce folds m into state. It never mutates state's backing arrays and
// accepts every mutation.
func Reduce(state State, m Mutation) State {
	next := state
	switch m.Kind {
	case MutationSetQuery:
		next.Query = copyString(m.Query)
		if isBlank(next.Query) {
			// no query, nothing can be paging
			next.IsLoadingNextPage = false
		}
	case MutationSetMovies:
		next.Movies = append([]naver.Movie{}, m.Movies...)
		next.NextPage = copyInt(m.NextPage)
		next.IsLoadingNextPage = false
	case MutationAppendMovies:
		movies := make([]naver.Movie, 0, len(state.Movies)+len(m.Movies))
		movies = append(movies, state.Movies...)
		next.Movies = append(movies, m.Movies...)
		next.NextPage = copyInt(m.NextPage)
	case MutationSetLoadingNextPage:
		next.IsLoadingNextPage = m.Loading
	}
	return next
}

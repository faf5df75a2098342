package reactor

import "fmt"

// ActionKind identifies what an Action asks for.
type ActionKind int

const (
	// ActionUpdateQuery replaces the query and restarts the search.
	ActionUpdateQuery ActionKind = iota + 1
	// ActionLoadNextPage requests the page after the last one shown.
	ActionLoadNextPage
)

func (k ActionKind) String() string {
	switch k {
	case ActionUpdateQuery:
		return "updateQuery"
	case ActionLoadNextPage:
		return "loadNextPage"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is an intent handed to the reactor by the presentation layer.
type Action struct {
	Kind ActionKind
	// Query is set for ActionUpdateQuery. Nil means no query.
	Query *string
}

// UpdateQuery returns an updateQuery action. A nil query clears the list.
func UpdateQuery(query *string) Action {
	return Action{Kind: ActionUpdateQuery, Query: copyString(query)}
}

// UpdateQueryText is UpdateQuery for a plain string.
func UpdateQueryText(query string) Action {
	return Action{Kind: ActionUpdateQuery, Query: &query}
}

// LoadNextPage returns a loadNextPage action.
func LoadNextPage() Action {
	return Action{Kind: ActionLoadNextPage}
}

func (a Action) String() string {
	if a.Kind == ActionUpdateQuery {
		if a.Query == nil {
			return "updateQuery(nil)"
		}
		return fmt.Sprintf("updateQuery(%q)", *a.Query)
	}
	return a.Kind.String()
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

package naver

import (
	"encoding/json"
	"fmt"

	"github.com/lepinkainen/moviesearch/internal/errors"
)

// movieFields are the item keys every movie must carry, matched exactly.
var movieFields = []string{
	"title", "link", "image", "subtitle", "pubDate", "director", "actor", "userRating",
}

// DecodePage parses a response body for the given 0-based page.
//
// The body must be a JSON object. A missing "items" array is an empty page,
// not an error. Every included item must carry all eight string fields under
// their exact key names.
func DecodePage(data []byte, page int) (PageResult, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return PageResult{}, errors.NewDecodeError(err)
	}
	if envelope == nil {
		return PageResult{}, errors.NewDecodeError(fmt.Errorf("response is not a JSON object"))
	}
	if err := checkMeta(envelope); err != nil {
		return PageResult{}, err
	}

	var items []map[string]json.RawMessage
	if raw, ok := envelope["items"]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return PageResult{}, errors.NewDecodeError(fmt.Errorf("items: %w", err))
		}
	}

	movies := make([]Movie, 0, len(items))
	for i, item := range items {
		movie, err := toMovie(i, item)
		if err != nil {
			return PageResult{}, err
		}
		movies = append(movies, movie)
	}

	result := PageResult{Movies: movies}
	if len(movies) > 0 {
		result.NextPage = Page(page + 1)
	}
	return result, nil
}

// checkMeta type-checks the optional envelope fields that are present.
func checkMeta(envelope map[string]json.RawMessage) error {
	var (
		lastBuildDate *string
		count         *int
	)
	if raw, ok := envelope["lastBuildDate"]; ok {
		if err := json.Unmarshal(raw, &lastBuildDate); err != nil {
			return errors.NewDecodeError(fmt.Errorf("lastBuildDate: %w", err))
		}
	}
	for _, name := range []string{"total", "start", "display"} {
		raw, ok := envelope[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &count); err != nil {
			return errors.NewDecodeError(fmt.Errorf("%s: %w", name, err))
		}
	}
	return nil
}

func toMovie(index int, item map[string]json.RawMessage) (Movie, error) {
	if item == nil {
		return Movie{}, errors.NewFieldError(index, "item", fmt.Errorf("not a JSON object"))
	}

	values := make(map[string]string, len(movieFields))
	for _, name := range movieFields {
		raw, ok := item[name]
		if !ok {
			return Movie{}, errors.NewMissingFieldError(index, name)
		}
		var value *string
		if err := json.Unmarshal(raw, &value); err != nil {
			return Movie{}, errors.NewFieldError(index, name, err)
		}
		if value == nil {
			return Movie{}, errors.NewMissingFieldError(index, name)
		}
		values[name] = *value
	}

	return Movie{
		Title:      values["title"],
		Link:       values["link"],
		Image:      values["image"],
		Subtitle:   values["subtitle"],
		PubDate:    values["pubDate"],
		Director:   values["director"],
		Actor:      values["actor"],
		UserRating: values["userRating"],
	}, nil
}

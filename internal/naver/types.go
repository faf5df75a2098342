package naver

// Movie is one search hit as returned by the API. Title and Subtitle may
// carry <b> highlight tags around the matched query; use DisplayTitle or
// PlainText when rendering.
type Movie struct {
	Title      string `json:"title"`
	Link       string `json:"link"`
	Image      string `json:"image"`
	Subtitle   string `json:"subtitle"`
	PubDate    string `json:"pubDate"`
	Director   string `json:"director"`
	Actor      string `json:"actor"`
	UserRating string `json:"userRating"`
}

// PageResult is one decoded page. NextPage is nil when there are no
// further pages to request.
type PageResult struct {
	Movies   []Movie `json:"movies"`
	NextPage *int    `json:"nextPage,omitempty"`
}

// Empty reports whether the page carried no movies.
func (p PageResult) Empty() bool {
	return len(p.Movies) == 0
}

// Page returns a pointer to n, for building NextPage values.
func Page(n int) *int {
	return &n
}

// EmptyPage is the result every failure degrades to.
func EmptyPage() PageResult {
	return PageResult{Movies: []Movie{}}
}

package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// SearchItem is the wire form of one movie in a search response.
type SearchItem map[string]string

// Items builds n complete search items whose titles are "<prefix> <i>".
func Items(prefix string, n int) []SearchItem {
	items := make([]SearchItem, n)
	for i := range items {
		title := fmt.Sprintf("%s %d", prefix, i)
		items[i] = SearchItem{
			"title":      "<b>" + title + "</b>",
			"link":       "https://movie.example.test/" + strings.ReplaceAll(title, " ", "-"),
			"image":      "https://img.example.test/" + strings.ReplaceAll(title, " ", "-") + ".jpg",
			"subtitle":   title,
			"pubDate":    "2021",
			"director":   "Director|",
			"actor":      "Actor A|Actor B|",
			"userRating": "7.50",
		}
	}
	return items
}

// SearchBody renders items as a search response body.
func SearchBody(items []SearchItem) string {
	if items == nil {
		items = []SearchItem{}
	}
	payload := map[string]any{
		"lastBuildDate": "Thu, 29 Jul 2021 17:01:32 +0900",
		"total":         len(items),
		"start":         1,
		"display":       len(items),
		"items":         items,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// Reply is a canned response for ScriptedTransport.
type Reply struct {
	Status int
	Body   string
	Err    error
}

// ScriptedTransport is an HTTPDoer that answers from a queue of replies and
// records every request it sees. When the queue is empty it answers 200
// with an empty result.
type ScriptedTransport struct {
	mu       sync.Mutex
	replies  []Reply
	requests []*http.Request
}

// NewScriptedTransport returns a transport answering with replies in order.
func NewScriptedTransport(replies ...Reply) *ScriptedTransport {
	return &ScriptedTransport{replies: replies}
}

// Do implements the HTTPDoer interface.
func (s *ScriptedTransport) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	reply := Reply{Status: http.StatusOK, Body: SearchBody(nil)}
	if len(s.replies) > 0 {
		reply = s.replies[0]
		s.replies = s.replies[1:]
	}
	s.mu.Unlock()

	if reply.Err != nil {
		return nil, reply.Err
	}
	if reply.Status == 0 {
		reply.Status = http.StatusOK
	}
	return &http.Response{
		StatusCode: reply.Status,
		Body:       io.NopCloser(strings.NewReader(reply.Body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Request:    req,
	}, nil
}

// Requests returns the requests seen so far.
func (s *ScriptedTransport) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*http.Request(nil), s.requests...)
}

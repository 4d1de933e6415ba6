package omdb

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SearchItem is one entry of a free-text search result.
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Summary holds the few payload fields worth recording about a lookup.
// OMDb reports "not found" as a 200 with Response "False".
type Summary struct {
	Response     string       `json:"Response"`
	Error        string       `json:"Error"`
	Title        string       `json:"Title"`
	IMDbID       string       `json:"imdbID"`
	TotalResults string       `json:"totalResults"`
	Search       []SearchItem `json:"Search"`
}

// Found reports whether the upstream answered with data.
func (s Summary) Found() bool {
	return strings.EqualFold(s.Response, "True")
}

// Total returns the number of records the payload describes: totalResults
// for searches, 1 for a found single record, 0 otherwise.
func (s Summary) Total() int {
	if !s.Found() {
		return 0
	}
	if s.TotalResults != "" {
		if n, err := strconv.Atoi(s.TotalResults); err == nil {
			return n
		}
	}
	if len(s.Search) > 0 {
		return len(s.Search)
	}
	return 1
}

// Summarize decodes body leniently; a payload that is not an object yields a zero Summary.
func Summarize(body []byte) Summary {
	var s Summary
	if err := json.Unmarshal(body, &s); err != nil {
		return Summary{}
	}
	return s
}

package omdb

import (
	"net/url"
	"strings"
)

// Mode identifies which upstream lookup a query performs.
type Mode string

const (
	ModeIdentifier Mode = "identifier"
	ModeTitle      Mode = "title"
	ModeSearch     Mode = "search"
	ModeDefault    Mode = "default"
)

const (
	DefaultSearchTerm = "marvel"
	DefaultPage       = "1"
)

// Params are the inbound search parameters. An empty field is treated as absent.
type Params struct {
	IMDbID string
	Title  string
	Search string
	Year   string
	Genre  string
	Page   string
}

// ParamsFromValues reads the inbound query string vocabulary
// (imdbId, title, search, year, genre, page). Values are trimmed, so a
// whitespace-only value counts as absent and falls through to the next mode.
func ParamsFromValues(v url.Values) Params {
	return Params{
		IMDbID: strings.TrimSpace(v.Get("imdbId")),
		Title:  strings.TrimSpace(v.Get("title")),
		Search: strings.TrimSpace(v.Get("search")),
		Year:   strings.TrimSpace(v.Get("year")),
		Genre:  strings.TrimSpace(v.Get("genre")),
		Page:   strings.TrimSpace(v.Get("page")),
	}
}

// Query is an upstream request expressed in the upstream parameter names.
// The access credential is added by the Client when the URL is built.
type Query struct {
	Mode   Mode
	Values url.Values
}

// BuildQuery selects exactly one mode, first match wins:
// identifier, exact title, free text, then the default search term.
//
// Genre only narrows free-text results to the "movie" type because the
// upstream search endpoint has no genre filter.
func BuildQuery(p Params, defaultTerm string) Query {
	values := url.Values{}
	page := p.Page
	if page == "" {
		page = DefaultPage
	}

	switch {
	case p.IMDbID != "":
		values.Set("i", p.IMDbID)
		return Query{Mode: ModeIdentifier, Values: values}
	case p.Title != "":
		values.Set("t", p.Title)
		return Query{Mode: ModeTitle, Values: values}
	case p.Search != "":
		values.Set("s", p.Search)
		values.Set("page", page)
		if p.Year != "" {
			values.Set("y", p.Year)
		}
		if p.Genre != "" {
			values.Set("type", "movie")
		}
		return Query{Mode: ModeSearch, Values: values}
	}

	if strings.TrimSpace(defaultTerm) == "" {
		defaultTerm = DefaultSearchTerm
	}
	values.Set("s", defaultTerm)
	values.Set("page", page)
	return Query{Mode: ModeDefault, Values: values}
}

// Term is the identifier, title or search text the query looks up.
func (q Query) Term() string {
	for _, key := range []string{"i", "t", "s"} {
		if v := q.Values.Get(key); v != "" {
			return v
		}
	}
	return ""
}

// Page is the requested result page, empty for single-record modes.
func (q Query) Page() string {
	return q.Values.Get("page")
}

package omdb

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQuery_IdentifierWins(t *testing.T) {
	inputs := []Params{
		{IMDbID: "tt0848228"},
		{IMDbID: "tt0848228", Title: "The Avengers"},
		{IMDbID: "tt0848228", Search: "avengers", Year: "2012", Genre: "Action", Page: "3"},
	}
	for _, p := range inputs {
		q := BuildQuery(p, DefaultSearchTerm)
		assert.Equal(t, ModeIdentifier, q.Mode)
		assert.Equal(t, url.Values{"i": {"tt0848228"}}, q.Values)
	}
}

func TestBuildQuery_TitleBeforeSearch(t *testing.T) {
	q := BuildQuery(Params{Title: "Inception", Search: "dream", Page: "2"}, DefaultSearchTerm)

	assert.Equal(t, ModeTitle, q.Mode)
	assert.Equal(t, url.Values{"t": {"Inception"}}, q.Values)
	assert.Equal(t, "Inception", q.Term())
	assert.Equal(t, "", q.Page())
}

func TestBuildQuery_Search(t *testing.T) {
	t.Run("defaults page", func(t *testing.T) {
		q := BuildQuery(Params{Search: "godfather"}, DefaultSearchTerm)
		assert.Equal(t, ModeSearch, q.Mode)
		assert.Equal(t, url.Values{"s": {"godfather"}, "page": {"1"}}, q.Values)
	})

	t.Run("year filter", func(t *testing.T) {
		q := BuildQuery(Params{Search: "2023", Year: "2023", Page: "4"}, DefaultSearchTerm)
		assert.Equal(t, url.Values{"s": {"2023"}, "page": {"4"}, "y": {"2023"}}, q.Values)
	})

	t.Run("genre narrows to movie type", func(t *testing.T) {
		q := BuildQuery(Params{Search: "alien", Genre: "Horror"}, DefaultSearchTerm)
		assert.Equal(t, "movie", q.Values.Get("type"))
		for key, vals := range q.Values {
			for _, v := range vals {
				assert.NotEqual(t, "Horror", v, "genre leaked into %s", key)
			}
		}
	})
}

func TestBuildQuery_DefaultFallback(t *testing.T) {
	inputs := []Params{
		{},
		{Year: "1999"},
		{Genre: "Drama"},
		{Year: "1999", Genre: "Drama"},
	}
	want := url.Values{"s": {"marvel"}, "page": {"1"}}
	for _, p := range inputs {
		q := BuildQuery(p, DefaultSearchTerm)
		assert.Equal(t, ModeDefault, q.Mode)
		assert.Equal(t, want, q.Values)
	}

	q := BuildQuery(Params{}, "  ")
	assert.Equal(t, "marvel", q.Term())

	q = BuildQuery(Params{Page: "2"}, "star wars")
	assert.Equal(t, url.Values{"s": {"star wars"}, "page": {"2"}}, q.Values)
}

func TestParamsFromValues(t *testing.T) {
	v, err := url.ParseQuery("imdbId=%20tt1375666%20&title=&search=dream&year=2010&genre=Sci-Fi&page=2")
	assert.NoError(t, err)

	p := ParamsFromValues(v)
	assert.Equal(t, Params{
		IMDbID: "tt1375666",
		Search: "dream",
		Year:   "2010",
		Genre:  "Sci-Fi",
		Page:   "2",
	}, p)
}

func TestParamsFromValues_WhitespaceIsAbsent(t *testing.T) {
	q := BuildQuery(ParamsFromValues(url.Values{"search": {" "}, "title": {"\t"}}), DefaultSearchTerm)

	assert.Equal(t, ModeDefault, q.Mode)
	assert.Equal(t, DefaultSearchTerm, q.Term())
}

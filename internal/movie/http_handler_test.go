package movie

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"movieapi/internal/lookup"
	"movieapi/internal/platform/omdb"
	"movieapi/internal/testutil"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, l lookup.Lookup) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func omdbResponder(q url.Values) (int, string) {
	switch {
	case q.Get("i") == "tt0133093":
		return http.StatusOK, `{"Title":"The Matrix","imdbID":"tt0133093","Response":"True"}`
	case q.Get("s") == "broken":
		return http.StatusOK, `not json`
	case q.Get("s") == "limited":
		return http.StatusUnauthorized, "Request limit reached!"
	default:
		return http.StatusOK, `{"Search":[{"Title":"Iron Man","imdbID":"tt0371746"}],"totalResults":"57","Response":"True"}`
	}
}

func newHandler(t *testing.T, u *testutil.OMDbStub, rec lookup.Recorder) *HTTPHandler {
	t.Helper()
	client, err := omdb.New("secret-key", u.URL(), omdb.WithHTTPClient(u.Client()))
	require.NoError(t, err)
	return NewHTTPHandler(client, rec)
}

func TestHTTPHandler_Search(t *testing.T) {
	u := testutil.NewOMDbStub(t, omdbResponder)

	t.Run("default query when nothing is named", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("Record", mock.Anything, mock.MatchedBy(func(l lookup.Lookup) bool {
			return l.Mode == "default" && l.Term == "marvel" && l.Outcome == "success" && l.TotalResults == 57
		})).Return(nil).Once()
		h := newHandler(t, u, rec)

		w := httptest.NewRecorder()
		h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, "marvel", u.LastQuery().Get("s"))
		assert.Equal(t, "1", u.LastQuery().Get("page"))
		assert.Equal(t, "secret-key", u.LastQuery().Get("apikey"))
		rec.AssertExpectations(t)
	})

	t.Run("identifier wins over other fields", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("Record", mock.Anything, mock.Anything).Return(nil)
		h := newHandler(t, u, rec)

		w := httptest.NewRecorder()
		h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies?imdbId=tt0133093&title=Heat&search=x&genre=Action", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"Title":"The Matrix","imdbID":"tt0133093","Response":"True"}`, w.Body.String())
		assert.Empty(t, u.LastQuery().Get("t"))
		assert.Empty(t, u.LastQuery().Get("s"))
	})

	t.Run("genre narrows type", func(t *testing.T) {
		h := newHandler(t, u, nil)

		w := httptest.NewRecorder()
		h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies?search=alien&genre=Horror&year=1979&page=2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "movie", u.LastQuery().Get("type"))
		assert.Equal(t, "1979", u.LastQuery().Get("y"))
		assert.Equal(t, "2", u.LastQuery().Get("page"))
		assert.Empty(t, u.LastQuery().Get("genre"))
	})

	t.Run("upstream rejection keeps its status", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("Record", mock.Anything, mock.MatchedBy(func(l lookup.Lookup) bool {
			return l.Outcome == "upstream_error" && l.StatusCode == http.StatusUnauthorized
		})).Return(nil).Once()
		h := newHandler(t, u, rec)

		w := httptest.NewRecorder()
		h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies?search=limited", nil))

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Equal(t, "False", res.Body["Response"])
		assert.Equal(t, "API error: 401 Unauthorized", res.Body["Error"])
		rec.AssertExpectations(t)
	})

	t.Run("malformed payload", func(t *testing.T) {
		h := newHandler(t, u, nil)

		w := httptest.NewRecorder()
		h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies?search=broken", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"Response":"False","Error":"Invalid JSON response from API"}`, w.Body.String())
	})

	t.Run("audit failure does not change the response", func(t *testing.T) {
		rec := new(mockRecorder)
		rec.On("Record", mock.Anything, mock.Anything).Return(errors.New("db down"))
		h := newHandler(t, u, rec)

		w := httptest.NewRecorder()
		h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies?search=iron", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Iron Man")
		rec.AssertExpectations(t)
	})
}

func TestHTTPHandler_Search_TransportFailure(t *testing.T) {
	u := testutil.NewOMDbStub(t, omdbResponder)
	h := newHandler(t, u, nil)
	u.Server.Close()

	w := httptest.NewRecorder()
	h.Search(w, httptest.NewRequest(http.MethodGet, "/api/movies?title=Heat", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"Response":"False","Error":"Failed to fetch movie data"}`, w.Body.String())
}

func TestHTTPHandler_Get(t *testing.T) {
	u := testutil.NewOMDbStub(t, omdbResponder)
	rec := new(mockRecorder)
	rec.On("Record", mock.Anything, mock.MatchedBy(func(l lookup.Lookup) bool {
		return l.Mode == "identifier" && l.Term == "tt0133093" && l.TotalResults == 1
	})).Return(nil).Once()
	h := newHandler(t, u, rec)

	r := httptest.NewRequest(http.MethodGet, "/api/movies/tt0133093", nil)
	r.SetPathValue("imdbId", "tt0133093")
	w := httptest.NewRecorder()

	h.Get(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tt0133093", u.LastQuery().Get("i"))
	rec.AssertExpectations(t)
}

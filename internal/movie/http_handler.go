// Package movie serves the movie lookup route consumed by the browser pages.
package movie

import (
	"context"
	"net/http"
	"strings"
	"time"

	"movieapi/internal/httpx"
	"movieapi/internal/logger"
	"movieapi/internal/lookup"
	"movieapi/internal/metrics"
	"movieapi/internal/platform/omdb"
)

const recordTimeout = 2 * time.Second

// Client translates and fetches upstream queries.
type Client interface {
	omdb.Fetcher
	Query(p omdb.Params) omdb.Query
}

type HTTPHandler struct {
	client   Client
	recorder lookup.Recorder
}

func NewHTTPHandler(client Client, recorder lookup.Recorder) *HTTPHandler {
	if recorder == nil {
		recorder = lookup.Discard
	}
	return &HTTPHandler{client: client, recorder: recorder}
}

// Search handles GET /api/movies
// @Summary Look up movies
// @Description Relays a lookup to the movie metadata API. Exactly one mode runs,
// @Description by priority: imdbId, title, search, then the default search term.
// @Tags movies
// @Produce json
// @Param imdbId query string false "IMDb identifier"
// @Param title query string false "Exact title"
// @Param search query string false "Free-text search"
// @Param year query string false "Release year (search mode only)"
// @Param genre query string false "Restricts search results to movies"
// @Param page query string false "Result page" default(1)
// @Success 200 {object} object "Upstream payload, unmodified"
// @Failure 500 {object} omdb.FailureEnvelope
// @Router /api/movies [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, omdb.ParamsFromValues(r.URL.Query()))
}

// Get handles GET /api/movies/{imdbId}
// @Summary Get a movie by IMDb identifier
// @Tags movies
// @Produce json
// @Param imdbId path string true "IMDb identifier"
// @Success 200 {object} object "Upstream payload, unmodified"
// @Failure 500 {object} omdb.FailureEnvelope
// @Router /api/movies/{imdbId} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	params := omdb.ParamsFromValues(r.URL.Query())
	params.IMDbID = strings.TrimSpace(r.PathValue("imdbId"))
	h.relay(w, r, params)
}

func (h *HTTPHandler) relay(w http.ResponseWriter, r *http.Request, params omdb.Params) {
	ctx := r.Context()
	q := h.client.Query(params)

	done := logger.Track(ctx, "movie lookup")
	res := omdb.Relay(ctx, h.client, q)
	done()

	metrics.RelayTotal.WithLabelValues(string(q.Mode), string(res.Outcome)).Inc()
	metrics.UpstreamDuration.WithLabelValues(string(q.Mode)).Observe(res.Duration.Seconds())

	httpx.RawJSON(w, r, res.StatusCode, res.Body)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	h.record(r, res)
}

// record runs after the response is flushed; its failures never reach the caller.
func (h *HTTPHandler) record(r *http.Request, res omdb.Result) {
	l := lookup.Lookup{
		RequestID:      httpx.RequestIDFrom(r),
		Mode:           string(res.Query.Mode),
		Term:           res.Query.Term(),
		Page:           res.Query.Page(),
		Outcome:        string(res.Outcome),
		StatusCode:     res.StatusCode,
		UpstreamStatus: res.UpstreamStatus,
		DurationMS:     res.Duration.Milliseconds(),
	}
	if res.OK() {
		l.TotalResults = omdb.Summarize(res.Body).Total()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), recordTimeout)
	defer cancel()
	if err := h.recorder.Record(ctx, l); err != nil {
		logger.For(r.Context()).WithError(err).Warn("record lookup")
	}
}

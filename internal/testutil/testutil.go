// Package testutil provides HTTP fixtures shared by handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Responder answers a stubbed upstream call with a status and body.
type Responder func(q url.Values) (status int, body string)

// OMDbStub is a fake movie metadata API that records what it was asked.
type OMDbStub struct {
	Server *httptest.Server

	mu    sync.Mutex
	last  url.Values
	calls int
}

// NewOMDbStub starts a stub server that is closed when the test ends.
func NewOMDbStub(t testing.TB, respond Responder) *OMDbStub {
	t.Helper()
	s := &OMDbStub{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s.mu.Lock()
		s.last = q
		s.calls++
		s.mu.Unlock()

		status, body := respond(q)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(s.Server.Close)
	return s
}

func (s *OMDbStub) URL() string {
	return s.Server.URL
}

func (s *OMDbStub) Client() *http.Client {
	return s.Server.Client()
}

// LastQuery returns the query string of the most recent call.
func (s *OMDbStub) LastQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *OMDbStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StaticResponder always answers with the same status and body.
func StaticResponder(status int, body string) Responder {
	return func(url.Values) (int, string) {
		return status, body
	}
}

// RecordResponse is a decoded view of a recorded HTTP response.
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]any
}

// RecordHTTPResponse decodes the recorder's body as a JSON object when possible.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]any
	if len(bodyBytes) > 0 {
		_ = json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

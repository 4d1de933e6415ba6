package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"movieapi/internal/logger"
)

// Outcome classifies how a relayed call ended.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeTransportError  Outcome = "transport_error"
	OutcomeUpstreamError   Outcome = "upstream_error"
	OutcomeInvalidPayload  Outcome = "invalid_payload"
	OutcomePayloadTooLarge Outcome = "payload_too_large"
)

// FailureEnvelope is the body returned to callers when a lookup fails.
type FailureEnvelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func NewFailureEnvelope(message string) FailureEnvelope {
	return FailureEnvelope{Response: "False", Error: message}
}

// Result is a relayed response ready to be written to the caller.
// StatusCode is 200 only for OutcomeSuccess; Body is then the upstream
// payload byte for byte, otherwise an encoded FailureEnvelope.
type Result struct {
	Query          Query
	Outcome        Outcome
	StatusCode     int
	UpstreamStatus int
	Body           json.RawMessage
	Duration       time.Duration
	Err            error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Fetcher performs the outbound call for a query.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]byte, error)
}

// Relay runs one outbound call through f and maps the outcome to a caller
// facing status and body. It never returns an error; failures become envelopes.
func Relay(ctx context.Context, f Fetcher, q Query) Result {
	start := time.Now()
	body, err := f.Fetch(ctx, q)
	res := Result{Query: q, Duration: time.Since(start), Err: err}

	log := logger.For(ctx).WithField("mode", q.Mode)

	var upstreamErr *UpstreamError
	switch {
	case err == nil:
		res.Outcome = OutcomeSuccess
		res.StatusCode = http.StatusOK
		res.UpstreamStatus = http.StatusOK
		res.Body = body
		return res
	case errors.As(err, &upstreamErr):
		log.WithError(err).Warn("omdb rejected request")
		res.Outcome = OutcomeUpstreamError
		res.StatusCode = upstreamErr.StatusCode
		res.UpstreamStatus = upstreamErr.StatusCode
		res.Body = encodeFailure(upstreamErr.Message())
	case errors.Is(err, ErrPayloadTooLarge):
		log.WithError(err).Error("omdb payload too large")
		res.Outcome = OutcomePayloadTooLarge
		res.StatusCode = http.StatusBadGateway
		res.UpstreamStatus = http.StatusOK
		res.Body = encodeFailure(MsgPayloadTooLarge)
	case errors.Is(err, ErrInvalidPayload):
		log.WithError(err).Error("omdb returned malformed payload")
		res.Outcome = OutcomeInvalidPayload
		res.StatusCode = http.StatusInternalServerError
		res.UpstreamStatus = http.StatusOK
		res.Body = encodeFailure(MsgInvalidPayload)
	default:
		log.WithError(err).Error("omdb request failed")
		res.Outcome = OutcomeTransportError
		res.StatusCode = http.StatusInternalServerError
		res.Body = encodeFailure(MsgFetchFailed)
	}
	return res
}

func encodeFailure(message string) json.RawMessage {
	b, err := json.Marshal(NewFailureEnvelope(message))
	if err != nil {
		return json.RawMessage(`{"Response":"False","Error":"Failed to fetch movie data"}`)
	}
	return b
}

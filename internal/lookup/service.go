package lookup

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100

	maxTermLen = 256
)

// Recorder receives one Lookup per relayed request.
type Recorder interface {
	Record(ctx context.Context, l Lookup) error
}

type discard struct{}

func (discard) Record(context.Context, Lookup) error { return nil }

// Discard is the Recorder used when no audit storage is configured.
var Discard Recorder = discard{}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Record stores l, filling in the ID and timestamp when unset.
func (s *Service) Record(ctx context.Context, l Lookup) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now().UTC()
	}
	if len(l.Term) > maxTermLen {
		l.Term = strings.ToValidUTF8(l.Term[:maxTermLen], "")
	}
	return s.repo.Create(ctx, &l)
}

// Recent lists the newest lookups first. limit is clamped to [1, MaxLimit];
// zero or negative means DefaultLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	items, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Lookup{}
	}
	return items, nil
}

package lookup

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	t.Run("fills id and timestamp", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *Lookup) error {
			assert.NotEmpty(t, l.ID)
			assert.Equal(t, fixed, l.CreatedAt)
			assert.Equal(t, "search", l.Mode)
			return nil
		})

		err := svc.Record(context.Background(), Lookup{Mode: "search", Term: "alien", Outcome: "success"})
		assert.NoError(t, err)
	})

	t.Run("truncates long terms", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *Lookup) error {
			assert.Len(t, l.Term, maxTermLen)
			return nil
		})

		err := svc.Record(context.Background(), Lookup{ID: "fixed", Term: strings.Repeat("x", 1000)})
		assert.NoError(t, err)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := svc.Record(context.Background(), Lookup{Mode: "default"})
		assert.Error(t, err)
	})
}

func TestService_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().ListRecent(ctx, DefaultLimit).Return(nil, nil)
	items, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	mockRepo.EXPECT().ListRecent(ctx, MaxLimit).Return([]Lookup{{ID: "a"}}, nil)
	items, err = svc.Recent(ctx, 5000)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	mockRepo.EXPECT().ListRecent(ctx, 7).Return(nil, errors.New("db down"))
	_, err = svc.Recent(ctx, 7)
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NoError(t, Discard.Record(context.Background(), Lookup{}))
}

package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/workdesk-service/internal/domain"
)

type fakeNotificationRepo struct {
	mu      sync.Mutex
	cutoffs []time.Time
	removed int64
	err     error
}

func (r *fakeNotificationRepo) Create(context.Context, *domain.Notification) error { return nil }

func (r *fakeNotificationRepo) ListByAccount(context.Context, int64) ([]domain.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) MarkRead(context.Context, int64, int64) error { return nil }

func (r *fakeNotificationRepo) Delete(context.Context, int64, int64) error { return nil }

func (r *fakeNotificationRepo) PurgeRead(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, cutoff)
	return r.removed, r.err
}

func (r *fakeNotificationRepo) calls() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Time{}, r.cutoffs...)
}

func TestPurgeUsesRetentionCutoff(t *testing.T) {
	repo := &fakeNotificationRepo{removed: 3}
	purger := NewNotificationPurger(repo, time.Hour, 48*time.Hour, zap.NewNop())

	purger.purge(context.Background())

	calls := repo.calls()
	require.Len(t, calls, 1)
	want := time.Now().Add(-48 * time.Hour)
	assert.WithinDuration(t, want, calls[0], 5*time.Second)
}

func TestPurgeSurvivesRepositoryError(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("connection reset")}
	purger := NewNotificationPurger(repo, time.Hour, time.Hour, zap.NewNop())

	purger.purge(context.Background())
	purger.purge(context.Background())

	assert.Len(t, repo.calls(), 2)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := &fakeNotificationRepo{}
	purger := NewNotificationPurger(repo, 10*time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		purger.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	assert.NotEmpty(t, repo.calls())
}

func TestNewNotificationPurgerDefaults(t *testing.T) {
	purger := NewNotificationPurger(&fakeNotificationRepo{}, 0, 0, zap.NewNop())
	assert.Equal(t, time.Hour, purger.interval)
	assert.Equal(t, 30*24*time.Hour, purger.retention)
}

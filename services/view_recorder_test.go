package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"dugun.link/models"
	"dugun.link/pkg/metrics"
	"dugun.link/repositories"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingViewRepo Create çağrılarını release kapanana kadar bekletir.
type blockingViewRepo struct {
	repositories.IInvitationViewRepository
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	saved []uint
}

func newBlockingViewRepo() *blockingViewRepo {
	return &blockingViewRepo{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (r *blockingViewRepo) Create(_ context.Context, view *models.InvitationView) error {
	r.started <- struct{}{}
	<-r.release
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, view.InvitationID)
	return nil
}

func (r *blockingViewRepo) savedIDs() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint(nil), r.saved...)
}

func TestRecorderDropsWhenQueueIsFull(t *testing.T) {
	repo := newBlockingViewRepo()
	recorder := NewAsyncViewRecorder(repo, 1)
	dropped := testutil.ToFloat64(metrics.ViewsDropped)

	start := time.Now()
	recorder.Record(models.InvitationView{InvitationID: 1})
	select {
	case <-repo.started:
	case <-time.After(time.Second):
		t.Fatal("worker kaydı almadı")
	}
	recorder.Record(models.InvitationView{InvitationID: 2})
	recorder.Record(models.InvitationView{InvitationID: 3})
	assert.Less(t, time.Since(start), 500*time.Millisecond, "Record çağıranı bloklamamalı")
	assert.Equal(t, dropped+1, testutil.ToFloat64(metrics.ViewsDropped))

	close(repo.release)
	ctx, cancel := contextWithTimeout(time.Second)
	defer cancel()
	require.NoError(t, recorder.Close(ctx))
	assert.Equal(t, []uint{1, 2}, repo.savedIDs())
}

func TestRecorderCloseDrainsQueue(t *testing.T) {
	repo := newBlockingViewRepo()
	close(repo.release)
	recorder := NewAsyncViewRecorder(repo, 16)

	for i := uint(1); i <= 5; i++ {
		recorder.Record(models.InvitationView{InvitationID: i})
	}
	ctx, cancel := contextWithTimeout(time.Second)
	defer cancel()
	require.NoError(t, recorder.Close(ctx))
	assert.Equal(t, []uint{1, 2, 3, 4, 5}, repo.savedIDs())

	dropped := testutil.ToFloat64(metrics.ViewsDropped)
	recorder.Record(models.InvitationView{InvitationID: 6})
	assert.Equal(t, dropped+1, testutil.ToFloat64(metrics.ViewsDropped))
	assert.Len(t, repo.savedIDs(), 5)

	require.NoError(t, recorder.Close(ctx), "ikinci Close hata vermemeli")
}

func TestRecorderCloseHonoursDeadline(t *testing.T) {
	repo := newBlockingViewRepo()
	recorder := NewAsyncViewRecorder(repo, 4)
	recorder.Record(models.InvitationView{InvitationID: 1})
	<-repo.started

	ctx, cancel := contextWithTimeout(20 * time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, recorder.Close(ctx), context.DeadlineExceeded)
	close(repo.release)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/metrics"
	"dugun.link/repositories"

	"go.uber.org/zap"
)

const viewPersistTimeout = 5 * time.Second

// ViewRecorder sayfa görüntülemelerini kaydeder. Record çağıranı bloklamamalı ve
// hata döndürmemelidir; kayıt kaybı sayfanın gösterilmesini etkilemez.
type ViewRecorder interface {
	Record(view models.InvitationView)
}

// AsyncViewRecorder görüntülemeleri sınırlı bir kuyruğa alır ve tek bir worker ile yazar.
// Kuyruk doluysa kayıt atılır ve sayaç artırılır.
type AsyncViewRecorder struct {
	repo   repositories.IInvitationViewRepository
	queue  chan models.InvitationView
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewAsyncViewRecorder(repo repositories.IInvitationViewRepository, queueSize int) *AsyncViewRecorder {
	if queueSize <= 0 {
		queueSize = 1
	}
	r := &AsyncViewRecorder{
		repo:  repo,
		queue: make(chan models.InvitationView, queueSize),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *AsyncViewRecorder) Record(view models.InvitationView) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		metrics.ViewsDropped.Inc()
		return
	}
	select {
	case r.queue <- view:
	default:
		metrics.ViewsDropped.Inc()
		configslog.Log.Warn("Görüntüleme kuyruğu dolu, kayıt atıldı", zap.Uint("invitationID", view.InvitationID))
	}
}

func (r *AsyncViewRecorder) run() {
	defer close(r.done)
	for view := range r.queue {
		r.persist(view)
	}
}

func (r *AsyncViewRecorder) persist(view models.InvitationView) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.ViewRecordFailures.Inc()
			configslog.Log.Error("Görüntüleme kaydedilirken panic", zap.Uint("invitationID", view.InvitationID), zap.Any("panic", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), viewPersistTimeout)
	defer cancel()
	if err := r.repo.Create(ctx, &view); err != nil {
		metrics.ViewRecordFailures.Inc()
		configslog.Log.Error("Görüntüleme kaydedilemedi", zap.Uint("invitationID", view.InvitationID), zap.Error(err))
		return
	}
	metrics.ViewsRecorded.Inc()
}

// Close yeni kayıt almayı durdurur ve kuyrukta kalanları yazar. ctx süresi dolarsa
// kalan kayıtlar beklenmeden döner.
func (r *AsyncViewRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("görüntüleme kuyruğu boşaltılamadı: %w", ctx.Err())
	}
}

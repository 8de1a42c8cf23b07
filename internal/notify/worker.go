// Package notify отправляет уведомления о бронях в фоне.
// Вызовы Notify* не блокируют: задача ставится в ограниченную очередь,
// при переполнении отбрасывается с записью в лог.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notificationservice"
)

// Исходы отправки для метрик
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

// WorkerPool пул воркеров, отправляющих уведомления
type WorkerPool struct {
	size    int
	jobs    chan notificationservice.Notification
	sender  Sender
	timeout time.Duration
	log     Logger
	metrics MetricsObserver
	wg      sync.WaitGroup
}

// NewWorkerPool создает пул из size воркеров с очередью queueSize.
// metrics может быть nil.
func NewWorkerPool(size, queueSize int, sender Sender, timeout time.Duration, log Logger, metrics MetricsObserver) *WorkerPool {
	if size < 1 {
		size = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan notificationservice.Notification, queueSize),
		sender:  sender,
		timeout: timeout,
		log:     log,
		metrics: metrics,
	}
}

// Start запускает воркеры. Они работают до отмены ctx,
// после чего дочитывают уже поставленные задачи.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

// Wait ждет завершения воркеров после отмены контекста Start
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	for {
		select {
		case n := <-wp.jobs:
			wp.send(context.Background(), n)
		case <-ctx.Done():
			wp.drain()
			wp.log.Info("Notify: worker %d stopped", id)
			return
		}
	}
}

func (wp *WorkerPool) drain() {
	for {
		select {
		case n := <-wp.jobs:
			wp.send(context.Background(), n)
		default:
			return
		}
	}
}

func (wp *WorkerPool) send(ctx context.Context, n notificationservice.Notification) {
	if wp.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wp.timeout)
		defer cancel()
	}

	if err := wp.sender.Send(ctx, n); err != nil {
		wp.log.Error("Notify: failed to send %s for reservation id=%d: %v", n.Kind, n.Reservation.ID, err)
		wp.metrics.ObserveNotification(string(n.Kind), OutcomeFailed)
		return
	}

	wp.metrics.ObserveNotification(string(n.Kind), OutcomeSent)
}

func (wp *WorkerPool) enqueue(n notificationservice.Notification) {
	select {
	case wp.jobs <- n:
	default:
		wp.log.Warn("Notify: queue is full, dropping %s for reservation id=%d", n.Kind, n.Reservation.ID)
		wp.metrics.ObserveNotification(string(n.Kind), OutcomeDropped)
	}
}

// NotifyConfirmation ставит в очередь подтверждение новой брони
func (wp *WorkerPool) NotifyConfirmation(r *domain.Reservation) {
	wp.enqueue(notificationservice.Notification{
		Kind:        notificationservice.KindConfirmation,
		Reservation: toPayload(r),
	})
}

// NotifyCancellation ставит в очередь уведомление об отмене
func (wp *WorkerPool) NotifyCancellation(r *domain.Reservation, canceledBy domain.ActorRole) {
	wp.enqueue(notificationservice.Notification{
		Kind:        notificationservice.KindCancellation,
		Reservation: toPayload(r),
		CanceledBy:  string(canceledBy),
		Reason:      r.CancellationReason,
	})
}

// NotifyUpdate ставит в очередь уведомление об изменении брони
func (wp *WorkerPool) NotifyUpdate(r *domain.Reservation, changes domain.ChangeSet) {
	list := make([]notificationservice.Change, len(changes))
	for i, c := range changes {
		list[i] = notificationservice.Change{
			Field:  string(c.Field),
			Before: c.Before,
			After:  c.After,
		}
	}

	wp.enqueue(notificationservice.Notification{
		Kind:        notificationservice.KindUpdate,
		Reservation: toPayload(r),
		Changes:     list,
	})
}

func toPayload(r *domain.Reservation) notificationservice.Reservation {
	return notificationservice.Reservation{
		ID:           r.ID,
		StylistID:    r.StylistID,
		CustomerID:   r.CustomerID,
		CustomerName: r.CustomerName,
		Date:         domain.DateKey(r.Date),
		StartTime:    r.StartTime.String(),
		EndTime:      r.EndTime.String(),
		ServiceNames: r.ServiceNames,
	}
}

package notifier

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Sender interface {
	Send(alert Alert) error
}

// Deduper remembers which alerts were already sent. cache.Cache satisfies it.
type Deduper interface {
	SetIfAbsent(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

// Dispatcher queues alerts and delivers them from a background worker.
type Dispatcher struct {
	queue     chan Alert
	sender    Sender
	dedupe    Deduper
	dedupeTTL time.Duration
	log       *zap.Logger
}

func NewDispatcher(sender Sender, dedupe Deduper, dedupeTTL time.Duration, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		queue:     make(chan Alert, 64),
		sender:    sender,
		dedupe:    dedupe,
		dedupeTTL: dedupeTTL,
		log:       log,
	}
}

// Raise enqueues alert. Alerts without a recipient and alerts raised while the
// queue is full are dropped.
func (d *Dispatcher) Raise(_ context.Context, alert Alert) {
	if alert.To == "" {
		d.log.Debug("alert dropped, hospital has no contact email",
			zap.String("hospital_id", alert.HospitalID), zap.String("kind", string(alert.Kind)))
		return
	}
	select {
	case d.queue <- alert:
	default:
		d.log.Warn("alert queue full, dropping alert",
			zap.String("hospital_id", alert.HospitalID), zap.String("kind", string(alert.Kind)))
	}
}

// Start delivers queued alerts until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	d.log.Info("alert dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.log.Info("alert dispatcher stopped")
			return
		case alert := <-d.queue:
			d.deliver(ctx, alert)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, alert Alert) {
	fresh, err := d.dedupe.SetIfAbsent(ctx, alert.DedupeKey(), time.Now().UTC().Format(time.RFC3339), d.dedupeTTL)
	if err != nil {
		// delivered without dedupe
		d.log.Warn("alert dedupe unavailable", zap.Error(err))
	} else if !fresh {
		return
	}

	if err := d.sender.Send(alert); err != nil {
		d.log.Error("failed to deliver alert",
			zap.String("hospital_id", alert.HospitalID),
			zap.String("kind", string(alert.Kind)),
			zap.Error(err))
		return
	}
	d.log.Info("alert delivered",
		zap.String("hospital_id", alert.HospitalID),
		zap.String("kind", string(alert.Kind)))
}

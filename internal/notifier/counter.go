package notifier

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// CountQuerier re-queries the exact registration count for an event.
// Satisfied by the registration repository.
type CountQuerier interface {
	CountByEvent(eventID string) (int64, error)
}

// Counter keeps a live per-event registration count. On every change
// message it re-queries the store rather than incrementing, so it converges
// even after dropped messages.
type Counter struct {
	client  *Client
	querier CountQuerier

	mu     sync.RWMutex
	counts map[string]int64

	done   chan struct{}
	cancel context.CancelFunc
}

func NewCounter(client *Client, querier CountQuerier) *Counter {
	return &Counter{
		client:  client,
		querier: querier,
		counts:  make(map[string]int64),
		done:    make(chan struct{}),
	}
}

func (w *Counter) Start(ctx context.Context) error {
	cctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	handler := func(body []byte) error {
		var change RegistrationChange
		if err := json.Unmarshal(body, &change); err != nil {
			logrus.WithError(err).Errorf("failed to unmarshal change message: %s", string(body))
			return err
		}

		count, err := w.querier.CountByEvent(change.EventID)
		if err != nil {
			logrus.WithError(err).
				WithField("event_id", change.EventID).
				Error("failed to re-query registration count")
			return err
		}

		w.mu.Lock()
		w.counts[change.EventID] = count
		w.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"event_id": change.EventID,
			"count":    count,
		}).Debug("live registration count updated")
		return nil
	}

	if err := w.client.Consume(handler); err != nil {
		cancel()
		return err
	}

	go func() {
		defer close(w.done)
		<-cctx.Done()
		logrus.Info("registration counter stopped")
	}()

	logrus.Info("registration counter started")
	return nil
}

func (w *Counter) Stop() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}

// Count returns the live count for an event if one has been observed.
func (w *Counter) Count(eventID string) (int64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	count, ok := w.counts[eventID]
	return count, ok
}

package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/anthonycdp/autovision-project-sub001/internal/api/metrics"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists activity entries asynchronously on a fixed set of
// workers, sharded by resource id so entries for the same resource land in
// order. Persistence failures are logged and counted, never surfaced: the
// audit trail is at-most-effort by contract.
type Dispatcher struct {
	workers []chan *domain.ActivityEntry
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan *domain.ActivityEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.ActivityEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its resource.
// Non-blocking up to channelBuffer capacity; beyond that the entry is
// dropped and counted, so a slow datastore can never stall a request.
func (d *Dispatcher) Enqueue(entry *domain.ActivityEntry) {
	idx := d.shardIndex(entry.ResourceID)
	select {
	case d.workers[idx] <- entry:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityWriteFailuresTotal.Inc()
		d.log.Warn().Str("resource_id", entry.ResourceID).Str("action", entry.Action).Msg("activity queue full, entry dropped")
	}
}

// shardIndex maps a resource id deterministically to a worker index.
func (d *Dispatcher) shardIndex(resourceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(resourceID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.ActivityEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, entry); err != nil {
				metrics.ActivityWriteFailuresTotal.Inc()
				d.log.Error().Err(err).
					Str("action", entry.Action).
					Str("resource_id", entry.ResourceID).
					Int("worker_id", id).
					Msg("activity entry persistence failed")
			}
		}
	}
}

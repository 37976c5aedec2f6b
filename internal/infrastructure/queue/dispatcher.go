package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// AuditDispatcher writes auth events to the audit store off the request path.
// Events are sharded by subject key, so the trail for one login key is written
// in order.
type AuditDispatcher struct {
	workers []chan domain.AuthEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
}

var _ ports.AuditRecorder = (*AuditDispatcher)(nil)

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. They drain their queues and exit once ctx is
// cancelled; Wait blocks until they have.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *AuditDispatcher) Wait() {
	d.wg.Wait()
}

// Record enqueues e without blocking. When the shard is full the event is
// dropped and counted; auth requests never wait on the audit store.
func (d *AuditDispatcher) Record(e domain.AuthEvent) {
	idx := d.shardIndex(e.SubjectKey)
	select {
	case d.workers[idx] <- e:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsTotal.WithLabelValues(string(e.Kind), "dropped").Inc()
		d.log.Warn().Str("kind", string(e.Kind)).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a subject key deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case e := <-ch:
			d.write(context.Background(), id, e)
		}
	}
}

// drain flushes whatever is buffered at shutdown.
func (d *AuditDispatcher) drain(id int, ch <-chan domain.AuthEvent) {
	for {
		select {
		case e := <-ch:
			d.write(context.Background(), id, e)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) write(parent context.Context, id int, e domain.AuthEvent) {
	ctx, cancel := context.WithTimeout(parent, writeTimeout)
	defer cancel()

	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(d.workers[id])))
	if err := d.repo.InsertAuthEvent(ctx, e); err != nil {
		metrics.AuditEventsTotal.WithLabelValues(string(e.Kind), "error").Inc()
		d.log.Error().Err(err).
			Str("kind", string(e.Kind)).
			Int("worker_id", id).
			Msg("audit write failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues(string(e.Kind), "written").Inc()
}

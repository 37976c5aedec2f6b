package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	err    error
	block  chan struct{}
}

func (r *recordingRepo) InsertAuthEvent(_ context.Context, e domain.AuthEvent) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingRepo) snapshot() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuthEvent(nil), r.events...)
}

func TestAuditDispatcher_PreservesOrderPerKey(t *testing.T) {
	repo := &recordingRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	kinds := []domain.AuthEventKind{
		domain.EventLoginFailed,
		domain.EventLoginFailed,
		domain.EventLoginSucceeded,
	}
	for _, k := range kinds {
		d.Record(domain.AuthEvent{Kind: k, SubjectKey: "ann"})
		d.Record(domain.AuthEvent{Kind: k, SubjectKey: "bob"})
	}

	cancel()
	d.Wait()

	var ann []domain.AuthEventKind
	for _, e := range repo.snapshot() {
		if e.SubjectKey == "ann" {
			ann = append(ann, e.Kind)
		}
	}
	if len(ann) != len(kinds) {
		t.Fatalf("expected %d events for ann, got %d", len(kinds), len(ann))
	}
	for i := range kinds {
		if ann[i] != kinds[i] {
			t.Fatalf("event %d out of order: %v", i, ann)
		}
	}
	if got := len(repo.snapshot()); got != 6 {
		t.Fatalf("expected 6 events written, got %d", got)
	}
}

func TestAuditDispatcher_DropsWhenFull(t *testing.T) {
	repo := &recordingRepo{block: make(chan struct{})}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())

	// Workers not started: the buffer fills and Record must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuthEvent{Kind: domain.EventLoginFailed, SubjectKey: "ann"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full queue")
	}
	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected full buffer, got %d", got)
	}
	close(repo.block)
}

func TestAuditDispatcher_WriteErrorsAreAbsorbed(t *testing.T) {
	repo := &recordingRepo{err: errors.New("mongo down")}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Record(domain.AuthEvent{Kind: domain.EventSignup, SubjectKey: "ann"})
	cancel()
	d.Wait()

	if len(repo.snapshot()) != 0 {
		t.Fatalf("failed writes must not be recorded")
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewAuditDispatcher(8, &recordingRepo{}, zerolog.Nop())
	first := d.shardIndex("ann@x.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("ann@x.com") != first {
			t.Fatalf("shard index must be stable")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

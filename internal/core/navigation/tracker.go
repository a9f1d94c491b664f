// Package navigation tracks which screen each session is currently showing so
// that work started for a screen the user already left can be abandoned.
package navigation

import (
	"context"
	"errors"
	"sync"

	"github.com/pirates/party-console/internal/core/domain"
)

type mount struct {
	seq    uint64
	screen string
	cancel context.CancelCauseFunc
}

// Tracker keeps the mounted screen per session.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	mounts map[string]mount
}

func NewTracker() *Tracker {
	return &Tracker{mounts: make(map[string]mount)}
}

// Mount makes screen the current screen of session sid and cancels the
// context of the previous one with domain.ErrSuperseded. The returned release
// func must be called when the request for screen is done.
func (t *Tracker) Mount(ctx context.Context, sid, screen string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)

	t.mu.Lock()
	t.seq++
	seq := t.seq
	prev, hadPrev := t.mounts[sid]
	t.mounts[sid] = mount{seq: seq, screen: screen, cancel: cancel}
	t.mu.Unlock()

	if hadPrev {
		prev.cancel(domain.ErrSuperseded)
	}

	release := func() {
		t.mu.Lock()
		if cur, ok := t.mounts[sid]; ok && cur.seq == seq {
			delete(t.mounts, sid)
		}
		t.mu.Unlock()
		cancel(context.Canceled)
	}
	return ctx, release
}

// Current returns the screen mounted for sid, if any.
func (t *Tracker) Current(sid string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.mounts[sid]
	return m.screen, ok
}

// Unmount cancels whatever sid is loading, e.g. on logout.
func (t *Tracker) Unmount(sid string) {
	t.mu.Lock()
	m, ok := t.mounts[sid]
	delete(t.mounts, sid)
	t.mu.Unlock()
	if ok {
		m.cancel(domain.ErrSuperseded)
	}
}

// Superseded reports whether ctx was cancelled by a newer navigation.
func Superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), domain.ErrSuperseded)
}

// Err returns domain.ErrSuperseded when ctx was superseded and err otherwise.
// Handlers call it on a failed backend call so the result is reported as a
// stale navigation rather than a backend failure.
func Err(ctx context.Context, err error) error {
	if err != nil && Superseded(ctx) {
		return domain.ErrSuperseded
	}
	return err
}

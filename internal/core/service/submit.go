package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

const defaultSubmitTTL = 5 * time.Second

// Submitter runs state-changing calls at most once at a time per session,
// action and target.
type Submitter struct {
	guard ports.SubmitGuard
	ttl   time.Duration
	log   zerolog.Logger
}

func NewSubmitter(guard ports.SubmitGuard, ttl time.Duration, log zerolog.Logger) *Submitter {
	if ttl <= 0 {
		ttl = defaultSubmitTTL
	}
	return &Submitter{guard: guard, ttl: ttl, log: log}
}

// SubmitKey is the guard key of one submission.
func SubmitKey(sid, action string, id int64) string {
	return fmt.Sprintf("submit:%s:%s:%d", sid, action, id)
}

// Once runs fn unless the same submission is already in flight, in which case
// it returns domain.ErrDuplicateSubmission. A failing guard does not block
// the submission.
func (s *Submitter) Once(ctx context.Context, sid, action string, id int64, fn func() error) error {
	if s == nil || s.guard == nil {
		return fn()
	}
	key := SubmitKey(sid, action, id)

	acquired, err := s.guard.Acquire(ctx, key, s.ttl)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("submit guard failed, submitting anyway")
		return fn()
	}
	if !acquired {
		s.log.Debug().Str("key", key).Msg("duplicate submission rejected")
		return domain.ErrDuplicateSubmission
	}
	defer func() {
		if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("submit guard release failed")
		}
	}()
	return fn()
}

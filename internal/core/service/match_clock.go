package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pirates/party-console/internal/core/ports"
)

// MatchClock remembers when love-matching started for a party. Starts are
// kept in the session store so every console instance sees them.
type MatchClock struct {
	store ports.KVStore
	now   func() time.Time
}

func NewMatchClock(store ports.KVStore) *MatchClock {
	return &MatchClock{store: store, now: time.Now}
}

func matchKey(partyID int64) string {
	return "pirates:match:" + strconv.FormatInt(partyID, 10)
}

// Start records now as the start of matching for partyID.
func (m *MatchClock) Start(ctx context.Context, partyID int64) (time.Time, error) {
	now := m.now().UTC()
	if err := m.store.Set(ctx, matchKey(partyID), now.Format(time.RFC3339Nano)); err != nil {
		return time.Time{}, fmt.Errorf("record match start: %w", err)
	}
	return now, nil
}

// StartedAt returns the zero time when matching has not started.
func (m *MatchClock) StartedAt(ctx context.Context, partyID int64) (time.Time, error) {
	v, found, err := m.store.Get(ctx, matchKey(partyID))
	if err != nil {
		return time.Time{}, fmt.Errorf("read match start: %w", err)
	}
	if !found {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("read match start: %w", err)
	}
	return t, nil
}

func (m *MatchClock) Now() time.Time {
	return m.now()
}

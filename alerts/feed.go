// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alerts

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/polling-watch/clock"
	"github.com/danielhkuo/polling-watch/models"
)

// DefaultLimit bounds the events and notifications kept when New gets a
// non-positive limit.
const DefaultLimit = 100

// Levels
const (
	LevelWarning = "warning"
	LevelInfo    = "info"
)

type Option func(*Feed)

func WithClock(c clock.Clock) Option {
	return func(f *Feed) { f.clock = c }
}

// Feed keeps the live event feed, the notification history and the set of
// dismissed over-voting alerts. Both lists are newest first.
type Feed struct {
	mu            sync.Mutex
	clock         clock.Clock
	limit         int
	events        []models.FeedEvent
	notifications []models.Notification
	nextID        int64
	dismissed     map[string]bool
}

func New(limit int, opts ...Option) *Feed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	f := &Feed{
		clock:     clock.System{},
		limit:     limit,
		dismissed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Notify records an over-voting alert as a notification and a feed event.
// A new alert for a dismissed polling unit makes it active again.
func (f *Feed) Notify(a models.OverVotingAlert) {
	cast := humanize.Comma(int64(a.VotesCast))
	accredited := humanize.Comma(int64(a.AccreditedVoters))

	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	f.nextID++
	f.notifications = prepend(f.notifications, models.Notification{
		ID:      f.nextID,
		Message: fmt.Sprintf("Over-voting detected at %s. Votes Cast: %s, Accredited: %s.", a.PollingUnit, cast, accredited),
		Level:   LevelWarning,
		Time:    now,
	}, f.limit)
	f.events = prepend(f.events, models.FeedEvent{
		Message: fmt.Sprintf("OVER-VOTING ALERT: %s reported %s votes with only %s accredited.", a.PollingUnit, cast, accredited),
		Level:   LevelWarning,
		Time:    now,
	}, f.limit)
	delete(f.dismissed, a.PollingUnit)
}

// Post adds an informational feed event.
func (f *Feed) Post(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = prepend(f.events, models.FeedEvent{
		Message: message,
		Level:   LevelInfo,
		Time:    f.clock.Now(),
	}, f.limit)
}

func (f *Feed) Events() []models.FeedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FeedEvent{}, f.events...)
}

func (f *Feed) Notifications() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification{}, f.notifications...)
}

// Dismiss hides the over-voting alert of a polling unit.
func (f *Feed) Dismiss(pollingUnit string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed[pollingUnit] = true
	slog.Info("over-voting alert dismissed", "polling_unit", pollingUnit)
}

// ActiveOverVoting filters out incidents whose alert was dismissed.
func (f *Feed) ActiveOverVoting(incidents []models.OverVotingIncident) []models.OverVotingIncident {
	f.mu.Lock()
	defer f.mu.Unlock()

	active := []models.OverVotingIncident{}
	for _, inc := range incidents {
		if !f.dismissed[inc.PollingUnit] {
			active = append(active, inc)
		}
	}
	return active
}

func prepend[T any](list []T, item T, limit int) []T {
	list = append([]T{item}, list...)
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

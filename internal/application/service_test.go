package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeSocialGraph struct {
	mu         sync.Mutex
	byFID      map[int64]domain.Profile
	byUsername map[string]domain.Profile
	casts      map[int64][]domain.Cast
	profileErr error
	castsErr   error
	fidCalls   []int64
	nameCalls  []string
	castLimits []int
}

func (f *fakeSocialGraph) UserByFID(_ context.Context, fid int64) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fidCalls = append(f.fidCalls, fid)
	if f.profileErr != nil {
		return domain.Profile{}, f.profileErr
	}
	p, ok := f.byFID[fid]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeSocialGraph) UserByUsername(_ context.Context, username string) (domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nameCalls = append(f.nameCalls, username)
	if f.profileErr != nil {
		return domain.Profile{}, f.profileErr
	}
	p, ok := f.byUsername[username]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeSocialGraph) RecentCasts(_ context.Context, fid int64, limit int) ([]domain.Cast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.castLimits = append(f.castLimits, limit)
	if f.castsErr != nil {
		return nil, f.castsErr
	}
	return f.casts[fid], nil
}

func (f *fakeSocialGraph) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fidCalls) + len(f.nameCalls) + len(f.castLimits)
}

type fakeCounter struct {
	mu    sync.Mutex
	count uint64
	err   error
	calls int
}

func (f *fakeCounter) TransactionCount(context.Context, string) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.count, f.err
}

func (f *fakeCounter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type publishedEvent struct {
	eventType    string
	payload      []byte
	partitionKey string
}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []publishedEvent
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, payload []byte, partitionKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{eventType: eventType, payload: payload, partitionKey: partitionKey})
	return f.err
}

func (f *fakePublisher) published() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishedEvent(nil), f.events...)
}

type observation struct {
	provider, operation, outcome string
}

type recordingObserver struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recordingObserver) ObserveUpstream(provider, operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{provider, operation, outcome})
}

func (r *recordingObserver) outcomes(provider string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, o := range r.obs {
		if o.provider == provider {
			out = append(out, o.outcome)
		}
	}
	return out
}

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testDeps struct {
	social    *fakeSocialGraph
	eth       *fakeCounter
	base      *fakeCounter
	optimism  *fakeCounter
	arbitrum  *fakeCounter
	publisher *fakePublisher
	observer  *recordingObserver
}

func newTestService(social *fakeSocialGraph) (*Service, testDeps) {
	deps := testDeps{
		social:    social,
		eth:       &fakeCounter{count: 10},
		base:      &fakeCounter{count: 20},
		optimism:  &fakeCounter{count: 3},
		arbitrum:  &fakeCounter{count: 7},
		publisher: &fakePublisher{},
		observer:  &recordingObserver{},
	}
	d := Dependencies{
		Logger: discardLogger(),
		Chains: Chains{
			Ethereum: deps.eth,
			Base:     deps.base,
			Optimism: deps.optimism,
			Arbitrum: deps.arbitrum,
		},
		Publisher: deps.publisher,
		Observer:  deps.observer,
		Clock:     func() time.Time { return fixedNow },
	}
	if social != nil {
		d.SocialGraph = social
	}
	return NewService(d), deps
}

package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

const validAddress = "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb3"

func TestLookupOnchain_SumsAllChains(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(nil)

	got, err := svc.LookupOnchain(context.Background(), validAddress)
	require.NoError(t, err)
	assert.Equal(t, validAddress, got.Address)
	assert.Equal(t, domain.ChainTransactions{Ethereum: 10, Base: 20, Optimism: 3, Arbitrum: 7}, got.Transactions)
	assert.Equal(t, uint64(40), got.Total)

	events := deps.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, EventOnchainLookupCompleted, events[0].eventType)
	assert.Equal(t, validAddress, events[0].partitionKey)
}

func TestLookupOnchain_FailingChainContributesZero(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(nil)
	deps.base.err = errBoom
	deps.arbitrum.err = errBoom

	got, err := svc.LookupOnchain(context.Background(), validAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.Transactions.Ethereum)
	assert.Zero(t, got.Transactions.Base)
	assert.Equal(t, uint64(3), got.Transactions.Optimism)
	assert.Zero(t, got.Transactions.Arbitrum)
	assert.Equal(t, got.Transactions.Total(), got.Total)
	assert.Equal(t, []string{"error"}, deps.observer.outcomes("base"))
	assert.Equal(t, []string{"success"}, deps.observer.outcomes("ethereum"))
}

func TestLookupOnchain_AllChainsFail(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(nil)
	for _, c := range []*fakeCounter{deps.eth, deps.base, deps.optimism, deps.arbitrum} {
		c.err = errBoom
	}

	got, err := svc.LookupOnchain(context.Background(), validAddress)
	require.NoError(t, err)
	assert.Zero(t, got.Total)
}

func TestLookupOnchain_MissingCounterIsZero(t *testing.T) {
	t.Parallel()
	svc := NewService(Dependencies{
		Logger: discardLogger(),
		Chains: Chains{Ethereum: &fakeCounter{count: 5}},
	})

	got, err := svc.LookupOnchain(context.Background(), validAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got.Total)
}

func TestLookupOnchain_InvalidAddressNeverCallsChains(t *testing.T) {
	t.Parallel()
	for _, addr := range []string{"", "0x123", "742d35Cc6634C0532925a3b844Bc9e7595f0bEb3", "0xZZ2d35Cc6634C0532925a3b844Bc9e7595f0bEb3"} {
		svc, deps := newTestService(nil)
		_, err := svc.LookupOnchain(context.Background(), addr)
		require.ErrorIs(t, err, domain.ErrInvalidInput, addr)
		for _, c := range []*fakeCounter{deps.eth, deps.base, deps.optimism, deps.arbitrum} {
			assert.Zero(t, c.callCount(), addr)
		}
		assert.Empty(t, deps.publisher.published())
	}
}

// barrierCounter only answers once every counter sharing the barrier has been
// called, so a sequential caller times out.
type barrierCounter struct {
	arrived *sync.WaitGroup
	count   uint64
	timeout time.Duration
}

func (b barrierCounter) TransactionCount(ctx context.Context, _ string) (uint64, error) {
	b.arrived.Done()
	all := make(chan struct{})
	go func() {
		b.arrived.Wait()
		close(all)
	}()
	select {
	case <-all:
		return b.count, nil
	case <-time.After(b.timeout):
		return 0, errors.New("barrier timeout")
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestLookupOnchain_QueriesChainsConcurrently(t *testing.T) {
	t.Parallel()
	arrived := &sync.WaitGroup{}
	arrived.Add(4)
	counter := func(n uint64) barrierCounter {
		return barrierCounter{arrived: arrived, count: n, timeout: 2 * time.Second}
	}
	observer := &recordingObserver{}
	svc := NewService(Dependencies{
		Logger: discardLogger(),
		Chains: Chains{
			Ethereum: counter(1),
			Base:     counter(2),
			Optimism: counter(3),
			Arbitrum: counter(4),
		},
		Observer: observer,
	})

	start := time.Now()
	got, err := svc.LookupOnchain(context.Background(), validAddress)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.Total)
	assert.Less(t, time.Since(start), time.Second)
	for _, chain := range []string{"ethereum", "base", "optimism", "arbitrum"} {
		assert.Equal(t, []string{"success"}, observer.outcomes(chain), chain)
	}
}

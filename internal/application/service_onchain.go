package application

import (
	"context"
	"sync"
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
	"github.com/theRoadz/farcaster-neynar/internal/ports"
)

// LookupOnchain counts transactions for address on every configured chain.
// Chains are queried concurrently and a failing chain contributes zero.
func (s *Service) LookupOnchain(ctx context.Context, address string) (domain.ChainActivity, error) {
	if err := domain.ValidateAddress(address); err != nil {
		return domain.ChainActivity{}, err
	}

	type job struct {
		chain   string
		counter ports.TransactionCounter
		dst     *uint64
	}

	var txs domain.ChainTransactions
	jobs := []job{
		{chain: "ethereum", counter: s.chains.Ethereum, dst: &txs.Ethereum},
		{chain: "base", counter: s.chains.Base, dst: &txs.Base},
		{chain: "optimism", counter: s.chains.Optimism, dst: &txs.Optimism},
		{chain: "arbitrum", counter: s.chains.Arbitrum, dst: &txs.Arbitrum},
	}

	wg := sync.WaitGroup{}
	for _, j := range jobs {
		j := j
		wg.Add(1)
		go func() {
			defer wg.Done()
			*j.dst = s.countTransactions(ctx, j.chain, j.counter, address)
		}()
	}
	wg.Wait()

	activity := domain.ChainActivity{
		Address:      address,
		Transactions: txs,
		Total:        txs.Total(),
	}
	s.publishOnchainLookup(ctx, activity)
	return activity, nil
}

func (s *Service) countTransactions(ctx context.Context, chain string, counter ports.TransactionCounter, address string) uint64 {
	if counter == nil {
		return 0
	}
	start := time.Now()
	count, err := counter.TransactionCount(ctx, address)
	if err != nil {
		s.observer.ObserveUpstream(chain, "get_transaction_count", "error", time.Since(start))
		s.logger.WarnContext(ctx, "transaction count unavailable, using zero",
			"module", "application.onchain",
			"layer", "application",
			"operation", "get_transaction_count",
			"outcome", "degraded",
			"chain", chain,
			"error", err,
		)
		return 0
	}
	s.observer.ObserveUpstream(chain, "get_transaction_count", "success", time.Since(start))
	return count
}

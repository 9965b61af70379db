package ports

import (
	"context"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

// SocialGraph resolves Farcaster accounts and their recent casts.
// Implementations return domain.ErrNotFound when no account matches.
type SocialGraph interface {
	UserByFID(ctx context.Context, fid int64) (domain.Profile, error)
	UserByUsername(ctx context.Context, username string) (domain.Profile, error)
	RecentCasts(ctx context.Context, fid int64, limit int) ([]domain.Cast, error)
}

// TransactionCounter reads the outgoing transaction count (nonce) of an
// address on a single chain at the latest block.
type TransactionCounter interface {
	TransactionCount(ctx context.Context, address string) (uint64, error)
}

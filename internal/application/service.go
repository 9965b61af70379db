package application

import (
	"log/slog"
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
	"github.com/theRoadz/farcaster-neynar/internal/ports"
)

const (
	defaultCastSampleSize = 50
	maxCastSampleSize     = 50
	defaultPublishTimeout = 2 * time.Second
)

// Chains holds one transaction counter per supported network.
type Chains struct {
	Ethereum ports.TransactionCounter
	Base     ports.TransactionCounter
	Optimism ports.TransactionCounter
	Arbitrum ports.TransactionCounter
}

type Service struct {
	cfg       Config
	logger    *slog.Logger
	social    ports.SocialGraph
	chains    Chains
	publisher ports.EventPublisher
	observer  ports.UpstreamObserver
	nowFn     func() time.Time
}

type Dependencies struct {
	Config Config
	Logger *slog.Logger
	// SocialGraph is nil when no provider credential is configured.
	SocialGraph ports.SocialGraph
	Chains      Chains
	Publisher   ports.EventPublisher
	Observer    ports.UpstreamObserver
	Clock       func() time.Time
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "farcaster-neynar"
	}
	if cfg.CastSampleSize <= 0 {
		cfg.CastSampleSize = defaultCastSampleSize
	}
	if cfg.CastSampleSize > maxCastSampleSize {
		cfg.CastSampleSize = maxCastSampleSize
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultPublishTimeout
	}
	if cfg.AccountAge.MaxFID <= 0 || cfg.AccountAge.Epoch.IsZero() {
		cfg.AccountAge = domain.DefaultAccountAgeConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := deps.Observer
	if observer == nil {
		observer = ports.NoopObserver{}
	}
	nowFn := deps.Clock
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}

	return &Service{
		cfg:       cfg,
		logger:    logger,
		social:    deps.SocialGraph,
		chains:    deps.Chains,
		publisher: deps.Publisher,
		observer:  observer,
		nowFn:     nowFn,
	}
}

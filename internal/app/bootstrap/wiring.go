package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	eventadapter "github.com/theRoadz/farcaster-neynar/internal/adapters/events"
	"github.com/theRoadz/farcaster-neynar/internal/adapters/neynar"
	"github.com/theRoadz/farcaster-neynar/internal/adapters/observability"
	"github.com/theRoadz/farcaster-neynar/internal/adapters/outbound"
	"github.com/theRoadz/farcaster-neynar/internal/adapters/rpc"
	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
	"github.com/theRoadz/farcaster-neynar/internal/ports"
)

// Components is the wired application plus the telemetry it reports to.
type Components struct {
	Service *application.Service
	Metrics *observability.Metrics
	Tracing *observability.Tracing

	closers []io.Closer
}

func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i].Close()
	}
}

func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})).With("service", cfg.ServiceID)
}

// BuildComponents wires adapters into the application service. Optional
// dependencies that fail to initialise are logged and left out.
func BuildComponents(ctx context.Context, cfg Config, logger *slog.Logger) (*Components, error) {
	c := &Components{}

	var observer ports.UpstreamObserver = ports.NoopObserver{}
	if cfg.MetricsEnabled {
		c.Metrics = observability.NewMetrics(strings.ReplaceAll(cfg.ServiceID, "-", "_"))
		observer = c.Metrics
	}

	tracing, err := observability.NewTracing(cfg.ServiceID, fmt.Sprintf("localhost:%d", cfg.HTTPPort), cfg.ZipkinURL)
	if err != nil {
		return nil, err
	}
	if tracing != nil {
		c.Tracing = tracing
		c.closers = append(c.closers, tracing)
	}

	httpClient, err := outbound.NewHTTPClient(outbound.Config{
		Timeout:  cfg.UpstreamTimeout,
		ProxyURL: cfg.OutboundProxyURL,
		Wrap:     c.Tracing.WrapTransport,
	})
	if err != nil {
		c.Close()
		return nil, err
	}

	var social ports.SocialGraph
	if cfg.NeynarAPIKey != "" {
		client, err := neynar.NewClient(neynar.Config{
			BaseURL:    cfg.NeynarBaseURL,
			APIKey:     cfg.NeynarAPIKey,
			HTTPClient: httpClient,
		})
		if err != nil {
			c.Close()
			return nil, err
		}
		social = client
	} else {
		logger.WarnContext(ctx, "NEYNAR_API_KEY not set, user lookups will fail",
			"module", "bootstrap",
			"layer", "app",
			"operation", "build_components",
			"outcome", "degraded",
		)
	}

	chains := application.Chains{
		Ethereum: c.dialChain(ctx, logger, "ethereum", cfg.EthereumRPC, httpClient),
		Base:     c.dialChain(ctx, logger, "base", cfg.BaseRPC, httpClient),
		Optimism: c.dialChain(ctx, logger, "optimism", cfg.OptimismRPC, httpClient),
		Arbitrum: c.dialChain(ctx, logger, "arbitrum", cfg.ArbitrumRPC, httpClient),
	}

	c.Service = application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:    cfg.ServiceID,
			CastSampleSize: cfg.CastSampleSize,
			AccountAge: domain.AccountAgeConfig{
				Epoch:  cfg.AccountAgeEpoch,
				MaxFID: cfg.AccountAgeMaxFID,
			},
		},
		Logger:      logger,
		SocialGraph: social,
		Chains:      chains,
		Publisher:   c.publisher(ctx, cfg, logger),
		Observer:    observer,
	})
	return c, nil
}

// dialChain returns nil when the chain cannot be dialed; the service counts a
// missing chain as zero transactions.
func (c *Components) dialChain(ctx context.Context, logger *slog.Logger, chain, endpoint string, httpClient *http.Client) ports.TransactionCounter {
	counter, err := rpc.Dial(ctx, chain, endpoint, httpClient)
	if err != nil {
		logger.WarnContext(ctx, "chain rpc disabled",
			"module", "bootstrap",
			"layer", "app",
			"operation", "dial_chain",
			"outcome", "degraded",
			"chain", chain,
			"error", err,
		)
		return nil
	}
	c.closers = append(c.closers, counter)
	return counter
}

func (c *Components) publisher(ctx context.Context, cfg Config, logger *slog.Logger) ports.EventPublisher {
	if len(cfg.KafkaBrokers) > 0 {
		p, err := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopicLookups, nil)
		if err == nil {
			c.closers = append(c.closers, p)
			return p
		}
		logger.WarnContext(ctx, "kafka publisher disabled", "error", err)
	}
	if cfg.NATSURL != "" {
		p, err := eventadapter.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectLookups, cfg.ServiceID)
		if err == nil {
			c.closers = append(c.closers, p)
			return p
		}
		logger.WarnContext(ctx, "nats publisher disabled", "error", err)
	}
	return eventadapter.NewLoggingPublisher(logger)
}

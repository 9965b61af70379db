package application

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

const (
	EventUserLookupCompleted    = "lookup.user_completed"
	EventOnchainLookupCompleted = "lookup.onchain_completed"
)

type userLookupEventData struct {
	FID             int64  `json:"fid"`
	Username        string `json:"username"`
	FollowerCount   int64  `json:"follower_count"`
	FollowerQuality int64  `json:"follower_quality"`
	ViralReach      int64  `json:"viral_reach"`
	ActivityLevel   string `json:"activity_level"`
	TotalCasts      int    `json:"total_casts"`
}

type onchainLookupEventData struct {
	Address  string `json:"address"`
	Ethereum uint64 `json:"ethereum"`
	Base     uint64 `json:"base"`
	Optimism uint64 `json:"optimism"`
	Arbitrum uint64 `json:"arbitrum"`
	Total    uint64 `json:"total"`
}

func (s *Service) publishUserLookup(ctx context.Context, lookup UserLookup) {
	s.publish(ctx, EventUserLookupCompleted, strconv.FormatInt(lookup.Profile.FID, 10), userLookupEventData{
		FID:             lookup.Profile.FID,
		Username:        lookup.Profile.Username,
		FollowerCount:   lookup.Profile.FollowerCount,
		FollowerQuality: lookup.Metrics.FollowerQuality,
		ViralReach:      lookup.Metrics.ViralReach,
		ActivityLevel:   string(lookup.Metrics.ActivityLevel),
		TotalCasts:      lookup.Metrics.TotalCasts,
	})
}

func (s *Service) publishOnchainLookup(ctx context.Context, activity domain.ChainActivity) {
	s.publish(ctx, EventOnchainLookupCompleted, activity.Address, onchainLookupEventData{
		Address:  activity.Address,
		Ethereum: activity.Transactions.Ethereum,
		Base:     activity.Transactions.Base,
		Optimism: activity.Transactions.Optimism,
		Arbitrum: activity.Transactions.Arbitrum,
		Total:    activity.Total,
	})
}

// publish is best effort: a broker failure is logged and never reaches the
// caller. The publish outlives a cancelled request but never exceeds
// cfg.PublishTimeout.
func (s *Service) publish(ctx context.Context, eventType, partitionKey string, data any) {
	if s.publisher == nil {
		return
	}
	occurredAt := s.nowFn()
	envelope := map[string]any{
		"event_id":       uuid.NewString(),
		"event_type":     eventType,
		"occurred_at":    occurredAt.Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"schema_version": "1.0",
		"partition_key":  partitionKey,
		"data":           data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		s.logger.ErrorContext(ctx, "event encode failed",
			"module", "application.events",
			"layer", "application",
			"operation", "publish",
			"outcome", "failure",
			"event_type", eventType,
			"error", err,
		)
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PublishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, eventType, payload, partitionKey); err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"module", "application.events",
			"layer", "application",
			"operation", "publish",
			"outcome", "failure",
			"event_type", eventType,
			"error", err,
		)
	}
}

package application

import (
	"context"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

// Dashboard resolves a profile and, when it has an address, its on-chain
// activity. Chain lookups never fail the dashboard.
func (s *Service) Dashboard(ctx context.Context, query UserQuery) (DashboardView, error) {
	user, err := s.LookupUser(ctx, query)
	if err != nil {
		return DashboardView{}, err
	}

	view := DashboardView{
		User:            user,
		DisplayAddress:  domain.DisplayAddress(user.Profile),
		ViralLabel:      domain.ViralReachLabel(user.Metrics.ViralReach),
		ViralColor:      domain.ViralReachColor(user.Metrics.ViralReach),
		FollowerGauge:   domain.NewGauge("Follower Quality", user.Metrics.FollowerQuality, 100, domain.ColorFollowerQuality, false),
		ViralReachGauge: domain.NewGauge("Viral Reach", user.Metrics.ViralReach, 100, domain.ViralReachColor(user.Metrics.ViralReach), true),
	}

	if view.DisplayAddress != "" {
		activity, err := s.LookupOnchain(ctx, view.DisplayAddress)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping onchain activity",
				"module", "application.dashboard",
				"layer", "application",
				"operation", "dashboard",
				"outcome", "degraded",
				"address", view.DisplayAddress,
				"error", err,
			)
		} else {
			view.Onchain = &activity
		}
	}
	return view, nil
}

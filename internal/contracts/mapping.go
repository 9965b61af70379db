package contracts

import (
	"github.com/theRoadz/farcaster-neynar/internal/application"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

// DashboardResponse is the machine-readable form of a dashboard lookup.
type DashboardResponse struct {
	User    UserResponse     `json:"user"`
	Onchain *OnchainResponse `json:"onchain,omitempty"`
}

func NewUserResponse(u application.UserLookup) UserResponse {
	p := u.Profile
	verified := p.VerifiedAddresses
	if verified == nil {
		verified = []string{}
	}
	return UserResponse{
		FID:               p.FID,
		Username:          p.Username,
		DisplayName:       p.DisplayName,
		PfpURL:            p.PfpURL,
		Bio:               p.Bio,
		FollowerCount:     p.FollowerCount,
		FollowingCount:    p.FollowingCount,
		VerifiedAddresses: verified,
		CustodyAddress:    p.CustodyAddress,
		PowerBadge:        p.PowerBadge,
		NeynarScore:       p.Score,
		Metrics: MetricsResponse{
			FollowerQuality: u.Metrics.FollowerQuality,
			EngagementRate:  u.Metrics.EngagementRate,
			AvgReactions:    u.Metrics.AvgReactions,
			ViralReach:      u.Metrics.ViralReach,
			AvgRecasts:      u.Metrics.AvgRecasts,
			ActivityLevel:   string(u.Metrics.ActivityLevel),
			AccountAgeDays:  u.Metrics.AccountAgeDays,
			TotalCasts:      u.Metrics.TotalCasts,
		},
	}
}

func NewOnchainResponse(a domain.ChainActivity) OnchainResponse {
	return OnchainResponse{
		Address: a.Address,
		Transactions: ChainTransactionsResponse{
			Ethereum: a.Transactions.Ethereum,
			Base:     a.Transactions.Base,
			Optimism: a.Transactions.Optimism,
			Arbitrum: a.Transactions.Arbitrum,
		},
		Total: a.Total,
	}
}

// NewDashboardResponse drops the presentation-only fields of view.
func NewDashboardResponse(view application.DashboardView) DashboardResponse {
	out := DashboardResponse{User: NewUserResponse(view.User)}
	if view.Onchain != nil {
		onchain := NewOnchainResponse(*view.Onchain)
		out.Onchain = &onchain
	}
	return out
}

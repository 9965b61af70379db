package application

import (
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

type Config struct {
	ServiceName    string
	CastSampleSize int
	AccountAge     domain.AccountAgeConfig
	// PublishTimeout bounds each lookup event publish. Zero means two seconds.
	PublishTimeout time.Duration
}

// UserQuery selects a profile by FID or username. FID wins when both are set.
type UserQuery struct {
	Username string
	FID      string
}

type UserLookup struct {
	Profile domain.Profile
	Metrics domain.Metrics
}

type DashboardView struct {
	User            UserLookup
	DisplayAddress  string
	Onchain         *domain.ChainActivity
	ViralLabel      string
	ViralColor      string
	FollowerGauge   domain.Gauge
	ViralReachGauge domain.Gauge
}

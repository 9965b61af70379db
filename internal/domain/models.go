package domain

import "time"

type ActivityLevel string

const (
	ActivityVeryActive ActivityLevel = "Very Active"
	ActivityActive     ActivityLevel = "Active"
	ActivityModerate   ActivityLevel = "Moderate"
	ActivityInactive   ActivityLevel = "Inactive"
	ActivityUnknown    ActivityLevel = "Unknown"
)

// Profile is a Farcaster account as returned by the social-graph provider.
// Score is the provider's reputation score in [0,1] when it publishes one.
type Profile struct {
	FID               int64
	Username          string
	DisplayName       string
	PfpURL            string
	Bio               string
	FollowerCount     int64
	FollowingCount    int64
	VerifiedAddresses []string
	CustodyAddress    string
	PowerBadge        bool
	Score             *float64
}

// Cast is one sampled post. Only the counters and timestamp are kept.
type Cast struct {
	Hash      string
	Likes     int64
	Recasts   int64
	Replies   int64
	Timestamp time.Time
}

type Metrics struct {
	FollowerQuality int64
	EngagementRate  float64
	AvgReactions    int64
	ViralReach      int64
	AvgRecasts      int64
	ActivityLevel   ActivityLevel
	AccountAgeDays  int64
	TotalCasts      int
}

type ChainTransactions struct {
	Ethereum uint64
	Base     uint64
	Optimism uint64
	Arbitrum uint64
}

func (t ChainTransactions) Total() uint64 {
	return t.Ethereum + t.Base + t.Optimism + t.Arbitrum
}

type ChainActivity struct {
	Address      string
	Transactions ChainTransactions
	Total        uint64
}

// AccountAgeConfig anchors the FID-to-age approximation: FID 0 is assumed to
// be registered at Epoch and MaxFID to be registered now.
type AccountAgeConfig struct {
	Epoch  time.Time
	MaxFID int64
}

func DefaultAccountAgeConfig() AccountAgeConfig {
	return AccountAgeConfig{
		Epoch:  time.Date(2022, time.July, 1, 0, 0, 0, 0, time.UTC),
		MaxFID: 900000,
	}
}

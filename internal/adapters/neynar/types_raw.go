package neynar

import (
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type bulkUsersResponse struct {
	Users []*rawUser `json:"users"`
}

type userByUsernameResponse struct {
	User *rawUser `json:"user"`
}

type userCastsResponse struct {
	Casts []rawCast `json:"casts"`
}

type rawUser struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	PfpURL         string `json:"pfp_url"`
	CustodyAddress string `json:"custody_address"`
	Profile        struct {
		Bio struct {
			Text string `json:"text"`
		} `json:"bio"`
	} `json:"profile"`
	FollowerCount     int64 `json:"follower_count"`
	FollowingCount    int64 `json:"following_count"`
	VerifiedAddresses struct {
		EthAddresses []string `json:"eth_addresses"`
		SolAddresses []string `json:"sol_addresses"`
	} `json:"verified_addresses"`
	PowerBadge   bool     `json:"power_badge"`
	Score        *float64 `json:"score"`
	Experimental struct {
		NeynarUserScore *float64 `json:"neynar_user_score"`
	} `json:"experimental"`
}

type rawCast struct {
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp"`
	Reactions struct {
		LikesCount   int64 `json:"likes_count"`
		RecastsCount int64 `json:"recasts_count"`
	} `json:"reactions"`
	Replies struct {
		Count int64 `json:"count"`
	} `json:"replies"`
}

func (u *rawUser) toDomain() domain.Profile {
	score := u.Score
	if score == nil {
		score = u.Experimental.NeynarUserScore
	}
	addresses := u.VerifiedAddresses.EthAddresses
	if addresses == nil {
		addresses = []string{}
	}
	return domain.Profile{
		FID:               u.FID,
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		PfpURL:            u.PfpURL,
		Bio:               u.Profile.Bio.Text,
		FollowerCount:     u.FollowerCount,
		FollowingCount:    u.FollowingCount,
		VerifiedAddresses: addresses,
		CustodyAddress:    u.CustodyAddress,
		PowerBadge:        u.PowerBadge,
		Score:             score,
	}
}

// toDomain leaves Timestamp zero when the provider sends an unparseable value;
// such casts still count toward engagement but not toward activity.
func (c rawCast) toDomain() domain.Cast {
	ts, err := time.Parse(time.RFC3339Nano, c.Timestamp)
	if err != nil {
		ts = time.Time{}
	}
	return domain.Cast{
		Hash:      c.Hash,
		Likes:     c.Reactions.LikesCount,
		Recasts:   c.Reactions.RecastsCount,
		Replies:   c.Replies.Count,
		Timestamp: ts.UTC(),
	}
}

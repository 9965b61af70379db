package domain

import (
	"math"
	"time"
)

const (
	day = 24 * time.Hour

	// Viral reach compresses the recast rate logarithmically so that small and
	// large accounts land on the same 0-100 scale: 0.01% ~ 25, 0.1% ~ 50,
	// 1% ~ 75, 10% ~ 100. Labels and colors downstream depend on these values.
	viralRateScale  = 1000
	viralLogOffset  = 1
	viralMultiplier = 25

	maxScore = 100
)

// AverageEngagement is the rounded mean of likes+recasts+replies per cast.
func AverageEngagement(casts []Cast) int64 {
	if len(casts) == 0 {
		return 0
	}
	var total int64
	for _, c := range casts {
		total += c.Likes + c.Recasts + c.Replies
	}
	return roundInt(float64(total) / float64(len(casts)))
}

// AverageRecasts is the rounded mean of recasts per cast.
func AverageRecasts(casts []Cast) int64 {
	if len(casts) == 0 {
		return 0
	}
	var total int64
	for _, c := range casts {
		total += c.Recasts
	}
	return roundInt(float64(total) / float64(len(casts)))
}

// EngagementRate is the average engagement as a percentage of followers.
func EngagementRate(avgEngagement, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	return float64(avgEngagement) / float64(followers) * 100
}

// FollowerQuality prefers the provider score when present and otherwise
// derives a 0-100 value from the engagement rate.
func FollowerQuality(score *float64, engagementRate float64) int64 {
	if score != nil {
		return clampScore(roundInt(*score * 100))
	}
	return clampScore(roundInt(engagementRate * 10))
}

func ViralReach(avgRecasts, followers int64) int64 {
	if followers <= 0 || avgRecasts <= 0 {
		return 0
	}
	recastRate := float64(avgRecasts) / float64(followers) * 100
	return clampScore(roundInt(math.Log10(recastRate*viralRateScale+viralLogOffset) * viralMultiplier))
}

// ClassifyActivity buckets the age of the newest dated cast.
func ClassifyActivity(casts []Cast, now time.Time) ActivityLevel {
	var newest time.Time
	for _, c := range casts {
		if c.Timestamp.After(newest) {
			newest = c.Timestamp
		}
	}
	if newest.IsZero() {
		return ActivityUnknown
	}
	days := wholeDays(now.Sub(newest))
	switch {
	case days <= 1:
		return ActivityVeryActive
	case days <= 7:
		return ActivityActive
	case days <= 30:
		return ActivityModerate
	default:
		return ActivityInactive
	}
}

// EstimateAccountAgeDays linearly maps the FID between cfg.Epoch (FID 0) and
// now (cfg.MaxFID). It is a heuristic, not registration data.
func EstimateAccountAgeDays(fid int64, cfg AccountAgeConfig, now time.Time) int64 {
	if cfg.MaxFID <= 0 {
		return 0
	}
	daysSinceEpoch := wholeDays(now.Sub(cfg.Epoch))
	estimated := int64(math.Floor((1 - float64(fid)/float64(cfg.MaxFID)) * float64(daysSinceEpoch)))
	if estimated < 0 {
		return 0
	}
	return estimated
}

func ComputeMetrics(profile Profile, casts []Cast, cfg AccountAgeConfig, now time.Time) Metrics {
	avgReactions := AverageEngagement(casts)
	avgRecasts := AverageRecasts(casts)
	rate := EngagementRate(avgReactions, profile.FollowerCount)

	return Metrics{
		FollowerQuality: FollowerQuality(profile.Score, rate),
		EngagementRate:  math.Round(rate*100) / 100,
		AvgReactions:    avgReactions,
		ViralReach:      ViralReach(avgRecasts, profile.FollowerCount),
		AvgRecasts:      avgRecasts,
		ActivityLevel:   ClassifyActivity(casts, now),
		AccountAgeDays:  EstimateAccountAgeDays(profile.FID, cfg, now),
		TotalCasts:      len(casts),
	}
}

func wholeDays(d time.Duration) int64 {
	return int64(math.Floor(float64(d) / float64(day)))
}

func roundInt(v float64) int64 {
	return int64(math.Round(v))
}

func clampScore(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

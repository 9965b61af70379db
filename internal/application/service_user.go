package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

func (s *Service) LookupUser(ctx context.Context, query UserQuery) (UserLookup, error) {
	username := domain.NormalizeUsername(query.Username)
	rawFID := strings.TrimSpace(query.FID)
	if username == "" && rawFID == "" {
		return UserLookup{}, fmt.Errorf("%w: username or fid required", domain.ErrInvalidInput)
	}
	if s.social == nil {
		return UserLookup{}, fmt.Errorf("%w: neynar api key not configured", domain.ErrNotConfigured)
	}

	profile, err := s.resolveProfile(ctx, username, rawFID)
	if err != nil {
		return UserLookup{}, err
	}

	start := time.Now()
	casts, err := s.social.RecentCasts(ctx, profile.FID, s.cfg.CastSampleSize)
	switch {
	case err == nil:
		s.observer.ObserveUpstream("neynar", "recent_casts", "success", time.Since(start))
	case errors.Is(err, domain.ErrNotFound):
		// The profile exists, so a missing feed is an empty sample.
		s.observer.ObserveUpstream("neynar", "recent_casts", "not_found", time.Since(start))
		casts = nil
	default:
		s.observer.ObserveUpstream("neynar", "recent_casts", "error", time.Since(start))
		s.logger.ErrorContext(ctx, "recent casts lookup failed",
			"module", "application.user",
			"layer", "application",
			"operation", "lookup_user",
			"outcome", "failure",
			"fid", profile.FID,
			"error", err,
		)
		return UserLookup{}, upstreamError(err)
	}
	if len(casts) > s.cfg.CastSampleSize {
		casts = casts[:s.cfg.CastSampleSize]
	}

	out := UserLookup{
		Profile: profile,
		Metrics: domain.ComputeMetrics(profile, casts, s.cfg.AccountAge, s.nowFn()),
	}
	s.publishUserLookup(ctx, out)
	return out, nil
}

func (s *Service) resolveProfile(ctx context.Context, username, rawFID string) (domain.Profile, error) {
	var (
		profile   domain.Profile
		err       error
		operation string
	)
	start := time.Now()
	if rawFID != "" {
		fid, parseErr := domain.ParseFID(rawFID)
		if parseErr != nil {
			return domain.Profile{}, parseErr
		}
		operation = "user_by_fid"
		profile, err = s.social.UserByFID(ctx, fid)
	} else {
		operation = "user_by_username"
		profile, err = s.social.UserByUsername(ctx, username)
	}

	switch {
	case err == nil:
		s.observer.ObserveUpstream("neynar", operation, "success", time.Since(start))
		return profile, nil
	case errors.Is(err, domain.ErrNotFound):
		s.observer.ObserveUpstream("neynar", operation, "not_found", time.Since(start))
		return domain.Profile{}, err
	default:
		s.observer.ObserveUpstream("neynar", operation, "error", time.Since(start))
		s.logger.ErrorContext(ctx, "profile lookup failed",
			"module", "application.user",
			"layer", "application",
			"operation", operation,
			"outcome", "failure",
			"error", err,
		)
		return domain.Profile{}, upstreamError(err)
	}
}

// upstreamError keeps classified errors intact and marks everything else as
// an upstream failure.
func upstreamError(err error) error {
	for _, known := range []error{domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrNotConfigured, domain.ErrUpstream} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}

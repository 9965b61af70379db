package neynar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theRoadz/farcaster-neynar/internal/domain"
)

const userJSON = `{
	"fid": 477069,
	"username": "theroad",
	"display_name": "The Road",
	"pfp_url": "https://img.example/pfp.png",
	"custody_address": "0x1111111111111111111111111111111111111111",
	"profile": {"bio": {"text": "building"}},
	"follower_count": 1200,
	"following_count": 300,
	"verified_addresses": {"eth_addresses": ["0x2222222222222222222222222222222222222222"], "sol_addresses": []},
	"power_badge": true,
	"score": 0.87
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()
	_, err := NewClient(Config{})
	require.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	t.Parallel()
	c, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.NotNil(t, c.httpClient)
}

func TestUserByFID(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/bulk", r.URL.Path)
		assert.Equal(t, "477069", r.URL.Query().Get("fids"))
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		fmt.Fprintf(w, `{"users":[%s]}`, userJSON)
	})

	p, err := c.UserByFID(context.Background(), 477069)
	require.NoError(t, err)
	assert.Equal(t, int64(477069), p.FID)
	assert.Equal(t, "theroad", p.Username)
	assert.Equal(t, "The Road", p.DisplayName)
	assert.Equal(t, "building", p.Bio)
	assert.Equal(t, int64(1200), p.FollowerCount)
	assert.Equal(t, int64(300), p.FollowingCount)
	assert.Equal(t, []string{"0x2222222222222222222222222222222222222222"}, p.VerifiedAddresses)
	assert.True(t, p.PowerBadge)
	require.NotNil(t, p.Score)
	assert.InDelta(t, 0.87, *p.Score, 1e-9)
}

func TestUserByFID_EmptyUsers(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"users":[]}`)
	})
	_, err := c.UserByFID(context.Background(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserByUsername(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/by_username", r.URL.Path)
		assert.Equal(t, "theroad", r.URL.Query().Get("username"))
		fmt.Fprintf(w, `{"user":%s}`, userJSON)
	})

	p, err := c.UserByUsername(context.Background(), "theroad")
	require.NoError(t, err)
	assert.Equal(t, int64(477069), p.FID)
}

func TestUserByUsername_NotFound(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":"NotFound","message":"User not found"}`)
	})
	_, err := c.UserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserByUsername_MissingUserField(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	_, err := c.UserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpstreamFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message":"boom"}`)
		}},
		{"unauthorized", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"user":`)
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, tt.handler)
			_, err := c.UserByUsername(context.Background(), "x")
			require.ErrorIs(t, err, domain.ErrUpstream)
		})
	}
}

func TestUserByUsername_TransportError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)

	_, err = c.UserByUsername(context.Background(), "x")
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestScoreFallsBackToExperimental(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"user":{"fid":3,"username":"dwr","experimental":{"neynar_user_score":0.5}}}`)
	})
	p, err := c.UserByUsername(context.Background(), "dwr")
	require.NoError(t, err)
	require.NotNil(t, p.Score)
	assert.InDelta(t, 0.5, *p.Score, 1e-9)
	assert.Empty(t, p.VerifiedAddresses)
}

func TestRecentCasts(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed/user/casts", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("fid"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"casts":[
			{"hash":"0xa","timestamp":"2024-05-01T10:00:00.000Z","reactions":{"likes_count":10,"recasts_count":2},"replies":{"count":1}},
			{"hash":"0xb","timestamp":"not-a-time","reactions":{"likes_count":4,"recasts_count":0},"replies":{"count":0}}
		]}`)
	})

	casts, err := c.RecentCasts(context.Background(), 3, 50)
	require.NoError(t, err)
	require.Len(t, casts, 2)
	assert.Equal(t, int64(10), casts[0].Likes)
	assert.Equal(t, int64(2), casts[0].Recasts)
	assert.Equal(t, int64(1), casts[0].Replies)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), casts[0].Timestamp)
	assert.True(t, casts[1].Timestamp.IsZero())
}

func TestRecentCasts_NoCastsField(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	casts, err := c.RecentCasts(context.Background(), 3, 50)
	require.NoError(t, err)
	assert.Empty(t, casts)
}

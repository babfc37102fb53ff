package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/creatorhq/backend/config"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/authenticator"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestAuthVerifier(t *testing.T) {
	engine := authenticator.NewTokenEngine[model.AccessToken]("secret", config.TokenConfigs{Expiration: time.Minute})
	token, err := engine.Generate("user1", model.AccessToken{ID: "user1", Role: "CHATTER"})
	require.NoError(t, err)

	otherEngine := authenticator.NewTokenEngine[model.AccessToken]("other", config.TokenConfigs{Expiration: time.Minute})
	forged, err := otherEngine.Generate("admin1", model.AccessToken{ID: "admin1", Role: "ADMIN"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		setup   func(req *http.Request)
		wantID  string
		wantErr error
	}{
		{
			name:   "bearer token",
			setup:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) },
			wantID: "user1",
		},
		{
			name: "cookie",
			setup: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
			},
			wantID: "user1",
		},
		{
			name:    "no token",
			setup:   func(req *http.Request) {},
			wantErr: errorx.New(errorx.Unauthenticated, "You need to authenticate before"),
		},
		{
			name:    "other scheme",
			setup:   func(req *http.Request) { req.Header.Set("Authorization", "Basic "+token) },
			wantErr: errorx.New(errorx.Unauthenticated, "You need to authenticate before"),
		},
		{
			name:    "forged token",
			setup:   func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+forged) },
			wantErr: errorx.New(errorx.Unauthenticated, "Invalid or expired access token"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/getMyStats", nil)
			tt.setup(req)
			ctx := xcontext.WithHTTPRequest(testutil.MockContext(), req)

			newCtx, err := NewAuthVerifier(engine).Middleware()(ctx)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantID, xcontext.RequestUserID(newCtx))
			require.Equal(t, "CHATTER", xcontext.RequestUserRole(newCtx))
		})
	}
}

func TestOnlyAdmin(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	middleware := NewOnlyAdmin(repository.NewUserRepository()).Middleware()

	_, err := middleware(testutil.MockContextWithUserID(ctx, testutil.Admin1.ID))
	require.NoError(t, err)

	_, err = middleware(testutil.MockContextWithUserID(ctx, testutil.User1.ID))
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)

	_, err = middleware(testutil.MockContextWithUserID(ctx, "unknown"))
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return now }
	middleware := limiter.Middleware()

	req := httptest.NewRequest(http.MethodGet, "/getShopItems", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	ctx := xcontext.WithHTTPRequest(testutil.MockContext(), req)

	// The burst is consumed, then the client waits for a new token.
	_, err := middleware(ctx)
	require.NoError(t, err)
	_, err = middleware(ctx)
	require.NoError(t, err)
	_, err = middleware(ctx)
	require.Equal(t, errorx.New(errorx.TooManyRequests, "Too many requests, please slow down"), err)

	// Another user behind the same address has its own bucket.
	_, err = middleware(xcontext.WithRequestUserID(ctx, "user1"))
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = middleware(ctx)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	require.Equal(t, 2, limiter.Evict(time.Minute))
	require.Equal(t, 0, limiter.Evict(time.Minute))
}

func TestRateLimiter_Burst(t *testing.T) {
	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)

	for _, burst := range []int{1, 2, 5} {
		limiter := NewRateLimiter(1, burst)
		limiter.now = func() time.Time { return now }
		middleware := limiter.Middleware()

		req := httptest.NewRequest(http.MethodGet, "/purchase", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		ctx := xcontext.WithHTTPRequest(testutil.MockContext(), req)

		allowed := 0
		for i := 0; i < burst+3; i++ {
			if _, err := middleware(ctx); err == nil {
				allowed++
			}
		}
		require.Equal(t, burst, allowed)
	}
}

func TestRateLimiter_get(t *testing.T) {
	limiter := NewRateLimiter(1, 1)

	first := limiter.get("ip:10.0.0.3")
	stored, ok := limiter.limiters.Load("ip:10.0.0.3")
	require.True(t, ok)
	require.Same(t, first, stored)
	require.Same(t, first, limiter.get("ip:10.0.0.3"))
}

func Test_clientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	ctx := xcontext.WithHTTPRequest(testutil.MockContext(), req)
	require.Equal(t, "ip:10.0.0.1", clientKey(ctx))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, "ip:203.0.113.7", clientKey(ctx))

	require.Equal(t, "user:user1", clientKey(xcontext.WithRequestUserID(ctx, "user1")))
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkpal/parkpal-backend/config"
)

func TestCheckLimitAllowsUnderLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewRateLimitService(client, config.RateLimitConfig{})

	mock.ExpectIncr("rate_limit:chat:1.2.3.4").SetVal(3)
	mock.ExpectExpire("rate_limit:chat:1.2.3.4", time.Minute).SetVal(true)

	allowed, retryAfter, err := svc.CheckLimit(context.Background(), "chat:1.2.3.4", 30, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckLimitDeniesOverLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewRateLimitService(client, config.RateLimitConfig{})

	mock.ExpectIncr("rate_limit:chat:1.2.3.4").SetVal(31)
	mock.ExpectExpire("rate_limit:chat:1.2.3.4", time.Minute).SetVal(true)
	mock.ExpectTTL("rate_limit:chat:1.2.3.4").SetVal(42 * time.Second)

	allowed, retryAfter, err := svc.CheckLimit(context.Background(), "chat:1.2.3.4", 30, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 42*time.Second, retryAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAllowChatUsesConfiguredWindow(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewRateLimitService(client, config.RateLimitConfig{
		ChatRequestsPerMinute: 5,
		WindowSeconds:         30,
	})

	mock.ExpectIncr("rate_limit:chat:client-a").SetVal(6)
	mock.ExpectExpire("rate_limit:chat:client-a", 30*time.Second).SetVal(true)
	mock.ExpectTTL("rate_limit:chat:client-a").SetVal(12 * time.Second)

	allowed, retryAfter, err := svc.AllowChat(context.Background(), "client-a")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 12*time.Second, retryAfter)
	require.NoError(t, mock.ExpectationsWereMet())
}

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/firstcreditunion/loan-status-hub-sub000/domain"
)

// setupTestRedis creates an in-memory Redis instance for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func TestRedisLimiterImpl_AllowsUpToMax(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		result, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionVerificationRequest, 3, time.Hour)
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("expected call %d of 3 to be allowed", i)
		}
		if result.CurrentRequests != i {
			t.Errorf("expected current requests %d, got %d", i, result.CurrentRequests)
		}
		if result.Remaining != 3-i {
			t.Errorf("expected remaining %d, got %d", 3-i, result.Remaining)
		}
	}

	result, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionVerificationRequest, 3, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Allowed {
		t.Error("expected 4th request to be rejected")
	}
	if result.Remaining != 0 {
		t.Errorf("expected remaining 0, got %d", result.Remaining)
	}
	if result.ResetTime.Before(time.Now()) {
		t.Error("expected reset time at or after now")
	}
}

func TestRedisLimiterImpl_SeparateWindowsPerKey(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	if _, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionVerificationRequest, 1, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Different action, different identifier: both get their own window.
	result, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionCodeAttempt, 1, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Error("expected a fresh window for a different action")
	}

	result, err = limiter.Check(ctx, "5.6.7.8_c@d.com", domain.IdentifierIPEmail, domain.ActionVerificationRequest, 1, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Error("expected a fresh window for a different identifier")
	}
}

func TestRedisLimiterImpl_WindowExpires(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionCodeAttempt, 2, time.Hour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mr.FastForward(time.Hour + time.Minute)

	result, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionCodeAttempt, 2, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Error("expected a fresh window after expiry")
	}
	if result.CurrentRequests != 1 {
		t.Errorf("expected count reset to 1, got %d", result.CurrentRequests)
	}
}

func TestRedisLimiterImpl_FailsOpenOnBackendError(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	mr.Close()

	result, err := limiter.Check(ctx, "1.2.3.4_a@b.com", domain.IdentifierIPEmail, domain.ActionVerificationRequest, 3, time.Hour)
	if err == nil {
		t.Fatal("expected an error from the closed backend")
	}
	if result == nil {
		t.Fatal("expected a fail-open result alongside the error")
	}
	if !result.Allowed {
		t.Error("expected the request to be allowed through")
	}
	if !result.FailedOpen {
		t.Error("expected FailedOpen to be set")
	}
}

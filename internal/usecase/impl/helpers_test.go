package impl

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"tracker/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(policy string) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        4,
			RefreshRolePolicy: policy,
		},
	}
	cfg.JWT.Secret = "test_signing_secret_key_very_long_for_testing"
	cfg.JWT.Algorithm = config.AlgorithmHS256
	cfg.JWT.AccessTTL = 15 * time.Minute
	cfg.JWT.RefreshTTL = 24 * time.Hour
	cfg.OTP.TTL = 300 * time.Second

	return cfg
}

// testClock is a manually advanced clock shared by components under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

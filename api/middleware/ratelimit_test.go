package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/scrape-mcp/config"
	"github.com/use-agent/scrape-mcp/models"
)

func TestRateLimit_PerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(t.Context(), config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1}))
	r.POST("/mcp", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)

	w := send("10.0.0.1:1235")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, models.ErrCodeRateLimited, body.Error.Code)

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
}

func TestLimiterSet_SweepEvictsIdleBuckets(t *testing.T) {
	set := newLimiterSet(config.RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1})
	start := time.Now()

	assert.True(t, set.allow("old", start))
	assert.True(t, set.allow("new", start.Add(2*time.Hour)))
	assert.False(t, set.allow("new", start.Add(2*time.Hour)))

	assert.Equal(t, 1, set.sweep(start.Add(time.Hour)))

	// An evicted client starts over with a full bucket.
	assert.True(t, set.allow("old", start.Add(2*time.Hour)))
}

func TestLimiterSet_RunStopsOnCancel(t *testing.T) {
	set := newLimiterSet(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	set.allow("a", time.Now().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		set.run(ctx, time.Millisecond, time.Minute)
		close(done)
	}()

	require.Eventually(t, func() bool { return set.sweep(time.Time{}) == 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep loop did not stop after cancel")
	}
}

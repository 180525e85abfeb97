package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	t.Run("always returns 200 OK", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockPostService{}, &MockPinger{}, testConfig())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		h.Health(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
	})
}

func TestReady(t *testing.T) {
	t.Run("returns 200 OK when database is available", func(t *testing.T) {
		h := New(&MockAuthService{}, &MockPostService{}, &MockPinger{}, testConfig())

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rr := httptest.NewRecorder()
		h.Ready(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ok", rr.Body.String())
	})

	t.Run("returns 503 when database is down", func(t *testing.T) {
		pinger := &MockPinger{
			PingFunc: func(ctx context.Context) error {
				return errors.New("connection refused")
			},
		}
		h := New(&MockAuthService{}, &MockPostService{}, pinger, testConfig())

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rr := httptest.NewRecorder()
		h.Ready(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "database unavailable", rr.Body.String())
	})

	t.Run("pings with a deadline", func(t *testing.T) {
		pinger := &MockPinger{
			PingFunc: func(ctx context.Context) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return nil
			},
		}
		h := New(&MockAuthService{}, &MockPostService{}, pinger, testConfig())

		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		rr := httptest.NewRecorder()
		h.Ready(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsBurstThenThrottles(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 2)
	limiter.now = func() time.Time { return fixed }

	assert.True(t, limiter.Allow("203.0.113.1"))
	assert.True(t, limiter.Allow("203.0.113.1"))
	assert.False(t, limiter.Allow("203.0.113.1"))
	assert.True(t, limiter.Allow("203.0.113.2"))

	fixed = fixed.Add(time.Second)
	assert.True(t, limiter.Allow("203.0.113.1"))
}

func TestRateLimiterSweepsIdleVisitors(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, 1)
	limiter.now = func() time.Time { return fixed }

	limiter.Allow("198.51.100.1")
	assert.Len(t, limiter.visitors, 1)

	fixed = fixed.Add(visitorIdleTimeout + sweepInterval + time.Second)
	limiter.Allow("198.51.100.2")

	_, stale := limiter.visitors["198.51.100.1"]
	assert.False(t, stale)
	assert.Len(t, limiter.visitors, 1)
}

func TestWithRateLimitReturns429(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1)
	calls := 0
	handler := WithRateLimit(limiter, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/hotel-quotes", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	handler(first, req)

	second := httptest.NewRecorder()
	handler(second, req)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))
	assert.Equal(t, 1, calls)
}

func TestWithRateLimitNilLimiter(t *testing.T) {
	handler := WithRateLimit(nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

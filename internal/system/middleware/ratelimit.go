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
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/utils"
)

const (
	visitorIdleTimeout = 10 * time.Minute
	sweepInterval      = time.Minute
)

// visitor tracks the rate limiter and last seen time for a client address.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client address with a token bucket.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with the given burst per client.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// NewRateLimiterFromConfig creates a limiter from the runtime configuration.
// It returns nil when rate limiting is disabled.
func NewRateLimiterFromConfig() *RateLimiter {
	cfg := config.GetRuntime().Config.RateLimit
	if !cfg.Enabled {
		return nil
	}
	return NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst)
}

// Allow reports whether a request from the given client may proceed.
func (rl *RateLimiter) Allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > sweepInterval {
		for ip, v := range rl.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTimeout {
				delete(rl.visitors, ip)
			}
		}
		rl.lastSweep = now
	}

	v, exists := rl.visitors[clientIP]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[clientIP] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// WithRateLimit wraps a handler so that throttled clients receive 429.
// A nil limiter leaves the handler unchanged.
func WithRateLimit(limiter *RateLimiter, handler http.HandlerFunc) http.HandlerFunc {
	if limiter == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := utils.GetClientIP(r)
		if !limiter.Allow(clientIP) {
			log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RateLimiter")).
				Warn("Request throttled", log.String("client", log.MaskString(clientIP)),
					log.String("path", r.URL.Path))
			utils.WriteJSONError(w, "too_many_requests", "Too many requests, please try again shortly",
				http.StatusTooManyRequests, []map[string]string{{"Retry-After": "1"}})
			return
		}
		handler(w, r)
	}
}

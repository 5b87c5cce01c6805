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

package quoteflow

import (
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/log"
	"github.com/casurance/intake/internal/system/middleware"
	"github.com/casurance/intake/internal/wizard"
)

const sessionStoreRedis = "redis"

// Initialize creates the quote flow service on the configured session store and registers its routes.
// The returned store is exposed for readiness checks.
func Initialize(mux *http.ServeMux, submitter wizard.Submitter,
	limiter *middleware.RateLimiter) (QuoteFlowServiceInterface, SessionStore) {
	cfg := config.GetRuntime().Config
	ttl := time.Duration(cfg.QuoteFlow.SessionTTL) * time.Second
	lockTTL := time.Duration(cfg.QuoteFlow.SubmitLockTTL) * time.Second

	store := newSessionStoreFromConfig(cfg, ttl, lockTTL)
	service := newQuoteFlowService(store, submitter, ttl)
	registerRoutes(mux, newQuoteFlowHandler(service), limiter)
	return service, store
}

func newSessionStoreFromConfig(cfg config.Config, ttl, lockTTL time.Duration) SessionStore {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "QuoteFlowStore"))

	if strings.EqualFold(cfg.QuoteFlow.SessionStore, sessionStoreRedis) {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		logger.Info("Keeping quote flow sessions in redis", log.String("address", cfg.Redis.Address))
		return newRedisSessionStore(client, cfg.Redis.KeyPrefix, ttl, lockTTL)
	}
	logger.Info("Keeping quote flow sessions in the runtime database")
	return newDBSessionStore(lockTTL)
}

func registerRoutes(mux *http.ServeMux, h *quoteFlowHandler, limiter *middleware.RateLimiter) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: false,
	}
	mux.HandleFunc(middleware.WithCORS("POST /api/quote-flows",
		middleware.WithRateLimit(limiter, h.HandleStartRequest), opts))
	mux.HandleFunc(middleware.WithCORS("GET /api/quote-flows/{id}", h.HandleGetRequest, opts))
	mux.HandleFunc(middleware.WithCORS("POST /api/quote-flows/{id}",
		middleware.WithRateLimit(limiter, h.HandleActionRequest), opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/quote-flows", middleware.NoContent, opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/quote-flows/{id}", middleware.NoContent, opts))
}

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

package quote

import (
	"net/http"

	"github.com/casurance/intake/internal/notification"
	"github.com/casurance/intake/internal/product"
	"github.com/casurance/intake/internal/submission"
	"github.com/casurance/intake/internal/system/middleware"
)

// Initialize creates the quote service and registers one intake route per product
// along with the product catalog routes. Intake routes are rate limited by limiter when it is not nil.
func Initialize(mux *http.ServeMux, submissions submission.SubmissionServiceInterface,
	publisher notification.Publisher, limiter *middleware.RateLimiter) QuoteServiceInterface {
	service := newQuoteService(submissions, publisher)
	registerRoutes(mux, newQuoteHandler(service), limiter)
	return service
}

func registerRoutes(mux *http.ServeMux, h *quoteHandler, limiter *middleware.RateLimiter) {
	submitOpts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: false,
	}
	for _, p := range product.List() {
		mux.HandleFunc(middleware.WithCORS("POST "+p.Path,
			middleware.WithRateLimit(limiter, h.HandleSubmitRequest(string(p.Type))), submitOpts))
		mux.HandleFunc(middleware.WithCORS("OPTIONS "+p.Path, middleware.NoContent, submitOpts))
	}

	productOpts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: false,
	}
	mux.HandleFunc(middleware.WithCORS("GET /api/products", h.HandleProductListRequest, productOpts))
	mux.HandleFunc(middleware.WithCORS("GET /api/products/{slug}", h.HandleProductGetRequest, productOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/products", middleware.NoContent, productOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/products/{slug}", middleware.NoContent, productOpts))
}

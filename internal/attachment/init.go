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

package attachment

import (
	"net/http"

	"github.com/casurance/intake/internal/system/config"
	"github.com/casurance/intake/internal/system/middleware"
)

// Initialize creates the attachment service and registers POST /api/attachments.
// A nil uploader keeps the route registered and answers 503.
func Initialize(mux *http.ServeMux, uploader Uploader, limiter *middleware.RateLimiter) AttachmentServiceInterface {
	cfg := config.GetRuntime().Config.Attachments
	service := newAttachmentService(uploader, cfg)
	registerRoutes(mux, newAttachmentHandler(service, cfg.MaxSize), limiter)
	return service
}

func registerRoutes(mux *http.ServeMux, h *attachmentHandler, limiter *middleware.RateLimiter) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type",
		AllowCredentials: false,
	}
	mux.HandleFunc(middleware.WithCORS("POST /api/attachments",
		middleware.WithRateLimit(limiter, h.HandleUploadRequest), opts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/attachments", middleware.NoContent, opts))
}

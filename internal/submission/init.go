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

package submission

import (
	"net/http"

	"github.com/casurance/intake/internal/system/middleware"
)

// Initialize creates the submission service and registers the agent routes.
// Every route is wrapped by requireAgent.
func Initialize(mux *http.ServeMux, requireAgent func(http.HandlerFunc) http.HandlerFunc) SubmissionServiceInterface {
	service := newSubmissionService(newSubmissionStore())
	registerRoutes(mux, newSubmissionHandler(service), requireAgent)
	return service
}

func registerRoutes(mux *http.ServeMux, h *submissionHandler, requireAgent func(http.HandlerFunc) http.HandlerFunc) {
	listOpts := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET /api/agent/submissions",
		requireAgent(h.HandleListRequest), listOpts))
	mux.HandleFunc(middleware.WithCORS("GET /api/agent/submissions/normalized",
		requireAgent(h.HandleNormalizedListRequest), listOpts))
	mux.HandleFunc(middleware.WithCORS("GET /api/agent/submissions/export",
		requireAgent(h.HandleExportRequest), listOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/agent/submissions",
		middleware.NoContent, listOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/agent/submissions/normalized",
		middleware.NoContent, listOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/agent/submissions/export",
		middleware.NoContent, listOpts))

	updateOpts := middleware.CORSOptions{
		AllowedMethods:   "PATCH",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("PATCH /api/agent/submissions/{type}/{id}/status",
		requireAgent(h.HandleStatusUpdateRequest), updateOpts))
	mux.HandleFunc(middleware.WithCORS("PATCH /api/agent/submissions/{type}/{id}/read",
		requireAgent(h.HandleMarkReadRequest), updateOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/agent/submissions/{type}/{id}/status",
		middleware.NoContent, updateOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS /api/agent/submissions/{type}/{id}/read",
		middleware.NoContent, updateOpts))
}

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

package content

import (
	"net/http"

	"github.com/casurance/intake/internal/agent"
	"github.com/casurance/intake/internal/system/middleware"
)

// Initialize creates the content service and registers the blog post and press release routes.
// Every mutation and every AI endpoint requires an agent token.
func Initialize(mux *http.ServeMux, guard *agent.Guard, assistant Assistant) ContentServiceInterface {
	service := newContentService(newContentStore(), assistant)
	for _, kind := range []Kind{KindBlog, KindPress} {
		registerRoutes(mux, newContentHandler(service, guard, kind))
	}
	return service
}

func registerRoutes(mux *http.ServeMux, h *contentHandler) {
	base := h.kind.basePath()

	collectionOpts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET "+base, h.HandleListRequest, collectionOpts))
	mux.HandleFunc(middleware.WithCORS("POST "+base, h.guard.Require(h.HandleCreateRequest), collectionOpts))
	mux.HandleFunc(middleware.WithCORS("OPTIONS "+base, middleware.NoContent, collectionOpts))

	actionOpts := middleware.CORSOptions{
		AllowedMethods:   "POST",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	actions := map[string]http.HandlerFunc{
		"/generate":          h.HandleGenerateRequest,
		"/ai-assist/draft":   h.HandleDraftRequest,
		"/ai-assist/improve": h.HandleImproveRequest,
		"/ai-assist/tags":    h.HandleTagsRequest,
	}
	for suffix, handler := range actions {
		mux.HandleFunc(middleware.WithCORS("POST "+base+suffix, h.guard.Require(handler), actionOpts))
		mux.HandleFunc(middleware.WithCORS("OPTIONS "+base+suffix, middleware.NoContent, actionOpts))
	}
}

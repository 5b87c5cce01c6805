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
	"encoding/json"
	"net/http"
	"strings"

	"github.com/casurance/intake/internal/agent"
	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
)

const handlerLoggerComponentName = "ContentHandler"

// contentHandler serves the endpoints of one content kind.
type contentHandler struct {
	service ContentServiceInterface
	guard   *agent.Guard
	kind    Kind
}

func newContentHandler(service ContentServiceInterface, guard *agent.Guard, kind Kind) *contentHandler {
	return &contentHandler{service: service, guard: guard, kind: kind}
}

func (h *contentHandler) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName),
		log.String("kind", string(h.kind)))
}

// HandleListRequest lists published posts. With ?status=all drafts are included, for agents only.
func (h *contentHandler) HandleListRequest(w http.ResponseWriter, r *http.Request) {
	if strings.EqualFold(r.URL.Query().Get("status"), "all") {
		h.guard.Require(h.listAll)(w, r)
		return
	}
	h.list(w, r, false)
}

func (h *contentHandler) listAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *contentHandler) list(w http.ResponseWriter, r *http.Request, includeDrafts bool) {
	logger := h.logger()
	posts, svcErr := h.service.ListPosts(h.kind, includeDrafts)
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	if posts == nil {
		posts = []Post{}
	}
	writeJSON(w, logger, http.StatusOK, ListResponse{Posts: posts})
}

// HandleCreateRequest stores a post written by the calling agent.
func (h *contentHandler) HandleCreateRequest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger()
	req, err := sysutils.DecodeJSONBody[CreateRequest](r)
	if err != nil {
		h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}

	post, svcErr := h.service.CreatePost(h.kind, *req, authorOf(r))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusCreated, post)
}

// HandleGenerateRequest has the assistant write and store a post.
func (h *contentHandler) HandleGenerateRequest(w http.ResponseWriter, r *http.Request) {
	logger := h.logger()
	req, err := sysutils.DecodeJSONBody[GenerateRequest](r)
	if err != nil {
		h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}

	post, svcErr := h.service.GeneratePost(r.Context(), h.kind, *req, authorOf(r))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusCreated, post)
}

// HandleDraftRequest handles POST .../ai-assist/draft.
func (h *contentHandler) HandleDraftRequest(w http.ResponseWriter, r *http.Request) {
	h.assist(w, r, func(req AssistRequest) (any, *serviceerror.ServiceError) {
		return h.service.DraftPost(r.Context(), h.kind, req)
	})
}

// HandleImproveRequest handles POST .../ai-assist/improve.
func (h *contentHandler) HandleImproveRequest(w http.ResponseWriter, r *http.Request) {
	h.assist(w, r, func(req AssistRequest) (any, *serviceerror.ServiceError) {
		return h.service.ImproveContent(r.Context(), h.kind, req)
	})
}

// HandleTagsRequest handles POST .../ai-assist/tags.
func (h *contentHandler) HandleTagsRequest(w http.ResponseWriter, r *http.Request) {
	h.assist(w, r, func(req AssistRequest) (any, *serviceerror.ServiceError) {
		return h.service.SuggestTags(r.Context(), h.kind, req)
	})
}

func (h *contentHandler) assist(w http.ResponseWriter, r *http.Request,
	call func(AssistRequest) (any, *serviceerror.ServiceError)) {
	logger := h.logger()
	req, err := sysutils.DecodeJSONBody[AssistRequest](r)
	if err != nil {
		h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}
	resp, svcErr := call(*req)
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusOK, resp)
}

func authorOf(r *http.Request) string {
	a, ok := agent.FromContext(r.Context())
	if !ok {
		return ""
	}
	if a.Email != "" {
		return a.Email
	}
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

func (h *contentHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	var statusCode int
	switch svcErr.Type {
	case serviceerror.ClientErrorType:
		statusCode = http.StatusBadRequest
	default:
		switch svcErr.Code {
		case ErrorAssistantUnavailable.Code:
			statusCode = http.StatusServiceUnavailable
		case ErrorAssistantFailed.Code:
			statusCode = http.StatusBadGateway
		default:
			statusCode = http.StatusInternalServerError
		}
	}

	w.WriteHeader(statusCode)

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		logger.Error("Error encoding error response", log.Error(err))
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, body any) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", log.Error(err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

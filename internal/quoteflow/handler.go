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
	"encoding/json"
	"net/http"

	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
)

const handlerLoggerComponentName = "QuoteFlowHandler"

// quoteFlowHandler serves the quote flow endpoints.
type quoteFlowHandler struct {
	service QuoteFlowServiceInterface
}

func newQuoteFlowHandler(service QuoteFlowServiceInterface) *quoteFlowHandler {
	return &quoteFlowHandler{service: service}
}

// HandleStartRequest handles POST /api/quote-flows.
func (h *quoteFlowHandler) HandleStartRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	req, err := sysutils.DecodeJSONBody[StartRequest](r)
	if err != nil {
		h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}
	flow, svcErr := h.service.Start(r.Context(), sysutils.SanitizeString(req.Product))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusCreated, flow)
}

// HandleGetRequest handles GET /api/quote-flows/{id}.
func (h *quoteFlowHandler) HandleGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	flow, svcErr := h.service.Get(r.Context(), r.PathValue("id"))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusOK, flow)
}

// HandleActionRequest handles POST /api/quote-flows/{id}.
func (h *quoteFlowHandler) HandleActionRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	req, err := sysutils.DecodeJSONBody[ActionRequest](r)
	if err != nil {
		h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}
	req.Inputs = sysutils.SanitizeMap(req.Inputs)

	flow, svcErr := h.service.Execute(r.Context(), r.PathValue("id"), *req)
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusOK, flow)
}

func (h *quoteFlowHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	var statusCode int
	switch svcErr.Type {
	case serviceerror.ClientErrorType:
		switch svcErr.Code {
		case ErrorFlowNotFound.Code, ErrorUnknownProduct.Code:
			statusCode = http.StatusNotFound
		case ErrorSubmissionInProgress.Code:
			statusCode = http.StatusConflict
		default:
			statusCode = http.StatusBadRequest
		}
	default:
		statusCode = http.StatusInternalServerError
	}

	w.WriteHeader(statusCode)

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
		FieldErrors: svcErr.FieldErrors,
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

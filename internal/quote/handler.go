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
	"encoding/json"
	"net/http"
	"strconv"

	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
	"github.com/casurance/intake/internal/wizard"
)

const handlerLoggerComponentName = "QuoteHandler"

// quoteHandler serves the public product and intake endpoints.
type quoteHandler struct {
	service QuoteServiceInterface
}

func newQuoteHandler(service QuoteServiceInterface) *quoteHandler {
	return &quoteHandler{service: service}
}

// HandleSubmitRequest returns the handler for POST requests on the given product's path.
func (h *quoteHandler) HandleSubmitRequest(productType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName),
			log.String(log.LoggerKeyProduct, productType))

		body, err := sysutils.DecodeJSONBody[map[string]any](r)
		if err != nil {
			h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
				"Failed to parse request body: "+err.Error()))
			return
		}
		req, err := parseQuoteRequest(*body)
		if err != nil {
			h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()))
			return
		}

		sub, svcErr := h.service.SubmitQuote(r.Context(), productType, req)
		if svcErr != nil {
			h.handleError(w, logger, svcErr)
			return
		}
		writeJSON(w, logger, http.StatusCreated, sub)
	}
}

// HandleProductListRequest handles GET /api/products. ?quotable=true leaves out the contact form.
func (h *quoteHandler) HandleProductListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))
	quotableOnly, _ := strconv.ParseBool(r.URL.Query().Get("quotable"))
	writeJSON(w, logger, http.StatusOK, ProductListResponse{Products: h.service.ListProducts(quotableOnly)})
}

// HandleProductGetRequest handles GET /api/products/{slug}.
func (h *quoteHandler) HandleProductGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	detail, svcErr := h.service.GetProduct(r.PathValue("slug"))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}
	writeJSON(w, logger, http.StatusOK, detail)
}

// parseQuoteRequest splits a request body into form fields and attachment metadata.
// The "payload" duplicate is used only when the body carries no top level fields.
func parseQuoteRequest(body map[string]any) (QuoteRequest, error) {
	req := QuoteRequest{Record: wizard.FormRecord{}}

	if raw, ok := body[attachmentsKey]; ok && raw != nil {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return req, err
		}
		if err := json.Unmarshal(encoded, &req.Attachments); err != nil {
			return req, &attachmentError{err: err}
		}
	}

	for k, v := range body {
		if k == payloadKey || k == attachmentsKey {
			continue
		}
		req.Record[k] = v
	}
	if len(req.Record) == 0 {
		if payload, ok := body[payloadKey].(map[string]any); ok {
			for k, v := range payload {
				req.Record[k] = v
			}
		}
	}
	return req, nil
}

type attachmentError struct {
	err error
}

func (e *attachmentError) Error() string {
	return "attachments must be a list of file references: " + e.err.Error()
}

func (h *quoteHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	var statusCode int
	switch svcErr.Type {
	case serviceerror.ClientErrorType:
		if svcErr.Code == ErrorUnknownProduct.Code {
			statusCode = http.StatusNotFound
		} else {
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

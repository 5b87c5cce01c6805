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
	"encoding/json"
	"net/http"
	"strconv"

	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
	sysutils "github.com/casurance/intake/internal/system/utils"
)

const handlerLoggerComponentName = "SubmissionHandler"

// submissionHandler serves the agent submission endpoints.
type submissionHandler struct {
	service SubmissionServiceInterface
}

func newSubmissionHandler(service SubmissionServiceInterface) *submissionHandler {
	return &submissionHandler{service: service}
}

func filterFromRequest(r *http.Request) Filter {
	query := r.URL.Query()
	return Filter{
		Type:   sysutils.SanitizeString(query.Get("type")),
		Search: sysutils.SanitizeString(query.Get("search")),
	}
}

// HandleListRequest handles GET /api/agent/submissions.
func (h *submissionHandler) HandleListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	subs, svcErr := h.service.ListSubmissions(filterFromRequest(r))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	writeJSON(w, logger, http.StatusOK, ListResponse{Submissions: subs})
	logger.Debug("Listed submissions", log.Int("count", len(subs)))
}

// HandleNormalizedListRequest handles GET /api/agent/submissions/normalized.
func (h *submissionHandler) HandleNormalizedListRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	records, svcErr := h.service.ListNormalizedSubmissions(filterFromRequest(r))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	writeJSON(w, logger, http.StatusOK, NormalizedListResponse{Submissions: records})
}

// HandleStatusUpdateRequest handles PATCH /api/agent/submissions/{type}/{id}/status.
func (h *submissionHandler) HandleStatusUpdateRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	req, err := sysutils.DecodeJSONBody[StatusUpdateRequest](r)
	if err != nil {
		svcErr := serviceerror.CustomServiceError(ErrorInvalidRequestFormat, "Failed to parse request body: "+err.Error())
		h.handleError(w, logger, svcErr)
		return
	}
	req.Notes = sysutils.SanitizeString(req.Notes)

	sub, svcErr := h.service.UpdateStatus(r.PathValue("type"), r.PathValue("id"), *req)
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	writeJSON(w, logger, http.StatusOK, sub)
	logger.Debug("Updated submission status", log.String(log.LoggerKeySubmissionID, r.PathValue("id")))
}

// HandleMarkReadRequest handles PATCH /api/agent/submissions/{type}/{id}/read.
func (h *submissionHandler) HandleMarkReadRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	sub, svcErr := h.service.MarkRead(r.PathValue("type"), r.PathValue("id"))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	writeJSON(w, logger, http.StatusOK, sub)
}

// HandleExportRequest handles GET /api/agent/submissions/export.
func (h *submissionHandler) HandleExportRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	data, fileName, svcErr := h.service.ExportSubmissions(filterFromRequest(r))
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeCSV)
	w.Header().Set(serverconst.ContentDispositionHeaderName, "attachment; filename=\""+fileName+"\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error("Error writing export", log.Error(err))
		return
	}
	logger.Debug("Exported submissions", log.String("fileName", fileName))
}

func (h *submissionHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	var statusCode int
	switch svcErr.Type {
	case serviceerror.ClientErrorType:
		switch svcErr.Code {
		case ErrorSubmissionNotFound.Code, ErrorNoData.Code:
			statusCode = http.StatusNotFound
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

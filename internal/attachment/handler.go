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
	"encoding/json"
	"errors"
	"net/http"

	serverconst "github.com/casurance/intake/internal/system/constants"
	"github.com/casurance/intake/internal/system/error/apierror"
	"github.com/casurance/intake/internal/system/error/serviceerror"
	"github.com/casurance/intake/internal/system/log"
)

const handlerLoggerComponentName = "AttachmentHandler"

const (
	formFileField       = "file"
	multipartMemory     = 1 << 20
	multipartOverheadSz = 1 << 20
)

// attachmentHandler serves POST /api/attachments.
type attachmentHandler struct {
	service AttachmentServiceInterface
	maxSize int64
}

func newAttachmentHandler(service AttachmentServiceInterface, maxSize int64) *attachmentHandler {
	return &attachmentHandler{service: service, maxSize: maxSize}
}

// HandleUploadRequest stores the multipart "file" field and returns its file reference.
func (h *attachmentHandler) HandleUploadRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	if h.maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartOverheadSz)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.handleError(w, logger, &ErrorFileTooLarge)
			return
		}
		h.handleError(w, logger, serviceerror.CustomServiceError(ErrorInvalidRequestFormat, err.Error()))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.Debug("Failed to remove multipart temp files", log.Error(err))
		}
	}()

	file, header, err := r.FormFile(formFileField)
	if err != nil {
		h.handleError(w, logger, &ErrorInvalidRequestFormat)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Debug("Failed to close uploaded file", log.Error(err))
		}
	}()

	ref, svcErr := h.service.Upload(r.Context(), FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get(serverconst.ContentTypeHeaderName),
		Size:        header.Size,
		Body:        file,
	})
	if svcErr != nil {
		h.handleError(w, logger, svcErr)
		return
	}

	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ref); err != nil {
		logger.Error("Error encoding response", log.Error(err))
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *attachmentHandler) handleError(w http.ResponseWriter, logger *log.Logger,
	svcErr *serviceerror.ServiceError) {
	w.Header().Set(serverconst.ContentTypeHeaderName, serverconst.ContentTypeJSON)

	var statusCode int
	switch svcErr.Code {
	case ErrorFileTooLarge.Code:
		statusCode = http.StatusRequestEntityTooLarge
	case ErrorUnsupportedContentType.Code:
		statusCode = http.StatusUnsupportedMediaType
	case ErrorUploadsDisabled.Code:
		statusCode = http.StatusServiceUnavailable
	default:
		if svcErr.Type == serviceerror.ClientErrorType {
			statusCode = http.StatusBadRequest
		} else {
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

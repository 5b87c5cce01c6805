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
	"errors"

	"github.com/casurance/intake/internal/system/error/serviceerror"
)

// Client errors for attachment uploads.
var (
	// ErrorInvalidRequestFormat is the error returned when the request carries no file.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ATT-1001",
		Error:            "Invalid request format",
		ErrorDescription: "Expected a multipart form with a file field",
	}
	// ErrorFileTooLarge is the error returned when the file exceeds the configured size.
	ErrorFileTooLarge = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ATT-1002",
		Error:            "File too large",
		ErrorDescription: "The file exceeds the maximum upload size",
	}
	// ErrorUnsupportedContentType is the error returned for a file type that is not accepted.
	ErrorUnsupportedContentType = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ATT-1003",
		Error:            "Unsupported file type",
		ErrorDescription: "Files of this type are not accepted",
	}
	// ErrorEmptyFile is the error returned for a zero length file.
	ErrorEmptyFile = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "ATT-1004",
		Error:            "Empty file",
		ErrorDescription: "The uploaded file is empty",
	}
)

// Server errors for attachment uploads.
var (
	// ErrorInternalServerError is the error returned when the file could not be stored.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "ATT-5000",
		Error:            "Internal server error",
		ErrorDescription: "The file could not be stored",
	}
	// ErrorUploadsDisabled is the error returned when no object store is configured.
	ErrorUploadsDisabled = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "ATT-5003",
		Error:            "Uploads unavailable",
		ErrorDescription: "File uploads are not enabled on this server",
	}
)

// ErrUploadsDisabled is returned by NewUploaderFromConfig when attachments are switched off.
var ErrUploadsDisabled = errors.New("attachment uploads are disabled")

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
	"errors"

	"github.com/casurance/intake/internal/system/error/serviceerror"
)

// Client errors for submission operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request format is invalid.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SUB-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorInvalidSubmissionType is the error returned when the submission type is unknown.
	ErrorInvalidSubmissionType = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SUB-1002",
		Error:            "Invalid submission type",
		ErrorDescription: "The submission type is not recognized",
	}
	// ErrorSubmissionNotFound is the error returned when a submission does not exist.
	ErrorSubmissionNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SUB-1003",
		Error:            "Submission not found",
		ErrorDescription: "The submission with the specified id does not exist",
	}
	// ErrorInvalidStatus is the error returned when a status transition names an unknown status.
	ErrorInvalidStatus = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SUB-1004",
		Error:            "Invalid status",
		ErrorDescription: "Status must be one of new, read, in_progress, completed or archived",
	}
	// ErrorNoData is the error returned when an export would be empty.
	ErrorNoData = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SUB-1005",
		Error:            "no_data",
		ErrorDescription: "There are no submissions to export",
	}
	// ErrorMissingSubmissionID is the error returned when the submission id is missing.
	ErrorMissingSubmissionID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "SUB-1006",
		Error:            "Invalid request format",
		ErrorDescription: "Submission type and id are required",
	}
)

// Server errors for submission operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "SUB-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

// ErrSubmissionNotFound is returned by the store when no row matches.
var ErrSubmissionNotFound = errors.New("submission not found")

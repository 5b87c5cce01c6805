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
	"errors"

	"github.com/casurance/intake/internal/system/error/serviceerror"
)

// Client errors for quote flows.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorUnknownProduct is the error returned when a flow is started for a product that does not exist.
	ErrorUnknownProduct = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1002",
		Error:            "Unknown product",
		ErrorDescription: "The requested insurance product is not offered",
	}
	// ErrorFlowNotFound is the error returned when the flow does not exist or has expired.
	ErrorFlowNotFound = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1003",
		Error:            "Quote flow not found",
		ErrorDescription: "The quote flow does not exist or has expired",
	}
	// ErrorUnknownField is the error returned when an input names a field the form does not declare.
	ErrorUnknownField = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1004",
		Error:            "Unknown field",
		ErrorDescription: "The input names a field that is not part of the form",
	}
	// ErrorInvalidAction is the error returned for an unsupported action.
	ErrorInvalidAction = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1005",
		Error:            "Invalid action",
		ErrorDescription: "The action must be one of advance, retreat, submit or update",
	}
	// ErrorSubmissionInProgress is the error returned while a submission of the flow is pending.
	ErrorSubmissionInProgress = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1006",
		Error:            "Submission in progress",
		ErrorDescription: "The form is already being submitted",
	}
	// ErrorNotFinalStep is the error returned when submit is requested before the final step.
	ErrorNotFinalStep = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "FLW-1007",
		Error:            "Not the final step",
		ErrorDescription: "The form can only be submitted from its final step",
	}
)

// Server errors for quote flows.
var (
	// ErrorInternalServerError is the error returned when the flow could not be loaded or saved.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "FLW-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the quote flow",
	}
)

// ErrSessionNotFound is returned by a SessionStore when the session does not exist or has expired.
var ErrSessionNotFound = errors.New("quote flow session not found")

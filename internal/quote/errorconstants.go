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

import "github.com/casurance/intake/internal/system/error/serviceerror"

// Client errors for quote intake.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "QTE-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorUnknownProduct is the error returned when the product does not exist.
	ErrorUnknownProduct = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "QTE-1002",
		Error:            "Unknown product",
		ErrorDescription: "The requested insurance product is not offered",
	}
	// ErrorValidationFailed is the error returned when the submitted record fails validation.
	ErrorValidationFailed = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "QTE-1003",
		Error:            "Please correct the highlighted fields",
		ErrorDescription: "One or more fields of the submitted form are invalid",
	}
	// ErrorEmptySubmission is the error returned when the request carries no form fields.
	ErrorEmptySubmission = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "QTE-1004",
		Error:            "Empty submission",
		ErrorDescription: "The request does not contain any form fields",
	}
)

// Server errors for quote intake.
var (
	// ErrorInternalServerError is the error returned when the submission could not be stored.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "QTE-5000",
		Error:            "Failed to submit form. Please try again.",
		ErrorDescription: "An unexpected error occurred while storing the submission",
	}
)

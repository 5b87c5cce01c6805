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
	"errors"

	"github.com/casurance/intake/internal/system/error/serviceerror"
)

// Client errors for content management.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CNT-1001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorMissingTitle is the error returned when a post has no title.
	ErrorMissingTitle = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CNT-1002",
		Error:            "Missing title",
		ErrorDescription: "A title is required",
	}
	// ErrorMissingContent is the error returned when a post or an improve request has no content.
	ErrorMissingContent = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CNT-1003",
		Error:            "Missing content",
		ErrorDescription: "Content is required",
	}
	// ErrorInvalidStatus is the error returned for a status other than draft or published.
	ErrorInvalidStatus = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CNT-1004",
		Error:            "Invalid status",
		ErrorDescription: "Status must be draft or published",
	}
	// ErrorMissingTopic is the error returned when a generation request has no topic.
	ErrorMissingTopic = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CNT-1005",
		Error:            "Missing topic",
		ErrorDescription: "A topic is required",
	}
)

// Server errors for content management.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CNT-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
	// ErrorAssistantFailed is the error returned when the assistant call fails.
	ErrorAssistantFailed = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CNT-5002",
		Error:            "Content generation failed",
		ErrorDescription: "The AI assistant could not complete the request",
	}
	// ErrorAssistantUnavailable is the error returned when AI assist is not configured.
	ErrorAssistantUnavailable = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CNT-5003",
		Error:            "ai_unavailable",
		ErrorDescription: "AI content assist is not enabled on this server",
	}
)

// ErrAssistantDisabled is returned by NewGeminiAssistant when AI assist is switched off.
var ErrAssistantDisabled = errors.New("ai assist is disabled")

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

package agent

import (
	"errors"

	"github.com/casurance/intake/internal/system/error/serviceerror"
)

// ErrorUnauthorized is the error returned when a request carries no valid agent token.
var ErrorUnauthorized = serviceerror.ServiceError{
	Type:             serviceerror.ClientErrorType,
	Code:             "AGT-1001",
	Error:            "Unauthorized",
	ErrorDescription: "A valid agent token is required to access this resource",
}

// ErrorAuthNotConfigured is the error returned when no signing secret is configured.
var ErrorAuthNotConfigured = serviceerror.ServiceError{
	Type:             serviceerror.ServerErrorType,
	Code:             "AGT-5001",
	Error:            "Agent authentication is not configured",
	ErrorDescription: "The server has no agent token secret configured",
}

var (
	// ErrNoSecret is returned when tokens are issued or verified without a configured secret.
	ErrNoSecret = errors.New("agent token secret is not configured")
	// ErrMissingSubject is returned for tokens that do not identify an agent.
	ErrMissingSubject = errors.New("token subject is required")
)

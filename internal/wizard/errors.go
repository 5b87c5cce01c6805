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

package wizard

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnknownField is returned when a field name is not declared by the definition.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidDefinition is returned when a definition is malformed.
	ErrInvalidDefinition = errors.New("invalid wizard definition")
	// ErrInvalidState is returned when a restored state does not fit its definition.
	ErrInvalidState = errors.New("invalid wizard state")
	// ErrNotFinalStep is returned when Submit is called before the final step.
	ErrNotFinalStep = errors.New("submission is only allowed from the final step")
	// ErrSubmissionInProgress is returned while a submission is pending.
	ErrSubmissionInProgress = errors.New("submission already in progress")
	// ErrAlreadySubmitted is returned once the wizard has been submitted.
	ErrAlreadySubmitted = errors.New("form already submitted")
	// ErrNoSubmitter is returned when the wizard was built without a Submitter.
	ErrNoSubmitter = errors.New("no submitter configured")
)

// ValidationError carries the per-field messages of a failed validation.
type ValidationError struct {
	Errors map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for name := range e.Errors {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return "validation failed for " + strings.Join(fields, ", ")
}

// SubmitError is returned by a Submitter when the receiving side rejects a submission.
type SubmitError struct {
	StatusCode  int
	Message     string
	FieldErrors map[string]string
}

// Error implements the error interface.
func (e *SubmitError) Error() string {
	return e.Message
}

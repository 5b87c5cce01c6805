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

import "context"

// SubmissionStatus is the lifecycle status of a wizard's submission.
type SubmissionStatus string

const (
	// StatusIdle means nothing has been submitted yet.
	StatusIdle SubmissionStatus = "idle"
	// StatusSubmitting means a submission is in flight.
	StatusSubmitting SubmissionStatus = "submitting"
	// StatusSubmitted means the submission was accepted.
	StatusSubmitted SubmissionStatus = "submitted"
	// StatusFailed means the last submission attempt failed.
	StatusFailed SubmissionStatus = "failed"
)

// WizardState is the observable state of a wizard.
type WizardState struct {
	CurrentStep      int               `json:"currentStep"`
	TotalSteps       int               `json:"totalSteps"`
	Record           FormRecord        `json:"record"`
	SubmissionStatus SubmissionStatus  `json:"submissionStatus"`
	ReferenceNumber  string            `json:"referenceNumber,omitempty"`
	Errors           map[string]string `json:"errors,omitempty"`
	FailureMessage   string            `json:"failureMessage,omitempty"`
	Attachments      []FileReference   `json:"attachments,omitempty"`
}

// Clone returns a deep copy of the state.
func (s WizardState) Clone() WizardState {
	out := s
	out.Record = s.Record.Clone()
	out.Errors = cloneErrors(s.Errors)
	if s.Attachments != nil {
		out.Attachments = append([]FileReference(nil), s.Attachments...)
	}
	return out
}

// ValidationResult is the outcome of validating a step.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// SubmitRequest is what a wizard hands to its Submitter.
type SubmitRequest struct {
	Product     string
	Record      FormRecord
	Attachments []FileReference
}

// SubmitResult is the outcome of an accepted submission.
type SubmitResult struct {
	ReferenceNumber string `json:"referenceNumber"`
	// Placeholder is set when the receiving side returned no reference number
	// and one was generated locally.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Submitter delivers a completed record to where it is persisted.
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, req SubmitRequest) (SubmitResult, error)

// Submit calls f(ctx, req).
func (f SubmitterFunc) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	return f(ctx, req)
}

func cloneErrors(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

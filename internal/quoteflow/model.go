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
	"time"

	"github.com/casurance/intake/internal/wizard"
)

// Actions accepted by POST /api/quote-flows/{id}.
const (
	ActionAdvance = "advance"
	ActionRetreat = "retreat"
	ActionSubmit  = "submit"
	ActionUpdate  = "update"
)

// Session is a wizard held by the server between requests.
type Session struct {
	FlowID    string             `json:"flowId"`
	Product   string             `json:"product"`
	State     wizard.WizardState `json:"state"`
	CreatedAt time.Time          `json:"createdAt"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// StartRequest is the body of POST /api/quote-flows.
type StartRequest struct {
	Product string `json:"product"`
}

// ActionRequest is the body of POST /api/quote-flows/{id}.
type ActionRequest struct {
	Action      string                 `json:"action"`
	Inputs      map[string]any         `json:"inputs,omitempty"`
	Attachments []wizard.FileReference `json:"attachments,omitempty"`
}

// StepView is the currently rendered step.
type StepView struct {
	Number int                `json:"number"`
	Title  string             `json:"title"`
	Fields []wizard.FieldRule `json:"fields"`
}

// FlowResponse is the state of a quote flow as returned to the client.
type FlowResponse struct {
	FlowID          string            `json:"flowId"`
	Product         string            `json:"product"`
	CurrentStep     int               `json:"currentStep"`
	TotalSteps      int               `json:"totalSteps"`
	IsFinalStep     bool              `json:"isFinalStep"`
	Step            StepView          `json:"step"`
	Record          wizard.FormRecord `json:"record"`
	Status          string            `json:"status"`
	ReferenceNumber string            `json:"referenceNumber,omitempty"`
	Errors          map[string]string `json:"errors,omitempty"`
	FailureMessage  string            `json:"failureMessage,omitempty"`
}

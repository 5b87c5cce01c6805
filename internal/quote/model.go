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

import (
	"encoding/json"

	"github.com/casurance/intake/internal/wizard"
)

// Reserved request body keys that are not form fields.
const (
	payloadKey     = "payload"
	attachmentsKey = "attachments"
)

// QuoteRequest is a decoded submission of a product form.
type QuoteRequest struct {
	Record      wizard.FormRecord
	Attachments []wizard.FileReference
}

// FieldSummary describes one field of a product form.
type FieldSummary struct {
	Name        string           `json:"name"`
	Label       string           `json:"label"`
	Kind        wizard.FieldKind `json:"kind"`
	Required    bool             `json:"required"`
	Options     []string         `json:"options,omitempty"`
	Conditional bool             `json:"conditional,omitempty"`
}

// StepSummary describes one step of a product form.
type StepSummary struct {
	Number      int            `json:"number"`
	Title       string         `json:"title"`
	Conditional bool           `json:"conditional,omitempty"`
	Fields      []FieldSummary `json:"fields"`
}

// ProductSummary describes a product accepting submissions.
type ProductSummary struct {
	Type           string        `json:"type"`
	Path           string        `json:"path"`
	SubmissionType string        `json:"submissionType"`
	FormName       string        `json:"formName"`
	TotalSteps     int           `json:"totalSteps"`
	Steps          []StepSummary `json:"steps,omitempty"`
}

// ProductDetail is a product summary along with its payload schema.
type ProductDetail struct {
	ProductSummary
	Schema json.RawMessage `json:"schema"`
}

// ProductListResponse is the body of GET /api/products.
type ProductListResponse struct {
	Products []ProductSummary `json:"products"`
}

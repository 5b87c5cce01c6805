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

import "github.com/casurance/intake/internal/wizard"

// Submission is a stored submission as returned by the API: the submitted
// fields merged with the stored metadata (id, submissionType, status, createdAt, ...).
type Submission map[string]any

// Display status of a normalized submission.
const (
	StatusComplete   = "complete"
	StatusIncomplete = "incomplete"
)

// Stored statuses.
const (
	StoredStatusNew        = "new"
	StoredStatusRead       = "read"
	StoredStatusInProgress = "in_progress"
	StoredStatusCompleted  = "completed"
	StoredStatusArchived   = "archived"
)

var storedStatuses = map[string]bool{
	StoredStatusNew:        true,
	StoredStatusRead:       true,
	StoredStatusInProgress: true,
	StoredStatusCompleted:  true,
	StoredStatusArchived:   true,
}

// Keys of the metadata carried by every submission.
const (
	KeyID              = "id"
	KeySubmissionType  = "submissionType"
	KeyInsuranceType   = "insuranceType"
	KeyStatus          = "status"
	KeyNotes           = "notes"
	KeyCreatedAt       = "createdAt"
	KeyUpdatedAt       = "updatedAt"
	KeyReferenceNumber = "referenceNumber"
	KeyContactName     = "contactName"
	KeyAttachments     = "attachments"
)

// NormalizedSubmission is the uniform display shape of a submission.
type NormalizedSubmission struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	FormName        string     `json:"formName"`
	Name            string     `json:"name"`
	Location        string     `json:"location"`
	Date            string     `json:"date"`
	Status          string     `json:"status"`
	ReferenceNumber string     `json:"referenceNumber,omitempty"`
	RawData         Submission `json:"rawData"`
}

// Filter restricts a submission listing.
type Filter struct {
	Type   string
	Search string
}

// NewSubmission is what the intake side persists.
type NewSubmission struct {
	ProductType   string
	Record        wizard.FormRecord
	Attachments   []wizard.FileReference
	InsuranceType string
}

// StatusUpdateRequest is the body of a status update.
type StatusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// ListResponse wraps a submission listing.
type ListResponse struct {
	Submissions []Submission `json:"submissions"`
}

// NormalizedListResponse wraps a normalized submission listing.
type NormalizedListResponse struct {
	Submissions []NormalizedSubmission `json:"submissions"`
}

// storedSubmission is one row of a product table.
type storedSubmission struct {
	ID              string
	ReferenceNumber string
	SubmissionType  string
	InsuranceType   string
	ContactName     string
	Email           string
	Phone           string
	City            string
	State           string
	Status          string
	Notes           string
	Payload         string
	Attachments     string
	CreatedAt       string
	UpdatedAt       string
}
